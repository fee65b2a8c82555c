// Package parser turns raw workout recordings (FIT, GPX, CSV, manual entry)
// into the canonical series consumed by the analysis core.
//
// Parsers never panic on bad input. A recording that cannot be decoded yields
// a nil series and a diagnostic error naming what was searched and what was
// found; the dominant failure mode in the wild is a vendor export quirk, not a
// corrupt file, so the diagnostics are written for the person debugging the
// export.
package parser

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	ftptest "ftp-analyzer"
)

// Known input formats.
const (
	FormatFIT           = "fit"
	FormatGPX           = "gpx"
	FormatCSV           = "csv"
	FormatTrainingPeaks = "trainingpeaks"
)

// Parse decodes a raw payload in the named format. An empty format triggers
// content detection via DetectFormat.
func Parse(data []byte, format string) (*ftptest.Series, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("parse: empty payload")
	}
	if format == "" {
		format = DetectFormat("", data)
	}

	switch strings.ToLower(format) {
	case FormatFIT:
		return ParseFIT(data)
	case FormatGPX:
		return ParseGPX(data)
	case FormatTrainingPeaks:
		return ParseTrainingPeaksCSV(data)
	case FormatCSV:
		// The vendor-specific header layout is tried first; when its power
		// column is absent the generic column matcher takes over.
		if s, err := ParseTrainingPeaksCSV(data); err == nil {
			return s, nil
		}
		return ParseCSV(data)
	default:
		return nil, fmt.Errorf("parse: unknown format %q (known: fit, gpx, csv, trainingpeaks)", format)
	}
}

// DetectFormat guesses the input format from the filename extension and, when
// that is inconclusive, the payload itself. CSV is the fallback since it is
// the only text format without a reliable signature.
func DetectFormat(filename string, data []byte) string {
	switch {
	case hasExt(filename, ".fit"):
		return FormatFIT
	case hasExt(filename, ".gpx"):
		return FormatGPX
	case hasExt(filename, ".csv"):
		return FormatCSV
	}

	// FIT headers carry the ".FIT" tag at byte offset 8.
	if len(data) >= 12 && string(data[8:12]) == ".FIT" {
		return FormatFIT
	}
	if bytes.Contains(data[:minInt(len(data), 2048)], []byte("<gpx")) {
		return FormatGPX
	}
	return FormatCSV
}

func hasExt(filename, ext string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ext)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func roundToInt(v float64) int {
	return int(math.Round(v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

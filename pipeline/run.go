// Package pipeline runs the full decode-and-analyze flow and writes the
// artifact set: canonical per-second samples (CSV or parquet), the analysis
// JSON, and a plain-text training summary.
package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	ftptest "ftp-analyzer"
	"ftp-analyzer/parser"
)

// Artifact filenames, fixed across both run modes.
const (
	analysisFileName = "analysis.json"
	summaryFileName  = "training_summary.md"
	samplesBaseName  = "canonical_samples"
)

// Run executes the pipeline against a file on disk and writes every artifact
// into opts.OutDir.
func Run(opts Options) (*Result, error) {
	if strings.TrimSpace(opts.InputPath) == "" {
		return nil, fmt.Errorf("input path is required")
	}
	if strings.TrimSpace(opts.OutDir) == "" {
		return nil, fmt.Errorf("output directory is required")
	}

	data, err := os.ReadFile(opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	format := opts.Format
	if format == "" {
		format = parser.DetectFormat(opts.InputPath, data)
	}

	bytesResult, err := RunBytes(BytesOptions{
		SourceFileName: filepath.Base(opts.InputPath),
		Data:           data,
		Format:         format,
		SampleFormat:   opts.SampleFormat,
		TargetMinutes:  opts.TargetMinutes,
		WeightKG:       opts.WeightKG,
	})
	if err != nil {
		return nil, err
	}

	if err := prepareOutDir(opts.OutDir, opts.Overwrite); err != nil {
		return nil, err
	}

	result := &Result{OutputDir: opts.OutDir, Warnings: bytesResult.Warnings}
	for name, content := range bytesResult.Files {
		path := filepath.Join(opts.OutDir, name)
		if err := os.WriteFile(path, content, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
		switch {
		case name == analysisFileName:
			result.AnalysisPath = path
		case name == summaryFileName:
			result.SummaryPath = path
		case strings.HasPrefix(name, samplesBaseName):
			result.CanonicalSamplesPath = path
		}
	}
	return result, nil
}

// RunBytes executes the pipeline entirely in memory: parse, analyze, and
// marshal every artifact into the returned file map. This is the only entry
// point the wasm host uses.
func RunBytes(opts BytesOptions) (*BytesResult, error) {
	sampleFormat := strings.ToLower(strings.TrimSpace(opts.SampleFormat))
	if sampleFormat == "" {
		sampleFormat = "parquet"
	}
	if sampleFormat != "parquet" && sampleFormat != "csv" {
		return nil, fmt.Errorf("unsupported sample format %q (expected parquet|csv)", sampleFormat)
	}

	series, err := parseInput(opts)
	if err != nil {
		return nil, err
	}

	analysis, err := ftptest.Analyze(series, ftptest.Config{
		TargetMinutes: opts.TargetMinutes,
		WeightKG:      opts.WeightKG,
	})
	if err != nil {
		return nil, err
	}

	warnings := collectWarnings(analysis, opts)
	samples := buildCanonicalSamples(analysis)

	files := map[string][]byte{}

	switch sampleFormat {
	case "csv":
		content, err := marshalCanonicalCSV(samples)
		if err != nil {
			return nil, fmt.Errorf("marshal canonical csv: %w", err)
		}
		files[samplesBaseName+".csv"] = content
	case "parquet":
		content, err := marshalCanonicalParquet(samples)
		if err != nil {
			return nil, fmt.Errorf("marshal canonical parquet: %w", err)
		}
		files[samplesBaseName+".parquet"] = content
	}

	analysisFile := AnalysisFile{
		Source:   opts.SourceFileName,
		Format:   inputFormatName(opts),
		Samples:  len(analysis.Power),
		Analysis: analysis,
		Warnings: warnings,
	}
	analysisJSON, err := marshalJSON(analysisFile)
	if err != nil {
		return nil, fmt.Errorf("marshal analysis: %w", err)
	}
	files[analysisFileName] = analysisJSON
	files[summaryFileName] = []byte(ftptest.BuildTrainingNotes(analysis) + "\n")

	return &BytesResult{
		Analysis: analysis,
		Files:    files,
		Warnings: warnings,
	}, nil
}

func parseInput(opts BytesOptions) (*ftptest.Series, error) {
	if len(opts.ManualWatts) > 0 {
		return parser.ExpandManualEntry(opts.ManualWatts, opts.TargetMinutes)
	}
	format := opts.Format
	if format == "" {
		format = parser.DetectFormat(opts.SourceFileName, opts.Data)
	}
	return parser.Parse(opts.Data, format)
}

func inputFormatName(opts BytesOptions) string {
	if len(opts.ManualWatts) > 0 {
		return "manual"
	}
	if opts.Format != "" {
		return strings.ToLower(opts.Format)
	}
	return parser.DetectFormat(opts.SourceFileName, opts.Data)
}

func collectWarnings(analysis *ftptest.Analysis, opts BytesOptions) []string {
	var warnings []string
	if analysis.HeartRate == nil {
		warnings = append(warnings, "no heart rate channel; heart-rate analysis skipped")
	}
	if opts.WeightKG <= 0 {
		warnings = append(warnings, "no rider weight given; watts-per-kg grading skipped")
	}
	return warnings
}

// buildCanonicalSamples flattens the analyzed segment into per-second rows.
// Optional channel cells stay nil when the recording never carried that
// channel, keeping "absent" distinct from "zero" in every artifact.
func buildCanonicalSamples(a *ftptest.Analysis) []CanonicalSample {
	samples := make([]CanonicalSample, len(a.Power))
	for i := range a.Power {
		s := CanonicalSample{ElapsedS: i, PowerW: a.Power[i]}
		if a.HRSeries != nil {
			s.HRBPM = &a.HRSeries[i]
		}
		if a.Speed != nil {
			s.SpeedKPH = &a.Speed[i]
		}
		if a.Distance != nil {
			s.DistanceM = &a.Distance[i]
		}
		if a.Elevation != nil {
			s.ElevationM = &a.Elevation[i]
		}
		samples[i] = s
	}
	return samples
}

func marshalCanonicalCSV(samples []CanonicalSample) ([]byte, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	header := []string{"elapsed_s", "power_w", "hr_bpm", "speed_kph", "distance_m", "elevation_m"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, s := range samples {
		row := []string{
			strconv.Itoa(s.ElapsedS),
			strconv.Itoa(s.PowerW),
			formatIntPtr(s.HRBPM),
			formatFloatPtr(s.SpeedKPH),
			formatFloatPtr(s.DistanceM),
			formatFloatPtr(s.ElevationM),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

func marshalJSON(v any) ([]byte, error) {
	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

func formatIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func prepareOutDir(dir string, overwrite bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if overwrite {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		return fmt.Errorf("output directory %s is not empty (use overwrite to allow)", dir)
	}
	return nil
}

package parser

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	ftptest "ftp-analyzer"
)

// Extension tag aliases, in priority order: the generic tag, then the common
// vendor-prefixed spellings. Matching is on the local name with the namespace
// prefix stripped, case-insensitive, and covers the attribute form too.
var (
	gpxPowerAliases = []string{"power", "powerinwatts", "pwr"}
	gpxHRAliases    = []string{"hr", "heartrate", "heartratebpm"}
)

type gpxFile struct {
	XMLName  xml.Name `xml:"gpx"`
	Creator  string   `xml:"creator,attr"`
	Metadata struct {
		Time string `xml:"time"`
	} `xml:"metadata"`
	Tracks []struct {
		Name     string `xml:"name"`
		Segments []struct {
			Points []gpxPoint `xml:"trkpt"`
		} `xml:"trkseg"`
	} `xml:"trk"`
}

type gpxPoint struct {
	Lat        float64  `xml:"lat,attr"`
	Lon        float64  `xml:"lon,attr"`
	Elevation  *float64 `xml:"ele"`
	Time       string   `xml:"time"`
	Extensions struct {
		Inner []byte `xml:",innerxml"`
	} `xml:"extensions"`
}

// ParseGPX decodes a GPX track into the canonical series. Track points
// without a parseable timestamp are skipped, not zero-filled; power and heart
// rate are pulled from the vendor-variable extension tags.
func ParseGPX(data []byte) (*ftptest.Series, error) {
	var doc gpxFile
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("gpx: malformed xml: %w", err)
	}

	points := flattenPoints(&doc)
	if len(points) == 0 {
		return nil, fmt.Errorf("gpx: document has no track points")
	}

	s := &ftptest.Series{}
	var (
		start        time.Time
		hr           []int
		elevation    []float64
		hasPower     bool
		hasHR        bool
		hasElevation bool
		skipped      int
	)

	for _, pt := range points {
		ts, err := time.Parse(time.RFC3339, pt.Time)
		if err != nil {
			skipped++
			continue
		}
		if start.IsZero() {
			start = ts
		}

		ext := scanExtensions(pt.Extensions.Inner)
		power, ok := ext.lookup(gpxPowerAliases, 0)
		hasPower = hasPower || ok

		s.Power = append(s.Power, power)
		s.Time = append(s.Time, int(ts.Sub(start).Seconds()))

		if v, ok := ext.lookup(gpxHRAliases, 1); ok {
			hr = append(hr, v)
			hasHR = true
		} else {
			hr = append(hr, 0)
		}
		if pt.Elevation != nil {
			elevation = append(elevation, *pt.Elevation)
			hasElevation = true
		} else {
			elevation = append(elevation, 0)
		}
	}

	if len(s.Power) == 0 {
		return nil, fmt.Errorf("gpx: %d track point(s), none with a parseable timestamp", len(points))
	}
	if !hasPower {
		return nil, fmt.Errorf(
			"gpx: no track point carried a power extension (searched tags %v on %d points, %d skipped for missing timestamps)",
			gpxPowerAliases, len(s.Power), skipped,
		)
	}

	if hasHR {
		s.HeartRate = hr
	}
	if hasElevation {
		s.Elevation = elevation
	}

	s.Metadata.StartTime = start
	s.Metadata.DurationSeconds = s.Len()
	if len(doc.Tracks) > 0 {
		s.Metadata.Name = doc.Tracks[0].Name
	}
	s.Metadata.Device = doc.Creator
	return s, nil
}

func flattenPoints(doc *gpxFile) []gpxPoint {
	var out []gpxPoint
	for _, trk := range doc.Tracks {
		for _, seg := range trk.Segments {
			out = append(out, seg.Points...)
		}
	}
	return out
}

// extensionValues maps lowercased local tag/attribute names to their first
// numeric value inside one trkpt's extensions blob.
type extensionValues map[string]float64

// lookup returns the first alias with a sign-valid value. minValid is the
// lowest accepted value: 0 for power (coasting is real), 1 for heart rate
// (0 bpm is a dropout, not a reading).
func (e extensionValues) lookup(aliases []string, minValid float64) (int, bool) {
	for _, alias := range aliases {
		if v, ok := e[alias]; ok && v >= minValid {
			return roundToInt(v), true
		}
	}
	return 0, false
}

// scanExtensions walks the raw inner XML of an extensions element and records
// every leaf value, keyed by lowercased local name. Vendor namespace prefixes
// disappear in the process, which is the point.
func scanExtensions(inner []byte) extensionValues {
	values := extensionValues{}
	if len(inner) == 0 {
		return values
	}

	dec := xml.NewDecoder(bytes.NewReader(inner))
	var current string
	for {
		tok, err := dec.Token()
		if err != nil {
			return values
		}
		switch t := tok.(type) {
		case xml.StartElement:
			current = strings.ToLower(t.Name.Local)
			for _, attr := range t.Attr {
				record(values, attr.Name.Local, attr.Value)
			}
		case xml.CharData:
			if current != "" {
				record(values, current, string(t))
			}
		case xml.EndElement:
			current = ""
		}
	}
}

func record(values extensionValues, name, raw string) {
	key := strings.ToLower(name)
	if _, exists := values[key]; exists {
		return
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return
	}
	values[key] = v
}

package parser

import (
	"testing"
	"time"

	"github.com/tormoder/fit"
)

func TestDetectFormat(t *testing.T) {
	fitData := buildActivityFIT(t, func(activity *fit.ActivityFile, start time.Time) {
		rec := fit.NewRecordMsg()
		rec.Timestamp = start
		rec.Power = 200
		activity.Records = append(activity.Records, rec)
	})

	cases := []struct {
		name     string
		filename string
		data     []byte
		want     string
	}{
		{"fit extension", "ride.FIT", nil, FormatFIT},
		{"gpx extension", "ride.gpx", nil, FormatGPX},
		{"csv extension", "ride.csv", nil, FormatCSV},
		{"fit magic", "", fitData, FormatFIT},
		{"gpx sniff", "", []byte(`<?xml version="1.0"?><gpx></gpx>`), FormatGPX},
		{"csv fallback", "ride.txt", []byte("Power\n250"), FormatCSV},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectFormat(tc.filename, tc.data); got != tc.want {
				t.Fatalf("DetectFormat(%q) = %q, want %q", tc.filename, got, tc.want)
			}
		})
	}
}

func TestParseDispatch(t *testing.T) {
	s, err := Parse([]byte("Power\n250\n260"), "")
	if err != nil {
		t.Fatalf("Parse with detection error: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("got %d samples, want 2", s.Len())
	}

	if _, err := Parse([]byte("Power\n250"), "xlsx"); err == nil {
		t.Fatal("expected error for unknown format")
	}
	if _, err := Parse(nil, FormatCSV); err == nil {
		t.Fatal("expected error for empty payload")
	}
}

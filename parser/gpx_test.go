package parser

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func gpxDoc(points string) []byte {
	return []byte(`<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="UnitTest" xmlns="http://www.topografix.com/GPX/1/1">
 <trk><name>FTP Test Ride</name><trkseg>
` + points + ` </trkseg></trk>
</gpx>`)
}

func gpxPointAt(second int, body string) string {
	return fmt.Sprintf(
		"  <trkpt lat=\"47.6\" lon=\"-122.3\"><time>2026-03-12T18:00:%02dZ</time>%s</trkpt>\n",
		second, body,
	)
}

func TestParseGPXGenericPowerTag(t *testing.T) {
	data := gpxDoc(
		gpxPointAt(0, "<ele>12.5</ele><extensions><power>250</power></extensions>") +
			gpxPointAt(1, "<ele>12.9</ele><extensions><power>260</power></extensions>"),
	)

	s, err := ParseGPX(data)
	if err != nil {
		t.Fatalf("ParseGPX error: %v", err)
	}

	if !reflect.DeepEqual(s.Power, []int{250, 260}) {
		t.Fatalf("power = %v", s.Power)
	}
	if !reflect.DeepEqual(s.Time, []int{0, 1}) {
		t.Fatalf("time = %v", s.Time)
	}
	if s.Elevation == nil || s.Elevation[0] != 12.5 {
		t.Fatalf("elevation = %v", s.Elevation)
	}
	if s.Metadata.Name != "FTP Test Ride" {
		t.Fatalf("name = %q", s.Metadata.Name)
	}
	if s.Metadata.Device != "UnitTest" {
		t.Fatalf("device = %q", s.Metadata.Device)
	}
}

func TestParseGPXVendorPrefixedTags(t *testing.T) {
	ext := `<extensions><gpxtpx:TrackPointExtension xmlns:gpxtpx="g"><gpxtpx:hr>152</gpxtpx:hr><gpxtpx:PowerInWatts>245</gpxtpx:PowerInWatts></gpxtpx:TrackPointExtension></extensions>`
	data := gpxDoc(gpxPointAt(0, ext) + gpxPointAt(1, ext))

	s, err := ParseGPX(data)
	if err != nil {
		t.Fatalf("ParseGPX error: %v", err)
	}

	if s.Power[0] != 245 {
		t.Fatalf("power = %v, vendor-prefixed tag not found", s.Power)
	}
	if s.HeartRate == nil || s.HeartRate[0] != 152 {
		t.Fatalf("heart rate = %v", s.HeartRate)
	}
}

func TestParseGPXAttributeForm(t *testing.T) {
	ext := `<extensions><data power="238" hr="149"/></extensions>`
	data := gpxDoc(gpxPointAt(0, ext) + gpxPointAt(1, ext))

	s, err := ParseGPX(data)
	if err != nil {
		t.Fatalf("ParseGPX error: %v", err)
	}

	if s.Power[0] != 238 {
		t.Fatalf("power = %v, attribute form not found", s.Power)
	}
	if s.HeartRate == nil || s.HeartRate[0] != 149 {
		t.Fatalf("heart rate = %v", s.HeartRate)
	}
}

func TestParseGPXSkipsPointsWithoutTimestamps(t *testing.T) {
	data := gpxDoc(
		gpxPointAt(0, "<extensions><power>250</power></extensions>") +
			"  <trkpt lat=\"47.6\" lon=\"-122.3\"><extensions><power>999</power></extensions></trkpt>\n" +
			gpxPointAt(2, "<extensions><power>260</power></extensions>"),
	)

	s, err := ParseGPX(data)
	if err != nil {
		t.Fatalf("ParseGPX error: %v", err)
	}

	// The timestampless point is skipped outright, never zero-filled.
	if !reflect.DeepEqual(s.Power, []int{250, 260}) {
		t.Fatalf("power = %v", s.Power)
	}
	if !reflect.DeepEqual(s.Time, []int{0, 2}) {
		t.Fatalf("time = %v", s.Time)
	}
}

func TestParseGPXFailures(t *testing.T) {
	if _, err := ParseGPX([]byte("<gpx><trk><trkseg></trkseg></trk></gpx>")); err == nil ||
		!strings.Contains(err.Error(), "no track points") {
		t.Fatalf("empty track: %v", err)
	}

	noPower := gpxDoc(gpxPointAt(0, "<extensions><cad>90</cad></extensions>"))
	if _, err := ParseGPX(noPower); err == nil || !strings.Contains(err.Error(), "power extension") {
		t.Fatalf("missing power: %v", err)
	}

	if _, err := ParseGPX([]byte("<gpx><unclosed")); err == nil {
		t.Fatal("expected error for malformed xml")
	}
}

package ftptest

import (
	"strings"
	"testing"
)

func TestAnalyzeFullPipeline(t *testing.T) {
	n := 20 * 60
	s := seriesOf(steadyPower(n, 250))
	s.HeartRate = make([]int, n)
	for i := range s.HeartRate {
		s.HeartRate[i] = 162
	}

	a, err := Analyze(s, Config{TargetMinutes: 20, WeightKG: 70})
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	if a.Stats.ClassicFTP != 238 {
		t.Fatalf("classic FTP = %d, want 238", a.Stats.ClassicFTP)
	}
	if a.Pacing.Score != 100 {
		t.Fatalf("pacing score = %d, want 100", a.Pacing.Score)
	}
	if a.HeartRate == nil {
		t.Fatal("heart rate analysis missing despite HR channel")
	}
	if a.HeartRate.Average != 162 {
		t.Fatalf("hr average = %d, want 162", a.HeartRate.Average)
	}
	if a.WattsPerKg == nil {
		t.Fatal("watts-per-kg missing despite weight")
	}
	if a.WattsPerKg.ClassicFTPPerKg != 3.4 {
		t.Fatalf("classic FTP per kg = %v, want 3.4", a.WattsPerKg.ClassicFTPPerKg)
	}
	if len(a.Power) != n {
		t.Fatalf("analysis power length = %d, want %d", len(a.Power), n)
	}
}

func TestAnalyzeOptionalAnalysesSkippedNotZeroed(t *testing.T) {
	a, err := Analyze(seriesOf(steadyPower(20*60, 250)), Config{})
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	if a.HeartRate != nil {
		t.Fatal("heart rate analysis present without an HR channel")
	}
	if a.WattsPerKg != nil {
		t.Fatal("watts-per-kg present without rider weight")
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	power := make([]int, 45*60)
	for i := range power {
		power[i] = 200 + (i*37)%80
	}

	first, err := Analyze(seriesOf(power), Config{TargetMinutes: 20})
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	second, err := Analyze(seriesOf(power), Config{TargetMinutes: 20})
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	if first.Segment != second.Segment {
		t.Fatalf("segment differs across runs: %+v vs %+v", first.Segment, second.Segment)
	}
	if first.Stats != second.Stats {
		t.Fatalf("stats differ across runs: %+v vs %+v", first.Stats, second.Stats)
	}
	if first.Pacing.Score != second.Pacing.Score {
		t.Fatalf("score differs across runs: %d vs %d", first.Pacing.Score, second.Pacing.Score)
	}
}

func TestAnalyzeEmptySeries(t *testing.T) {
	if _, err := Analyze(&Series{}, Config{}); err == nil {
		t.Fatal("expected error for empty series")
	}
	if _, err := Analyze(nil, Config{}); err == nil {
		t.Fatal("expected error for nil series")
	}
}

func TestBuildTrainingNotes(t *testing.T) {
	n := 20 * 60
	s := seriesOf(steadyPower(n, 250))
	s.HeartRate = make([]int, n)
	for i := range s.HeartRate {
		s.HeartRate[i] = 160
	}
	s.Metadata.Name = "Thursday FTP Test"

	a, err := Analyze(s, Config{WeightKG: 72.5})
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	notes := BuildTrainingNotes(a)

	for _, want := range []string{
		"FTP Test Summary",
		"Thursday FTP Test",
		"238 W classic",
		"score 100/100",
		"W/kg",
	} {
		if !strings.Contains(notes, want) {
			t.Fatalf("notes missing %q:\n%s", want, notes)
		}
	}
}

func TestBuildTrainingNotesNil(t *testing.T) {
	if got := BuildTrainingNotes(nil); got != "" {
		t.Fatalf("notes for nil analysis = %q, want empty", got)
	}
}

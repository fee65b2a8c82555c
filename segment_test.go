package ftptest

import (
	"strings"
	"testing"
)

func seriesOf(power []int) *Series {
	s := &Series{
		Power: power,
		Time:  make([]int, len(power)),
	}
	for i := range s.Time {
		s.Time[i] = i
	}
	s.Metadata.DurationSeconds = len(power)
	return s
}

func TestExtractBestSegmentNearTargetPassesThrough(t *testing.T) {
	// 22 minutes against a 20-minute target sits inside the band.
	s := seriesOf(steadyPower(22*60, 250))

	segment, info := ExtractBestSegment(s, 20)

	if segment != s {
		t.Fatal("expected the original series back, not a copy")
	}
	if info.StartIndex != 0 || info.Duration != 22*60 {
		t.Fatalf("info = %+v, want full pass-through", info)
	}
	if !strings.Contains(info.Reason, "close to target") {
		t.Fatalf("reason = %q", info.Reason)
	}
}

func TestExtractBestSegmentShortRecordingPassesThrough(t *testing.T) {
	s := seriesOf(steadyPower(10*60, 250))

	segment, info := ExtractBestSegment(s, 20)

	if segment.Len() != 10*60 {
		t.Fatalf("segment length = %d, want full short recording", segment.Len())
	}
	if !strings.Contains(info.Reason, "short workout") {
		t.Fatalf("reason = %q", info.Reason)
	}
}

func TestExtractBestSegmentFindsDominantWindow(t *testing.T) {
	// A 90-minute ride at 180w with one 20-minute block at 280w starting at
	// minute 40. The block begins on a stride boundary, so the scan must land
	// exactly on it.
	n := 90 * 60
	effortStart := 40 * 60
	effortEnd := effortStart + 20*60
	power := make([]int, n)
	for i := range power {
		if i >= effortStart && i < effortEnd {
			power[i] = 280
		} else {
			power[i] = 180
		}
	}
	s := seriesOf(power)
	s.HeartRate = make([]int, n)
	for i := range s.HeartRate {
		s.HeartRate[i] = 140 + i%10
	}

	segment, info := ExtractBestSegment(s, 20)

	if info.StartIndex != effortStart {
		t.Fatalf("start index = %d, want %d", info.StartIndex, effortStart)
	}
	if info.Duration != 20*60 {
		t.Fatalf("duration = %d, want %d", info.Duration, 20*60)
	}
	if !strings.Contains(info.Reason, "avg 280w") {
		t.Fatalf("reason = %q", info.Reason)
	}
	for i, p := range segment.Power {
		if p != 280 {
			t.Fatalf("segment power[%d] = %d, want 280", i, p)
		}
	}
	if len(segment.HeartRate) != segment.Len() {
		t.Fatalf("heart rate length %d out of step with power %d", len(segment.HeartRate), segment.Len())
	}
	if segment.HeartRate[0] != s.HeartRate[effortStart] {
		t.Fatal("heart rate channel not sliced with the same indices")
	}
	if segment.Time[0] != 0 {
		t.Fatalf("time not rebased: first sample at %d", segment.Time[0])
	}
	if segment.Metadata.DurationSeconds != 20*60 {
		t.Fatalf("metadata duration = %d, want %d", segment.Metadata.DurationSeconds, 20*60)
	}
}

func TestExtractBestSegmentTieKeepsEarliest(t *testing.T) {
	// Uniform power everywhere: every window ties, the first must win.
	s := seriesOf(steadyPower(60*60, 250))

	_, info := ExtractBestSegment(s, 20)

	if info.StartIndex != 0 {
		t.Fatalf("start index = %d, want 0 on ties", info.StartIndex)
	}
}

func TestExtractBestSegmentDefaultTarget(t *testing.T) {
	s := seriesOf(steadyPower(19*60, 250))

	_, info := ExtractBestSegment(s, 0)

	// 19 minutes is within the band of the default 20-minute target.
	if info.Duration != 19*60 {
		t.Fatalf("duration = %d, want pass-through against default target", info.Duration)
	}
}

package ftptest

import "fmt"

const (
	// DefaultTargetMinutes is the classic 20-minute FTP test duration.
	DefaultTargetMinutes = 20

	// Window means are evaluated every 30 samples rather than every sample.
	// This is a deliberate performance/precision trade-off: the result is an
	// approximate best window, not a proven global maximum, which is
	// acceptable for picking a test segment out of a long ride.
	segmentStride = 30

	// A recording within this band of the target duration is analyzed whole.
	segmentBandLow  = 0.75
	segmentBandHigh = 1.25
)

// SegmentInfo records which slice of the recording was analyzed. It is always
// present in results, including the pass-through cases.
type SegmentInfo struct {
	StartIndex int    `json:"start_index"`
	Duration   int    `json:"duration"`
	Reason     string `json:"reason"`
}

// ExtractBestSegment selects the portion of a recording to analyze.
//
// Recordings close to the target duration (within [0.75, 1.25] of it) and
// short recordings pass through unchanged. Longer recordings are scanned for
// the contiguous window of exactly targetMinutes*60 samples with the highest
// mean power; ties keep the earliest window. All optional channels are sliced
// with the same indices so the returned series stays aligned.
func ExtractBestSegment(s *Series, targetMinutes int) (*Series, SegmentInfo) {
	if targetMinutes <= 0 {
		targetMinutes = DefaultTargetMinutes
	}
	target := targetMinutes * 60
	n := s.Len()

	if float64(n) >= segmentBandLow*float64(target) && float64(n) <= segmentBandHigh*float64(target) {
		return s, SegmentInfo{
			StartIndex: 0,
			Duration:   n,
			Reason:     "full workout used (close to target)",
		}
	}
	if float64(n) < segmentBandLow*float64(target) {
		return s, SegmentInfo{
			StartIndex: 0,
			Duration:   n,
			Reason:     "short workout - using all available data",
		}
	}

	bestStart := 0
	bestAvg := windowMean(s.Power, 0, target)
	for start := segmentStride; start+target <= n; start += segmentStride {
		avg := windowMean(s.Power, start, target)
		if avg > bestAvg {
			bestAvg = avg
			bestStart = start
		}
	}

	info := SegmentInfo{
		StartIndex: bestStart,
		Duration:   target,
		Reason: fmt.Sprintf(
			"best %d-minute effort found from minute %d to minute %d (avg %dw)",
			targetMinutes,
			bestStart/60,
			(bestStart+target)/60,
			roundInt(bestAvg),
		),
	}
	return sliceSeries(s, bestStart, bestStart+target), info
}

func windowMean(power []int, start, length int) float64 {
	sum := 0
	for _, p := range power[start : start+length] {
		sum += p
	}
	return float64(sum) / float64(length)
}

// sliceSeries cuts every channel of the series to [start, end) and rebases the
// time axis so the segment starts at zero.
func sliceSeries(s *Series, start, end int) *Series {
	out := &Series{
		Power:    append([]int(nil), s.Power[start:end]...),
		Metadata: s.Metadata,
	}
	out.Metadata.DurationSeconds = end - start

	if len(s.Time) >= end {
		out.Time = make([]int, 0, end-start)
		base := s.Time[start]
		for _, t := range s.Time[start:end] {
			out.Time = append(out.Time, t-base)
		}
	}
	if s.HeartRate != nil {
		out.HeartRate = append([]int(nil), s.HeartRate[start:end]...)
	}
	if s.Speed != nil {
		out.Speed = append([]float64(nil), s.Speed[start:end]...)
	}
	if s.Distance != nil {
		out.Distance = append([]float64(nil), s.Distance[start:end]...)
	}
	if s.Elevation != nil {
		out.Elevation = append([]float64(nil), s.Elevation[start:end]...)
	}
	return out
}

package ftptest

import "fmt"

// Config controls optional analysis inputs for one test.
type Config struct {
	// TargetMinutes is the intended test duration; zero means the default
	// 20-minute protocol.
	TargetMinutes int

	// WeightKG enables watts-per-kilogram grading when positive.
	WeightKG float64
}

// Analysis is the complete result of analyzing one recording. HeartRate and
// WattsPerKg are nil when the recording had no heart-rate channel or no rider
// weight was supplied; absent inputs skip their analyses, they never stand in
// as zeros.
type Analysis struct {
	Segment SegmentInfo    `json:"segment"`
	Stats   Stats          `json:"stats"`
	Pacing  PacingAnalysis `json:"pacing"`

	HeartRate  *HeartRateStats  `json:"heart_rate,omitempty"`
	WattsPerKg *WattsPerKgStats `json:"watts_per_kg,omitempty"`

	// The analyzed series, post segment extraction. Charts and reports
	// downstream draw from these, not the raw recording.
	Power     []int     `json:"power"`
	HRSeries  []int     `json:"hr_series,omitempty"`
	Speed     []float64 `json:"speed,omitempty"`
	Distance  []float64 `json:"distance,omitempty"`
	Elevation []float64 `json:"elevation,omitempty"`

	Metadata Metadata `json:"metadata"`
}

// Analyze runs the full pipeline on a decoded series: segment extraction, power
// statistics, pacing, and the optional heart-rate and watts-per-kg analyses.
// It is a pure function of its inputs; the same series and config always yield
// the same result.
func Analyze(s *Series, cfg Config) (*Analysis, error) {
	if s == nil || s.Len() == 0 {
		return nil, fmt.Errorf("analyze: series has no power samples")
	}

	segment, info := ExtractBestSegment(s, cfg.TargetMinutes)

	a := &Analysis{
		Segment:   info,
		Stats:     ComputeStats(segment.Power),
		Pacing:    AnalyzePacing(segment.Power),
		Power:     segment.Power,
		HRSeries:  segment.HeartRate,
		Speed:     segment.Speed,
		Distance:  segment.Distance,
		Elevation: segment.Elevation,
		Metadata:  segment.Metadata,
	}

	if segment.HeartRate != nil {
		hr := ComputeHeartRateStats(segment.HeartRate, segment.Power)
		a.HeartRate = &hr
	}
	if cfg.WeightKG > 0 {
		wkg := CalculateWattsPerKg(a.Stats, cfg.WeightKG)
		a.WattsPerKg = &wkg
	}

	return a, nil
}

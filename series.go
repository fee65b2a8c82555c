package ftptest

import "time"

// Series is the canonical decoded form of one workout recording. Every format
// parser produces a Series; every analysis function consumes slices of it.
//
// Power and Time are always present and the same length. The optional channels
// (HeartRate, Speed, Distance, Elevation) are nil when the recording carried no
// such channel at all; when non-nil they are the same length as Power. Within a
// non-nil HeartRate series, 0 marks a sample with no sensor reading. That
// sentinel is part of the domain (a heart rate of 0 bpm is never a real value),
// so downstream code must filter zeros rather than average over them.
type Series struct {
	Power []int `json:"power"`
	Time  []int `json:"time"`

	HeartRate []int     `json:"heart_rate,omitempty"`
	Speed     []float64 `json:"speed,omitempty"`
	Distance  []float64 `json:"distance,omitempty"`
	Elevation []float64 `json:"elevation,omitempty"`

	Metadata Metadata `json:"metadata"`
}

// Metadata carries informational descriptors of the recording. The analysis
// core never reads these; they exist for display and artifact labeling only.
type Metadata struct {
	StartTime       time.Time `json:"start_time,omitempty"`
	DurationSeconds int       `json:"duration_seconds"`
	Device          string    `json:"device,omitempty"`
	Sport           string    `json:"sport,omitempty"`
	Name            string    `json:"name,omitempty"`
}

// Len returns the sample count of the series.
func (s *Series) Len() int {
	return len(s.Power)
}

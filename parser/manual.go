package parser

import (
	"fmt"

	ftptest "ftp-analyzer"
)

// ExpandManualEntry turns per-minute average power values into a per-second
// series. Each minute value repeats 60 times; the result is cut or padded
// (repeating the final minute) to exactly targetMinutes*60 samples, which
// downstream consumers rely on. targetMinutes <= 0 means "as entered".
func ExpandManualEntry(minuteWatts []int, targetMinutes int) (*ftptest.Series, error) {
	if len(minuteWatts) == 0 {
		return nil, fmt.Errorf("manual entry: no minute values")
	}
	for i, w := range minuteWatts {
		if w < 0 {
			return nil, fmt.Errorf("manual entry: minute %d has negative power %d", i+1, w)
		}
	}

	if targetMinutes <= 0 {
		targetMinutes = len(minuteWatts)
	}
	total := targetMinutes * 60

	s := &ftptest.Series{
		Power: make([]int, 0, total),
		Time:  make([]int, 0, total),
	}
	for i := 0; i < total; i++ {
		minute := i / 60
		if minute >= len(minuteWatts) {
			minute = len(minuteWatts) - 1
		}
		s.Power = append(s.Power, minuteWatts[minute])
		s.Time = append(s.Time, i)
	}

	s.Metadata.DurationSeconds = total
	s.Metadata.Name = "manual entry"
	return s, nil
}

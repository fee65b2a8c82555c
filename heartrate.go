package ftptest

import "math"

// HeartRateStats summarizes the cardiac response to one test effort.
//
// LTHR here is the mean heart rate across the whole test. That is an
// approximation of lactate threshold heart rate, not a measured one; it is only
// as good as the test effort was honest.
type HeartRateStats struct {
	Average int `json:"average"`
	Max     int `json:"max"`
	Min     int `json:"min"`
	LTHR    int `json:"lthr"`

	// Drift is the percent change from first-quarter to last-quarter average
	// heart rate. CardiacDrift is bpm gained per watt lost over the same
	// quarters: positive values mean heart rate rose while power fell, the
	// classic fatigue/dehydration signature.
	Drift        float64 `json:"drift"`
	CardiacDrift float64 `json:"cardiac_drift"`
}

// ComputeHeartRateStats derives heart-rate metrics from paired heart-rate and
// power series of equal length. Zero heart-rate samples are sensor dropouts and
// are excluded from every average, minimum, and maximum.
func ComputeHeartRateStats(heartRate, power []int) HeartRateStats {
	if len(heartRate) == 0 {
		panic("ftptest: ComputeHeartRateStats called with empty heart rate series")
	}

	valid := make([]int, 0, len(heartRate))
	for _, hr := range heartRate {
		if hr > 0 {
			valid = append(valid, hr)
		}
	}
	if len(valid) == 0 {
		// A present-but-all-dropout channel yields a zeroed result rather
		// than a panic: the channel existed, the sensor just never reported.
		return HeartRateStats{}
	}

	minHR, maxHR := valid[0], valid[0]
	for _, hr := range valid[1:] {
		if hr < minHR {
			minHR = hr
		}
		if hr > maxHR {
			maxHR = hr
		}
	}

	avg := roundInt(meanInt(valid))
	stats := HeartRateStats{
		Average: avg,
		Max:     maxHR,
		Min:     minHR,
		LTHR:    avg,
	}

	quarter := len(heartRate) / 4
	if quarter == 0 {
		return stats
	}

	firstQHR := meanPositive(heartRate[:quarter])
	lastQHR := meanPositive(heartRate[len(heartRate)-quarter:])
	if firstQHR > 0 {
		stats.Drift = round1((lastQHR - firstQHR) / firstQHR * 100.0)
	}

	if len(power) == len(heartRate) {
		firstQPower := meanInt(power[:quarter])
		lastQPower := meanInt(power[len(power)-quarter:])
		drop := firstQPower - lastQPower
		// Near-flat power makes bpm-per-watt meaningless and numerically
		// explosive, so the ratio is only reported for a real drop.
		if drop > 1 {
			stats.CardiacDrift = round2((lastQHR - firstQHR) / math.Abs(drop))
		}
	}

	return stats
}

// meanPositive averages the strictly positive values of a slice.
func meanPositive(values []int) float64 {
	sum, count := 0, 0
	for _, v := range values {
		if v > 0 {
			sum += v
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

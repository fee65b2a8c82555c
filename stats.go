package ftptest

import (
	"fmt"
	"math"
	"strconv"
)

const (
	// Normalized power uses a rolling 30-sample window (30 seconds at 1 Hz)
	// raised to the 4th power. Both constants come from the standard
	// Coggan-style definition and are fixed, not configurable.
	npWindowSamples = 30
	npExponent      = 4

	// FTP is estimated as 95% of the sustained test power.
	ftpFactor = 0.95
)

// Stats holds the power statistics of one test effort.
type Stats struct {
	Average          int     `json:"average"`
	Normalized       int     `json:"normalized"`
	Min              int     `json:"min"`
	Max              int     `json:"max"`
	StdDev           int     `json:"std_dev"`
	VariabilityIndex string  `json:"variability_index"`
	IntensityFactor  float64 `json:"intensity_factor"`
	ClassicFTP       int     `json:"classic_ftp"`
	NormalizedFTP    int     `json:"normalized_ftp"`
}

// ComputeStats derives power statistics from a non-empty power series.
//
// An empty series is a contract violation: every successful parse guarantees at
// least one power sample, so a caller reaching this with no data has skipped
// that check. It panics rather than returning a soft zero result.
func ComputeStats(power []int) Stats {
	if len(power) == 0 {
		panic("ftptest: ComputeStats called with empty power series")
	}

	mean := meanInt(power)
	np := normalizedPower(power)

	minP, maxP := power[0], power[0]
	for _, p := range power[1:] {
		if p < minP {
			minP = p
		}
		if p > maxP {
			maxP = p
		}
	}

	avg := roundInt(mean)
	norm := roundInt(np)

	// The variability index is kept both as a 3-decimal display string and as
	// the float parsed back from that string, so callers comparing intensity
	// never round-trip through formatting themselves.
	vi := "0.000"
	if avg > 0 {
		vi = fmt.Sprintf("%.3f", float64(norm)/float64(avg))
	}
	intensity, _ := strconv.ParseFloat(vi, 64)

	return Stats{
		Average:          avg,
		Normalized:       norm,
		Min:              minP,
		Max:              maxP,
		StdDev:           roundInt(stdDevInt(power, mean)),
		VariabilityIndex: vi,
		IntensityFactor:  intensity,
		ClassicFTP:       roundInt(float64(avg) * ftpFactor),
		NormalizedFTP:    roundInt(float64(norm) * ftpFactor),
	}
}

// normalizedPower implements the rolling 30-sample 4th-power average. Series
// shorter than one window fall back to the plain average; that fallback is a
// defined result, not an error.
func normalizedPower(power []int) float64 {
	if len(power) < npWindowSamples {
		return meanInt(power)
	}

	sum := 0
	for i := 0; i < npWindowSamples; i++ {
		sum += power[i]
	}

	fourthTotal := 0.0
	count := 0
	for i := npWindowSamples - 1; i < len(power); i++ {
		if i >= npWindowSamples {
			sum += power[i] - power[i-npWindowSamples]
		}
		rolling := float64(sum) / float64(npWindowSamples)
		fourthTotal += math.Pow(rolling, npExponent)
		count++
	}
	return math.Pow(fourthTotal/float64(count), 1.0/npExponent)
}

func meanInt(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

// stdDevInt is the population standard deviation (divide by N, not N-1).
func stdDevInt(values []int, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		d := float64(v) - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}

func roundInt(v float64) int {
	return int(math.Round(v))
}

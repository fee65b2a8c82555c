package ftptest

import (
	"fmt"
	"math"
)

// Pacing score deductions. The thresholds and magnitudes are a fixed coaching
// heuristic; tests pin the exact boundary values.
const (
	fadeSeverePct   = 10.0
	fadeModeratePct = 5.0
	fadeMinorPct    = 3.0

	cvHighPct     = 10.0
	cvElevatedPct = 7.0
	cvNoticePct   = 5.0

	// Watts recoverable per fade point above the minor threshold.
	fadeWattsCoefficient = 0.5
)

// PacingAnalysis scores how evenly an effort was paced.
type PacingAnalysis struct {
	Score           int     `json:"score"`
	FadePercent     float64 `json:"fade_percent"`
	CoefficientVar  float64 `json:"coefficient_of_variation"`
	FirstQuarterAvg int     `json:"first_quarter_avg"`
	LastQuarterAvg  int     `json:"last_quarter_avg"`
	FirstHalfAvg    int     `json:"first_half_avg"`
	SecondHalfAvg   int     `json:"second_half_avg"`
	Strategy        string  `json:"strategy"`

	Insights []PacingInsight `json:"insights"`
}

// PacingInsight is one structured coaching observation.
type PacingInsight struct {
	Level          string `json:"level"` // error|warning|info|success
	Message        string `json:"message"`
	Recommendation string `json:"recommendation,omitempty"`
}

// AnalyzePacing scores pacing quality on a 0-100 scale from a non-empty power
// series. Panics on an empty series, matching ComputeStats.
func AnalyzePacing(power []int) PacingAnalysis {
	if len(power) == 0 {
		panic("ftptest: AnalyzePacing called with empty power series")
	}

	quarter := len(power) / 4
	half := len(power) / 2

	firstQ := meanInt(power[:quarter])
	lastQ := meanInt(power[len(power)-quarter:])
	firstH := meanInt(power[:half])
	secondH := meanInt(power[half:])

	// Series shorter than four samples have empty quarters; fade is defined
	// as zero there rather than dividing by nothing.
	fade := 0.0
	if quarter > 0 && firstQ > 0 {
		fade = (firstQ - lastQ) / firstQ * 100.0
	}

	mean := meanInt(power)
	cv := 0.0
	if mean > 0 {
		cv = stdDevInt(power, mean) / mean * 100.0
	}

	score := 100
	switch {
	case fade > fadeSeverePct:
		score -= 30
	case fade > fadeModeratePct:
		score -= 15
	case fade > fadeMinorPct:
		score -= 5
	}
	if fade < -fadeMinorPct {
		score -= 10
	}
	switch {
	case cv > cvHighPct:
		score -= 20
	case cv > cvElevatedPct:
		score -= 10
	case cv > cvNoticePct:
		score -= 5
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	analysis := PacingAnalysis{
		Score:           score,
		FadePercent:     round1(fade),
		CoefficientVar:  round1(cv),
		FirstQuarterAvg: roundInt(firstQ),
		LastQuarterAvg:  roundInt(lastQ),
		FirstHalfAvg:    roundInt(firstH),
		SecondHalfAvg:   roundInt(secondH),
		Strategy:        pacingStrategy(fade),
	}
	analysis.Insights = buildInsights(power, fade, cv, firstQ)
	return analysis
}

func pacingStrategy(fade float64) string {
	switch {
	case fade > fadeModeratePct:
		return "positive-split"
	case fade < -fadeMinorPct:
		return "negative-split"
	default:
		return "even"
	}
}

func buildInsights(power []int, fade, cv, firstQ float64) []PacingInsight {
	insights := make([]PacingInsight, 0, 3)

	switch {
	case fade > fadeSeverePct:
		insights = append(insights, PacingInsight{
			Level:   "error",
			Message: fmt.Sprintf("Significant power fade of %.1f%% - you started too hard and paid for it late in the test.", fade),
			Recommendation: fmt.Sprintf(
				"Open your next test at about %dw (95%% of your first-quarter average) and hold it steady.",
				roundInt(firstQ*0.95),
			),
		})
	case fade > fadeModeratePct:
		insights = append(insights, PacingInsight{
			Level:          "warning",
			Message:        fmt.Sprintf("Moderate power fade of %.1f%% across the effort.", fade),
			Recommendation: "Start 2-3% easier and build through the back half.",
		})
	case fade < -fadeMinorPct:
		insights = append(insights, PacingInsight{
			Level:   "info",
			Message: fmt.Sprintf("Negative split of %.1f%% - you got stronger as the test went on. There may be more in the tank.", -fade),
		})
	default:
		insights = append(insights, PacingInsight{
			Level:   "success",
			Message: "Excellent pacing strategy. Power output stayed close to steady from start to finish.",
		})
	}

	switch {
	case cv > cvHighPct:
		insights = append(insights, PacingInsight{
			Level:          "error",
			Message:        fmt.Sprintf("Very high power variability (CV %.1f%%). Surging wastes energy that steady output would bank.", cv),
			Recommendation: "Pick a target wattage and ride the whole test within a narrow band around it.",
		})
	case cv > cvElevatedPct:
		insights = append(insights, PacingInsight{
			Level:   "warning",
			Message: fmt.Sprintf("Elevated power variability (CV %.1f%%). Smoother output would raise your sustainable average.", cv),
		})
	}

	if fade > fadeModeratePct {
		wattsLost := roundInt((fade - fadeMinorPct) * fadeWattsCoefficient)
		projected := ComputeStats(power).ClassicFTP + wattsLost
		insights = append(insights, PacingInsight{
			Level:   "info",
			Message: fmt.Sprintf("With even pacing this effort projects to an FTP near %dw (about %dw left on the table).", projected, wattsLost),
		})
	}

	return insights
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

package ftptest

import (
	"fmt"
	"strings"
)

// BuildTrainingNotes turns an analysis into a plain-text training summary
// suitable for pasting into a training log.
func BuildTrainingNotes(a *Analysis) string {
	if a == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString("FTP Test Summary\n")
	if a.Metadata.Name != "" {
		fmt.Fprintf(&b, "Session: %s\n", a.Metadata.Name)
	}
	if !a.Metadata.StartTime.IsZero() {
		fmt.Fprintf(&b, "Start: %s\n", a.Metadata.StartTime.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(&b, "Segment: %s (%s)\n", formatDuration(a.Segment.Duration), a.Segment.Reason)

	fmt.Fprintf(
		&b,
		"Power %d avg / %d NP / %d max W | VI %s | IF %.3f\n",
		a.Stats.Average,
		a.Stats.Normalized,
		a.Stats.Max,
		a.Stats.VariabilityIndex,
		a.Stats.IntensityFactor,
	)
	fmt.Fprintf(
		&b,
		"Estimated FTP: %d W classic / %d W normalized\n",
		a.Stats.ClassicFTP,
		a.Stats.NormalizedFTP,
	)

	if a.HeartRate != nil {
		fmt.Fprintf(
			&b,
			"HR %d avg / %d max bpm | Drift %+.1f%% | Estimated LTHR %d bpm\n",
			a.HeartRate.Average,
			a.HeartRate.Max,
			a.HeartRate.Drift,
			a.HeartRate.LTHR,
		)
	}
	if a.WattsPerKg != nil {
		fmt.Fprintf(
			&b,
			"Power to weight: %.2f W/kg (FTP) | Grade %s - %s (top %d%%)\n",
			a.WattsPerKg.ClassicFTPPerKg,
			a.WattsPerKg.Grade,
			a.WattsPerKg.Category,
			100-a.WattsPerKg.Percentile,
		)
	}

	fmt.Fprintf(
		&b,
		"\nPacing: %s, score %d/100\n",
		a.Pacing.Strategy,
		a.Pacing.Score,
	)
	fmt.Fprintf(
		&b,
		"Quarters %d -> %d W (fade %+.1f%%) | CV %.1f%%\n",
		a.Pacing.FirstQuarterAvg,
		a.Pacing.LastQuarterAvg,
		a.Pacing.FadePercent,
		a.Pacing.CoefficientVar,
	)
	for _, in := range a.Pacing.Insights {
		fmt.Fprintf(&b, "- %s", in.Message)
		if in.Recommendation != "" {
			fmt.Fprintf(&b, " %s", in.Recommendation)
		}
		b.WriteByte('\n')
	}

	return strings.TrimSpace(b.String())
}

func formatDuration(seconds int) string {
	if seconds <= 0 {
		return "0s"
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

package parser

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tormoder/fit"

	ftptest "ftp-analyzer"
)

// recordSource is one strategy for locating the per-second record list inside
// a decoded FIT file. Sources are tried in priority order; the first one that
// yields records wins. New vendor layouts become new entries, not new
// conditionals.
type recordSource struct {
	name    string
	records func(f *fit.File) []*fit.RecordMsg
}

var recordSources = []recordSource{
	{"activity records", activityRecords},
	{"course records", courseRecords},
	{"lap summaries", lapExpandedRecords},
}

// ParseFIT decodes a FIT activity buffer into the canonical series.
//
// Device vendors disagree about where the record list lives, so the decoder
// probes the known locations in order: the activity's flat record list, a
// course file's record list, then per-second expansion of lap summary
// messages. The failure diagnostic names every location checked and what each
// held.
func ParseFIT(data []byte) (*ftptest.Series, error) {
	decoded, err := fit.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("fit: decode: %w", err)
	}

	var checked []string
	for _, src := range recordSources {
		records := src.records(decoded)
		if len(records) == 0 {
			checked = append(checked, src.name+" (none)")
			continue
		}
		s, err := seriesFromRecords(records)
		if err != nil {
			checked = append(checked, fmt.Sprintf("%s (%d records, %v)", src.name, len(records), err))
			continue
		}
		applyFITMetadata(decoded, s)
		return s, nil
	}

	return nil, fmt.Errorf("fit: no usable power records; checked %s", strings.Join(checked, ", "))
}

func activityRecords(f *fit.File) []*fit.RecordMsg {
	activity, err := f.Activity()
	if err != nil {
		return nil
	}
	return activity.Records
}

func courseRecords(f *fit.File) []*fit.RecordMsg {
	course, err := f.Course()
	if err != nil {
		return nil
	}
	return course.Records
}

// lapExpandedRecords synthesizes per-second records from lap averages. Some
// head units strip the record stream on export but keep lap summaries; an
// analysis from lap averages is flat within each lap but still places the
// effort on the time axis.
func lapExpandedRecords(f *fit.File) []*fit.RecordMsg {
	activity, err := f.Activity()
	if err != nil || len(activity.Laps) == 0 {
		return nil
	}

	var out []*fit.RecordMsg
	cursor := time.Time{}
	for _, lap := range activity.Laps {
		duration := lap.GetTotalTimerTimeScaled()
		if math.IsNaN(duration) || duration <= 0 {
			continue
		}
		start := validTimeOrZero(lap.StartTime)
		if start.IsZero() {
			start = cursor
		}
		if start.IsZero() {
			continue
		}

		seconds := int(duration)
		for i := 0; i < seconds; i++ {
			rec := fit.NewRecordMsg()
			rec.Timestamp = start.Add(time.Duration(i) * time.Second)
			rec.Power = lap.AvgPower
			rec.HeartRate = lap.AvgHeartRate
			out = append(out, rec)
		}
		cursor = start.Add(time.Duration(seconds) * time.Second)
	}
	return out
}

func seriesFromRecords(records []*fit.RecordMsg) (*ftptest.Series, error) {
	s := &ftptest.Series{}
	var (
		start    time.Time
		hasPower bool

		hr        []int
		speed     []float64
		distance  []float64
		elevation []float64

		hasHR, hasSpeed, hasDistance, hasElevation bool
	)

	dropped := 0
	for _, rec := range records {
		ts := validTimeOrZero(rec.Timestamp)
		if ts.IsZero() {
			// No timestamp means no place on the time axis.
			dropped++
			continue
		}
		if start.IsZero() {
			start = ts
		}

		power, ok := extractPower(rec)
		hasPower = hasPower || ok

		s.Power = append(s.Power, power)
		s.Time = append(s.Time, int(ts.Sub(start).Seconds()))

		if v, ok := extractHeartRate(rec); ok {
			hr = append(hr, v)
			hasHR = true
		} else {
			hr = append(hr, 0)
		}
		if v, ok := extractSpeed(rec); ok {
			speed = append(speed, round1(v*3.6))
			hasSpeed = true
		} else {
			speed = append(speed, 0)
		}
		if v, ok := extractDistance(rec); ok {
			distance = append(distance, math.Round(v))
			hasDistance = true
		} else {
			distance = append(distance, 0)
		}
		if v, ok := extractElevation(rec); ok {
			elevation = append(elevation, math.Round(v))
			hasElevation = true
		} else {
			elevation = append(elevation, 0)
		}
	}

	if len(s.Power) == 0 {
		return nil, fmt.Errorf("every record lacked a timestamp (%d dropped)", dropped)
	}
	if !hasPower {
		return nil, fmt.Errorf("no record held a valid power value (%d records)", len(s.Power))
	}

	// Optional channels are attached only when the device ever reported them.
	if hasHR {
		s.HeartRate = hr
	}
	if hasSpeed {
		s.Speed = speed
	}
	if hasDistance {
		s.Distance = distance
	}
	if hasElevation {
		s.Elevation = elevation
	}

	s.Metadata.StartTime = start
	s.Metadata.DurationSeconds = s.Len()
	return s, nil
}

func applyFITMetadata(f *fit.File, s *ftptest.Series) {
	activity, err := f.Activity()
	if err != nil || len(activity.Sessions) == 0 {
		return
	}
	session := activity.Sessions[0]
	s.Metadata.Sport = fmt.Sprint(session.Sport)
	if start := validTimeOrZero(session.StartTime); !start.IsZero() {
		s.Metadata.StartTime = start
	}
}

func extractPower(rec *fit.RecordMsg) (int, bool) {
	if rec.Power == math.MaxUint16 {
		return 0, false
	}
	return int(rec.Power), true
}

func extractHeartRate(rec *fit.RecordMsg) (int, bool) {
	if rec.HeartRate == math.MaxUint8 || rec.HeartRate == 0 {
		return 0, false
	}
	return int(rec.HeartRate), true
}

func extractSpeed(rec *fit.RecordMsg) (float64, bool) {
	speed := rec.GetEnhancedSpeedScaled()
	if isFinite(speed) && speed >= 0 {
		return speed, true
	}
	speed = rec.GetSpeedScaled()
	if isFinite(speed) && speed >= 0 {
		return speed, true
	}
	return 0, false
}

func extractDistance(rec *fit.RecordMsg) (float64, bool) {
	d := rec.GetDistanceScaled()
	if isFinite(d) && d >= 0 {
		return d, true
	}
	return 0, false
}

func extractElevation(rec *fit.RecordMsg) (float64, bool) {
	alt := rec.GetEnhancedAltitudeScaled()
	if isFinite(alt) {
		return alt, true
	}
	alt = rec.GetAltitudeScaled()
	if isFinite(alt) {
		return alt, true
	}
	return 0, false
}

func validTimeOrZero(t time.Time) time.Time {
	if t.IsZero() || fit.IsBaseTime(t) {
		return time.Time{}
	}
	return t
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

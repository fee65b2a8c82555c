package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	ftptest "ftp-analyzer"
)

// Column aliases for the generic CSV parser. Matching is case-insensitive
// substring, leftmost matching column wins.
var (
	powerAliases = []string{"power", "watts", "avg_power"}
	hrAliases    = []string{"heart", "hr", "bpm"}
	timeAliases  = []string{"time", "elapsed", "seconds"}
)

// TrainingPeaks exports use these exact headers.
const (
	tpPowerHeader = "Power (watts)"
	tpHRHeader    = "Heart Rate (bpm)"
	tpTimeHeader  = "Elapsed Time (seconds)"
)

// ParseCSV decodes a generic power CSV: a header row plus data rows, with the
// power, heart-rate, and time columns located by substring matching on the
// header names.
//
// Row rules: a power cell that fails to parse or is negative drops the whole
// row, keeping every channel aligned; a parsed 0 is a real sample (coasting)
// and stays. A heart-rate cell that fails to parse or is non-positive becomes
// 0 (sensor dropout) without dropping the row. Without a time column, time is
// the 0-based row index.
func ParseCSV(data []byte) (*ftptest.Series, error) {
	header, rows, err := readCSV(data)
	if err != nil {
		return nil, err
	}

	powerCol := findColumn(header, powerAliases)
	if powerCol < 0 {
		return nil, fmt.Errorf(
			"csv: no power column found in header %v (searched for %v, case-insensitive substring)",
			header, powerAliases,
		)
	}
	return buildCSVSeries(rows, powerCol, findColumn(header, hrAliases), findColumn(header, timeAliases))
}

// ParseTrainingPeaksCSV decodes a TrainingPeaks CSV export by its exact header
// names. It fails when the power header is absent so the caller can fall back
// to the generic parser.
func ParseTrainingPeaksCSV(data []byte) (*ftptest.Series, error) {
	header, rows, err := readCSV(data)
	if err != nil {
		return nil, err
	}

	powerCol := findExactColumn(header, tpPowerHeader)
	if powerCol < 0 {
		return nil, fmt.Errorf("csv: header %v has no %q column; not a TrainingPeaks export", header, tpPowerHeader)
	}
	return buildCSVSeries(rows, powerCol, findExactColumn(header, tpHRHeader), findExactColumn(header, tpTimeHeader))
}

func readCSV(data []byte) (header []string, rows [][]string, err error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("csv: malformed input: %w", err)
	}
	if len(all) < 2 {
		return nil, nil, fmt.Errorf("csv: %d line(s); need a header row and at least one data row", len(all))
	}
	return all[0], all[1:], nil
}

func findColumn(header []string, aliases []string) int {
	for i, name := range header {
		lower := strings.ToLower(strings.TrimSpace(name))
		for _, alias := range aliases {
			if strings.Contains(lower, alias) {
				return i
			}
		}
	}
	return -1
}

func findExactColumn(header []string, want string) int {
	for i, name := range header {
		if strings.TrimSpace(name) == want {
			return i
		}
	}
	return -1
}

func buildCSVSeries(rows [][]string, powerCol, hrCol, timeCol int) (*ftptest.Series, error) {
	s := &ftptest.Series{}
	if hrCol >= 0 {
		s.HeartRate = []int{}
	}

	for i, row := range rows {
		if powerCol >= len(row) {
			continue
		}
		power, ok := parsePowerCell(row[powerCol])
		if !ok {
			continue
		}

		s.Power = append(s.Power, power)
		s.Time = append(s.Time, parseTimeCell(row, timeCol, i))
		if hrCol >= 0 {
			s.HeartRate = append(s.HeartRate, parseHRCell(row, hrCol))
		}
	}

	if len(s.Power) == 0 {
		return nil, fmt.Errorf("csv: power column present but no row held a valid power value (%d rows checked)", len(rows))
	}

	// Time columns rarely start at zero; rebase so the series does.
	base := s.Time[0]
	for i := range s.Time {
		s.Time[i] -= base
	}
	s.Metadata.DurationSeconds = s.Len()
	return s, nil
}

func parsePowerCell(cell string) (int, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return roundToInt(v), true
}

func parseHRCell(row []string, hrCol int) int {
	if hrCol >= len(row) {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[hrCol]), 64)
	if err != nil || v <= 0 {
		return 0
	}
	return roundToInt(v)
}

func parseTimeCell(row []string, timeCol, index int) int {
	if timeCol < 0 || timeCol >= len(row) {
		return index
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[timeCol]), 64)
	if err != nil {
		return index
	}
	return roundToInt(v)
}

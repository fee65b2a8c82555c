package ftptest

// PerformanceGrade is one row of the fixed watts-per-kilogram grade table.
// MinWkg is inclusive, MaxWkg exclusive; the last row is open-ended.
type PerformanceGrade struct {
	Grade       string  `json:"grade"`
	Category    string  `json:"category"`
	MinWkg      float64 `json:"min_wkg"`
	MaxWkg      float64 `json:"max_wkg"`
	Percentile  int     `json:"percentile"`
	Description string  `json:"description"`
}

// PerformanceGrades is static reference data: contiguous (each row's upper
// bound is the next row's lower bound) and strictly percentile-ascending.
// Tests assert both invariants independently of any workout.
var PerformanceGrades = []PerformanceGrade{
	{"F", "Untrained", 0.0, 1.0, 3, "Just getting started. Any structured riding will move this number quickly."},
	{"D-", "Novice", 1.0, 1.5, 10, "Early base fitness. Consistency matters more than intensity right now."},
	{"D", "Recreational", 1.5, 2.0, 20, "Regular rider fitness. Comfortable on flat group rides."},
	{"C-", "Fair", 2.0, 2.5, 30, "Solid recreational engine. Can hang with social group rides on rolling terrain."},
	{"C", "Moderate", 2.5, 3.0, 40, "Trained amateur. Ready for structured interval work."},
	{"C+", "Good", 3.0, 3.3, 50, "Better than half of tested riders. Entry-level racing is realistic."},
	{"B-", "Very Good", 3.3, 3.7, 60, "Strong club rider. Competitive in entry-level road races."},
	{"B", "Cat 4", 3.7, 4.0, 70, "Regional amateur racing level. FTP work pays off in results here."},
	{"B+", "Cat 3", 4.0, 4.5, 80, "Experienced racer. Front group on most local races."},
	{"A-", "Cat 2", 4.5, 5.0, 88, "Elite amateur. Winning regional races takes this kind of engine."},
	{"A", "Cat 1", 5.0, 5.5, 94, "National amateur level. A serious multi-year training investment."},
	{"A+", "Domestic Pro", 5.5, 6.0, 98, "Professional level output. Racing is likely a job."},
	{"A++", "World Class", 6.0, 0, 99, "World Tour territory. Grand tour contenders live here."},
}

// WattsPerKgStats relates the test's power numbers to rider mass.
type WattsPerKgStats struct {
	ClassicFTPPerKg    float64 `json:"classic_ftp_per_kg"`
	NormalizedFTPPerKg float64 `json:"normalized_ftp_per_kg"`
	AveragePerKg       float64 `json:"average_per_kg"`
	MaxPerKg           float64 `json:"max_per_kg"`

	Grade       string `json:"grade"`
	Category    string `json:"category"`
	Percentile  int    `json:"percentile"`
	Description string `json:"description"`
}

// CalculateWattsPerKg grades the classic-FTP-per-kilogram ratio against the
// fixed table. Weight must be positive; callers without a rider weight skip
// this analysis entirely rather than passing zero.
func CalculateWattsPerKg(stats Stats, weightKg float64) WattsPerKgStats {
	if weightKg <= 0 {
		panic("ftptest: CalculateWattsPerKg called with non-positive weight")
	}

	out := WattsPerKgStats{
		ClassicFTPPerKg:    round2(float64(stats.ClassicFTP) / weightKg),
		NormalizedFTPPerKg: round2(float64(stats.NormalizedFTP) / weightKg),
		AveragePerKg:       round2(float64(stats.Average) / weightKg),
		MaxPerKg:           round2(float64(stats.Max) / weightKg),
	}

	grade := LookupGrade(out.ClassicFTPPerKg)
	out.Grade = grade.Grade
	out.Category = grade.Category
	out.Percentile = grade.Percentile
	out.Description = grade.Description
	return out
}

// LookupGrade finds the table row whose [MinWkg, MaxWkg) range contains the
// given ratio. The final row has no upper bound.
func LookupGrade(wkg float64) PerformanceGrade {
	last := len(PerformanceGrades) - 1
	for i, g := range PerformanceGrades {
		if i == last {
			break
		}
		if wkg >= g.MinWkg && wkg < g.MaxWkg {
			return g
		}
	}
	if wkg < PerformanceGrades[0].MinWkg {
		return PerformanceGrades[0]
	}
	return PerformanceGrades[last]
}

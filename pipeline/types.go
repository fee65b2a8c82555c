package pipeline

import ftptest "ftp-analyzer"

// Options configures a filesystem run of the analysis pipeline.
type Options struct {
	InputPath string
	OutDir    string

	// Format names the input format (fit|gpx|csv|trainingpeaks); empty means
	// detect from the filename and payload.
	Format string

	// SampleFormat selects the canonical sample artifact: parquet|csv.
	SampleFormat string

	TargetMinutes int
	WeightKG      float64

	// Overwrite allows writing into a non-empty output directory.
	Overwrite bool
}

// Result holds the artifact paths of a filesystem run.
type Result struct {
	OutputDir            string   `json:"output_dir"`
	CanonicalSamplesPath string   `json:"canonical_samples_path"`
	AnalysisPath         string   `json:"analysis_path"`
	SummaryPath          string   `json:"summary_path"`
	Warnings             []string `json:"warnings,omitempty"`
}

// BytesOptions configures an in-memory run, used by hosts without a
// filesystem (the browser wasm build).
type BytesOptions struct {
	SourceFileName string
	Data           []byte
	Format         string

	// ManualWatts carries manual entry: per-minute average power values.
	// When set, Data and Format are ignored.
	ManualWatts []int

	SampleFormat  string
	TargetMinutes int
	WeightKG      float64
}

// BytesResult holds an in-memory run's outputs: every artifact as bytes,
// keyed by filename, plus the analysis itself for hosts that render it
// directly.
type BytesResult struct {
	Analysis *ftptest.Analysis `json:"analysis"`
	Files    map[string][]byte `json:"-"`
	Warnings []string          `json:"warnings,omitempty"`
}

// CanonicalSample is one per-second row of the analyzed segment, the schema
// shared by the CSV and parquet artifacts.
type CanonicalSample struct {
	ElapsedS   int      `json:"elapsed_s"`
	PowerW     int      `json:"power_w"`
	HRBPM      *int     `json:"hr_bpm,omitempty"`
	SpeedKPH   *float64 `json:"speed_kph,omitempty"`
	DistanceM  *float64 `json:"distance_m,omitempty"`
	ElevationM *float64 `json:"elevation_m,omitempty"`
}

// AnalysisFile is the analysis.json artifact: the full analysis plus input
// provenance.
type AnalysisFile struct {
	Source   string            `json:"source,omitempty"`
	Format   string            `json:"format"`
	Samples  int               `json:"samples"`
	Analysis *ftptest.Analysis `json:"analysis"`
	Warnings []string          `json:"warnings,omitempty"`
}

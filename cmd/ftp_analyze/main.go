package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ftp-analyzer/pipeline"
)

func main() {
	var (
		inputPath = flag.String("in", "", "Path to input recording (.fit, .gpx, or .csv)")
		outDir    = flag.String("out", "", "Output directory")
		format    = flag.String("format", "", "Input format: fit|gpx|csv|trainingpeaks (default: detect)")
		samples   = flag.String("samples", "parquet", "Canonical sample format: parquet|csv")
		target    = flag.Int("target", 20, "Target test duration in minutes")
		weight    = flag.Float64("weight", 0, "Rider weight in kg (enables watts-per-kg grading)")
		overwrite = flag.Bool("overwrite", true, "Allow writing into non-empty output directories")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s --in ride.fit --out outdir [--target 20] [--weight 72.5] [--samples parquet|csv]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if strings.TrimSpace(*inputPath) == "" || strings.TrimSpace(*outDir) == "" {
		flag.Usage()
		os.Exit(2)
	}

	result, err := pipeline.Run(pipeline.Options{
		InputPath:     *inputPath,
		OutDir:        *outDir,
		Format:        *format,
		SampleFormat:  *samples,
		TargetMinutes: *target,
		WeightKG:      *weight,
		Overwrite:     *overwrite,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ftp_analyze failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("ftp_analyze complete\n")
	fmt.Printf("Output dir:        %s\n", result.OutputDir)
	fmt.Printf("canonical samples: %s\n", result.CanonicalSamplesPath)
	fmt.Printf("analysis:          %s\n", result.AnalysisPath)
	fmt.Printf("summary:           %s\n", result.SummaryPath)
	for _, w := range result.Warnings {
		fmt.Printf("warning:           %s\n", w)
	}
}

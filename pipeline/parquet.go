package pipeline

import (
	"math"

	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

type canonicalParquetRow struct {
	ElapsedS   int64   `parquet:"name=elapsed_s, type=INT64"`
	PowerW     int64   `parquet:"name=power_w, type=INT64"`
	HRBPM      float64 `parquet:"name=hr_bpm, type=DOUBLE"`
	SpeedKPH   float64 `parquet:"name=speed_kph, type=DOUBLE"`
	DistanceM  float64 `parquet:"name=distance_m, type=DOUBLE"`
	ElevationM float64 `parquet:"name=elevation_m, type=DOUBLE"`
}

// marshalCanonicalParquet writes the sample rows to an in-memory parquet
// buffer. Absent optional cells become NaN, the same "no value" convention
// the CSV artifact expresses as an empty cell.
func marshalCanonicalParquet(samples []CanonicalSample) ([]byte, error) {
	fw := parquetbuffer.NewBufferFile()
	pw, err := writer.NewParquetWriter(fw, new(canonicalParquetRow), 4)
	if err != nil {
		return nil, err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, s := range samples {
		row := canonicalParquetRow{
			ElapsedS:   int64(s.ElapsedS),
			PowerW:     int64(s.PowerW),
			HRBPM:      intPtrOrNaN(s.HRBPM),
			SpeedKPH:   floatPtrOrNaN(s.SpeedKPH),
			DistanceM:  floatPtrOrNaN(s.DistanceM),
			ElevationM: floatPtrOrNaN(s.ElevationM),
		}
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			return nil, err
		}
	}
	if err := pw.WriteStop(); err != nil {
		return nil, err
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return append([]byte(nil), fw.Bytes()...), nil
}

func intPtrOrNaN(v *int) float64 {
	if v == nil {
		return math.NaN()
	}
	return float64(*v)
}

func floatPtrOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

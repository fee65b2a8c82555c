//go:build js && wasm

package main

import (
	"archive/zip"
	"bytes"
	"fmt"
	"sort"
	"syscall/js"
	"time"

	"ftp-analyzer/pipeline"
)

func main() {
	js.Global().Set("analyzeRide", js.FuncOf(analyzeRide))
	select {}
}

func analyzeRide(_ js.Value, args []js.Value) any {
	if len(args) < 2 {
		return map[string]any{
			"ok":    false,
			"error": "expected arguments: fileBytes(Uint8Array), options(object)",
		}
	}
	fileArg := args[0]
	optsArg := args[1]

	opts := pipeline.BytesOptions{
		SourceFileName: getString(optsArg, "source_file_name", "ride"),
		Format:         getString(optsArg, "format", ""),
		SampleFormat:   getString(optsArg, "sample_format", "parquet"),
		TargetMinutes:  int(getFloat(optsArg, "target_minutes")),
		WeightKG:       getFloat(optsArg, "weight_kg"),
		ManualWatts:    getIntSlice(optsArg, "manual_watts"),
	}

	if len(opts.ManualWatts) == 0 {
		if fileArg.IsUndefined() || fileArg.IsNull() || fileArg.Get("length").Int() == 0 {
			return map[string]any{
				"ok":    false,
				"error": "recording bytes or manual_watts are required",
			}
		}
		fileBytes := make([]byte, fileArg.Get("length").Int())
		if n := js.CopyBytesToGo(fileBytes, fileArg); n == 0 {
			return map[string]any{
				"ok":    false,
				"error": "failed to read recording bytes from JS input",
			}
		}
		opts.Data = fileBytes
	}

	result, err := pipeline.RunBytes(opts)
	if err != nil {
		return map[string]any{
			"ok":    false,
			"error": err.Error(),
		}
	}

	zipBytes, err := zipArtifacts(result.Files)
	if err != nil {
		return map[string]any{
			"ok":    false,
			"error": fmt.Sprintf("create zip: %v", err),
		}
	}
	payload := js.Global().Get("Uint8Array").New(len(zipBytes))
	js.CopyBytesToJS(payload, zipBytes)

	fileList := make([]string, 0, len(result.Files))
	for name := range result.Files {
		fileList = append(fileList, name)
	}
	sort.Strings(fileList)

	return map[string]any{
		"ok":          true,
		"zip":         payload,
		"classic_ftp": result.Analysis.Stats.ClassicFTP,
		"score":       result.Analysis.Pacing.Score,
		"warnings":    stringsToAny(result.Warnings),
		"files":       stringsToAny(fileList),
	}
}

func zipArtifacts(files map[string][]byte) ([]byte, error) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	fixedTime := time.Unix(0, 0).UTC()

	for _, name := range names {
		h := &zip.FileHeader{
			Name:   name,
			Method: zip.Deflate,
		}
		h.SetModTime(fixedTime)
		w, err := zw.CreateHeader(h)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(files[name]); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func getString(v js.Value, key, fallback string) string {
	if v.IsUndefined() || v.IsNull() {
		return fallback
	}
	out := v.Get(key)
	if out.IsUndefined() || out.IsNull() {
		return fallback
	}
	s := out.String()
	if s == "" || s == "undefined" || s == "null" {
		return fallback
	}
	return s
}

func getFloat(v js.Value, key string) float64 {
	if v.IsUndefined() || v.IsNull() {
		return 0
	}
	out := v.Get(key)
	if out.IsUndefined() || out.IsNull() || out.Type() != js.TypeNumber {
		return 0
	}
	return out.Float()
}

func getIntSlice(v js.Value, key string) []int {
	if v.IsUndefined() || v.IsNull() {
		return nil
	}
	out := v.Get(key)
	if out.IsUndefined() || out.IsNull() || out.Type() != js.TypeObject {
		return nil
	}
	n := out.Get("length")
	if n.IsUndefined() || n.Type() != js.TypeNumber {
		return nil
	}
	values := make([]int, n.Int())
	for i := range values {
		values[i] = out.Index(i).Int()
	}
	return values
}

func stringsToAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

package benchmark

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"

	"github.com/copyleftdev/optbench/internal/errors"
)

// ResultVersion is the persisted file format version. Load rejects files
// written by an incompatible version.
const ResultVersion = 1

// Series holds the recorded values of one metric for one run. Scalar
// metrics populate Values; iterate-history metrics populate Points.
type Series struct {
	Values []float64   `json:"values,omitempty"`
	Points [][]float64 `json:"points,omitempty"`
}

// jsonFloat is a float64 whose non-finite values survive JSON encoding.
// encoding/json rejects NaN and infinities outright, but a diverging run
// records them legitimately, so they round-trip as string tokens.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"Infinity"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Infinity"`), nil
	}
	return json.Marshal(v)
}

func (f *jsonFloat) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		switch s {
		case "NaN":
			*f = jsonFloat(math.NaN())
		case "Infinity":
			*f = jsonFloat(math.Inf(1))
		case "-Infinity":
			*f = jsonFloat(math.Inf(-1))
		default:
			return errors.Errorf("invalid numeric token %q", s)
		}
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = jsonFloat(v)
	return nil
}

type seriesJSON struct {
	Values []jsonFloat   `json:"values,omitempty"`
	Points [][]jsonFloat `json:"points,omitempty"`
}

func (s Series) MarshalJSON() ([]byte, error) {
	return json.Marshal(seriesJSON{
		Values: toJSONFloats(s.Values),
		Points: toJSONFloatRows(s.Points),
	})
}

func (s *Series) UnmarshalJSON(data []byte) error {
	var aux seriesJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.Values = fromJSONFloats(aux.Values)
	s.Points = fromJSONFloatRows(aux.Points)
	return nil
}

func toJSONFloats(vals []float64) []jsonFloat {
	if vals == nil {
		return nil
	}
	out := make([]jsonFloat, len(vals))
	for i, v := range vals {
		out[i] = jsonFloat(v)
	}
	return out
}

func fromJSONFloats(vals []jsonFloat) []float64 {
	if vals == nil {
		return nil
	}
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = float64(v)
	}
	return out
}

func toJSONFloatRows(rows [][]float64) [][]jsonFloat {
	if rows == nil {
		return nil
	}
	out := make([][]jsonFloat, len(rows))
	for i, row := range rows {
		out[i] = toJSONFloats(row)
	}
	return out
}

func fromJSONFloatRows(rows [][]jsonFloat) [][]float64 {
	if rows == nil {
		return nil
	}
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = fromJSONFloats(row)
	}
	return out
}

// Result is the accumulated output of running all configured methods on a
// problem: a nested mapping method -> metric -> one Series per run. The set
// of recorded methods equals the set of methods that ran successfully; a
// method that fails validation or faults mid-run is never inserted.
type Result struct {
	Version int    `json:"version"`
	Problem string `json:"problem"`
	// Metrics are the metric names recorded for every method.
	Metrics []string `json:"metrics"`
	// Methods lists the recorded methods in run order.
	Methods []string `json:"methods"`
	// Data maps method -> metric -> per-run series.
	Data map[string]map[string][]Series `json:"data"`
}

func newResult(problem string, metricNames []string) *Result {
	return &Result{
		Version: ResultVersion,
		Problem: problem,
		Metrics: append([]string(nil), metricNames...),
		Data:    make(map[string]map[string][]Series),
	}
}

// addMethod inserts all runs of one method at once, so the entry either
// exists completely or not at all.
func (r *Result) addMethod(method string, runs []map[string]*Series) {
	byMetric := make(map[string][]Series)
	for _, run := range runs {
		for name, s := range run {
			byMetric[name] = append(byMetric[name], *s)
		}
	}
	r.Methods = append(r.Methods, method)
	r.Data[method] = byMetric
}

// Runs returns the number of recorded runs for a method, zero if the
// method was never recorded.
func (r *Result) Runs(method string) int {
	byMetric, ok := r.Data[method]
	if !ok {
		return 0
	}
	for _, series := range byMetric {
		return len(series)
	}
	return 0
}

// Save serializes the result to path as JSON, creating parent directories
// as needed.
func (r *Result) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "creating result directory").WithComponent("benchmark")
		}
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding result").WithComponent("benchmark")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "writing result file").WithComponent("benchmark")
	}
	return nil
}

// Load reads a result file written by Save. A missing or mismatched
// version field is an error.
func Load(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading result file").WithComponent("benchmark")
	}

	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(err, "decoding result file").WithComponent("benchmark")
	}
	if r.Version != ResultVersion {
		return nil, errors.Configf("unsupported result version %d, want %d", r.Version, ResultVersion).
			WithComponent("benchmark").
			WithOperation("load")
	}
	if r.Data == nil {
		r.Data = make(map[string]map[string][]Series)
	}
	return &r, nil
}

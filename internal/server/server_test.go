package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/copyleftdev/optbench/internal/benchmark"
	"github.com/copyleftdev/optbench/internal/config"
	"github.com/copyleftdev/optbench/internal/metrics"
	"github.com/copyleftdev/optbench/internal/problems"
	"github.com/copyleftdev/optbench/internal/solvers"
)

func testServer(t *testing.T) (*Server, *config.Config) {
	t.Helper()
	cfg := &config.Config{}
	cfg.ResultsDir = filepath.Join(t.TempDir(), "results")
	cfg.PlotsDir = filepath.Join(t.TempDir(), "plots")
	return New(cfg, zap.NewNop()), cfg
}

func saveResult(t *testing.T, cfg *config.Config, name string) *benchmark.Result {
	t.Helper()
	problem := problems.RandomQuadratic(2, 1)
	b, err := benchmark.New(problem,
		[]benchmark.MethodConfig{{
			Name: "GRADIENT_DESCENT",
			Params: solvers.Params{
				XInit:    []float64{1, 1},
				MaxIter:  5,
				Stepsize: solvers.ConstStepsize(1e-2),
			},
		}},
		[]string{metrics.HistoryF})
	require.NoError(t, err)

	res, err := b.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, res.Save(filepath.Join(cfg.ResultsDir, name+".json")))
	return res
}

func TestHealthz(t *testing.T) {
	srv, _ := testServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := testServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListResults(t *testing.T) {
	srv, cfg := testServer(t)

	// Empty directory before the first run.
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/results", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Results []string `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Results)

	saveResult(t, cfg, "gd_quadratic")

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/results", nil))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"gd_quadratic"}, body.Results)
}

func TestGetResult(t *testing.T) {
	srv, cfg := testServer(t)
	saved := saveResult(t, cfg, "gd_quadratic")

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/results/gd_quadratic", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got benchmark.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, saved.Problem, got.Problem)
	assert.Equal(t, saved.Methods, got.Methods)
}

func TestGetResultNotFound(t *testing.T) {
	srv, _ := testServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/results/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetResultRejectsTraversal(t *testing.T) {
	srv, _ := testServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/results/..%2fsecrets", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPlot(t *testing.T) {
	srv, cfg := testServer(t)

	require.NoError(t, os.MkdirAll(cfg.PlotsDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(cfg.PlotsDir, "gd.html"),
		[]byte("<html><body>figure</body></html>"), 0o644))

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plots/gd", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "figure")

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plots/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

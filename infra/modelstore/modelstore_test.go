package modelstore

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/hotelprice/config"
	"github.com/kilianp07/hotelprice/core/pricing"
)

func TestLinearModelPredict(t *testing.T) {
	m, err := NewLinearModel("", []float64{100, 1, -10, 5}, 1000)
	require.NoError(t, err)
	assert.Equal(t, "linear", m.Name())
	got, err := m.Predict([]float64{4, 200, 2, 10})
	require.NoError(t, err)
	assert.InDelta(t, 1000+400+200-20+50, got, 1e-9)

	_, err = m.Predict([]float64{1, 2, 3})
	assert.ErrorContains(t, err, "shape mismatch")

	_, err = NewLinearModel("x", []float64{1}, 0)
	assert.Error(t, err)
}

func TestFitFixtureReproducesSamples(t *testing.T) {
	m, err := FitFixture()
	require.NoError(t, err)
	assert.Equal(t, FixtureName, m.Name())
	for i, row := range fixtureRows {
		got, err := m.Predict(row)
		require.NoError(t, err)
		assert.InDelta(t, fixtureTargets[i], got, 1, "row %d", i)
	}
	got, err := m.Predict([]float64{4.2, 800, 1.0, 12})
	require.NoError(t, err)
	assert.InDelta(t, 1260740.74, got, 1)
}

func TestFitRejectsBadShapes(t *testing.T) {
	_, err := Fit("x", nil, nil)
	assert.Error(t, err)
	_, err = Fit("x", [][]float64{{1, 2, 3, 4}}, []float64{1})
	assert.Error(t, err)
	_, err = Fit("x", [][]float64{{1}, {2}, {3}, {4}, {5}}, []float64{1, 2, 3, 4, 5})
	assert.Error(t, err)
}

func TestArtifactEncodeDecode(t *testing.T) {
	m, err := FitFixture()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, m))
	assert.Contains(t, buf.String(), `"kind": "linear"`)

	back, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, m.Coefficients(), back.Coefficients())
	assert.Equal(t, m.Intercept(), back.Intercept())
}

func TestDecodeRejects(t *testing.T) {
	cases := []string{
		`{"kind":"forest","coefficients":[1,2,3,4]}`,
		`{"kind":"linear","features":["a","b","c","d"],"coefficients":[1,2,3,4]}`,
		`{"kind":"linear","coefficients":[1,2]}`,
		`{"kind":"linear","coefficients":[1,2,3,4],"extra":true}`,
		`not json`,
	}
	for _, c := range cases {
		_, err := Decode(strings.NewReader(c))
		assert.Error(t, err, c)
	}
}

func writeFixture(t *testing.T) string {
	t.Helper()
	m, err := FitFixture()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "model.json")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, Encode(f, m))
	require.NoError(t, f.Close())
	return path
}

func TestResolve_File(t *testing.T) {
	l := NewLoader(config.ModelConfig{Path: writeFixture(t)}, nil)
	pm := l.Resolve(context.Background())
	assert.True(t, pm.IsLearned())
	assert.Equal(t, FixtureName, pm.Name())
}

func TestResolve_MissingFileIsRuleBased(t *testing.T) {
	l := NewLoader(config.ModelConfig{Path: filepath.Join(t.TempDir(), "none.json")}, nil)
	_, err := l.Load(context.Background())
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, pricing.StrategyRuleBased, l.Resolve(context.Background()).Strategy())
}

func TestResolve_CorruptFileIsRuleBased(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	l := NewLoader(config.ModelConfig{Path: path}, nil)
	assert.False(t, l.Resolve(context.Background()).IsLearned())
}

func TestFetch_RetriesServerErrors(t *testing.T) {
	m, err := FitFixture()
	require.NoError(t, err)
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = Encode(w, m)
	}))
	defer srv.Close()

	l := NewLoader(config.ModelConfig{URL: srv.URL, FetchMaxElapsedSeconds: 10}, nil)
	got, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, m.Coefficients(), got.Coefficients())
}

func TestFetch_NotFoundIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	l := NewLoader(config.ModelConfig{URL: srv.URL}, nil)
	_, err := l.Load(context.Background())
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, l.Resolve(context.Background()).IsLearned())
}

//go:build unit

package adapter

import (
	"net/http"
	"net/http/httptest"
	"plant-pal/internal/core/model"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestMetrics_Middleware(t *testing.T) {
	m := NewMetrics()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/plants/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"1", "2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/plants/"+id, nil))
	}

	out := scrape(t, m)
	assert.Contains(t, out, `plantpal_http_requests_total{method="GET",route="/plants/{id}",status="418"} 2`)
	assert.Contains(t, out, `plantpal_http_request_duration_seconds_count{route="/plants/{id}"} 2`)
}

func TestMetrics_QueriesAndCatalog(t *testing.T) {
	m := NewMetrics()
	m.SetCatalogSize(14)
	m.ObserveQuery(model.ResultView{MatchCount: 3})
	m.ObserveQuery(model.ResultView{MatchCount: 0})
	m.ObserveQuery(model.ResultView{MatchCount: 0})

	out := scrape(t, m)
	assert.Contains(t, out, "plantpal_catalog_plants 14")
	assert.Contains(t, out, `plantpal_catalog_queries_total{outcome="matched"} 1`)
	assert.Contains(t, out, `plantpal_catalog_queries_total{outcome="empty"} 2`)
}

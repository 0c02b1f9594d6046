package kernel_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/digiteria/app/routes"
	"github.com/shashiranjanraj/digiteria/app/services"
	"github.com/shashiranjanraj/digiteria/app/store"
	"github.com/shashiranjanraj/digiteria/internal/kernel"
	"github.com/shashiranjanraj/digiteria/pkg/slot"
	"github.com/shashiranjanraj/digiteria/pkg/ws"
)

func newKernel(t *testing.T) http.Handler {
	t.Helper()

	st := store.Open(slot.NewMemory())
	t.Cleanup(st.Close)

	return kernel.Build(routes.Deps{
		Store:    st,
		Hub:      ws.NewHub(),
		Payments: &services.SandboxProvider{},
	})
}

func TestHealthz(t *testing.T) {
	h := newKernel(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestMetricsExposed(t *testing.T) {
	h := newKernel(t)

	// Drive one request through the stack so the counters have something.
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "digiteria_http_requests_total")
}

func TestGraphQLStatsQuery(t *testing.T) {
	h := newKernel(t)

	body := strings.NewReader(`{"query":"{ stats { activeUsers productsSold creatorEarnings avgRating } }"}`)
	req := httptest.NewRequest(http.MethodPost, "/graphql", body)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Data struct {
			Stats struct {
				ActiveUsers     int     `json:"activeUsers"`
				ProductsSold    int     `json:"productsSold"`
				CreatorEarnings float64 `json:"creatorEarnings"`
				AvgRating       float64 `json:"avgRating"`
			} `json:"stats"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())

	assert.Equal(t, 3, out.Data.Stats.ActiveUsers)
	assert.Equal(t, 2, out.Data.Stats.ProductsSold)
	assert.InDelta(t, 34.67, out.Data.Stats.CreatorEarnings, 0.001)
	assert.InDelta(t, 2.25, out.Data.Stats.AvgRating, 0.001)
}

func TestGraphQLProductLookup(t *testing.T) {
	h := newKernel(t)

	body := strings.NewReader(`{"query":"{ products(status: \"pending\") { title status } }"}`)
	req := httptest.NewRequest(http.MethodPost, "/graphql", body)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Data struct {
			Products []struct {
				Title  string `json:"title"`
				Status string `json:"status"`
			} `json:"products"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	require.Len(t, out.Data.Products, 1)
	assert.Equal(t, "pending", out.Data.Products[0].Status)
}

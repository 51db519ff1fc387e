package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorsAreRegistered(t *testing.T) {
	CatalogQueries.WithLabelValues("rating", "list").Inc()
	LiveSearchDeliveries.WithLabelValues("sent").Inc()
	CatalogResults.Observe(3)

	rec := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `catalog_queries_total{sort="rating",source="list"}`)
	assert.Contains(t, string(body), `live_search_deliveries_total{outcome="sent"}`)
	assert.Contains(t, string(body), "catalog_query_results_count")
}

// Package handler exposes the HTTP handlers of the catalog service. Every
// catalog read goes through the in-memory engine; nothing here touches the
// database.
package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/pitch-reservation/internal/catalog"
	"github.com/iliyamo/pitch-reservation/internal/metrics"
	"github.com/iliyamo/pitch-reservation/internal/middleware"
	"github.com/iliyamo/pitch-reservation/internal/queue"
	"github.com/iliyamo/pitch-reservation/internal/service"
)

// CatalogHandler serves the public listing, detail and facet endpoints.
// Events may be nil to disable search events.
type CatalogHandler struct {
	Catalog *catalog.Catalog
	Events  service.EventPublisher
	Log     *zap.Logger
}

func NewCatalogHandler(cat *catalog.Catalog, events service.EventPublisher, log *zap.Logger) *CatalogHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &CatalogHandler{Catalog: cat, Events: events, Log: log}
}

// List answers GET /v1/pitches. Query parameters: city, district,
// min_price, max_price, capacity, type, camera, shoe_rental, min_rating,
// q, sort and page. Malformed values are ignored rather than rejected.
func (h *CatalogHandler) List(c echo.Context) error {
	criteria := catalog.ParseCriteria(c.QueryParams())
	sort := catalog.ParseSortKey(c.QueryParam("sort"))
	page := parsePage(c.QueryParam("page"))

	res := runQuery(h.Catalog, criteria, sort, page, queue.SourceList)
	publish(h.Events, c, queue.NewSearchEvent(queue.SourceList, criteria, sort, res))
	return c.JSON(http.StatusOK, newResultView(res, criteria, sort))
}

// Get answers GET /v1/pitches/:id.
func (h *CatalogHandler) Get(c echo.Context) error {
	p, ok := h.Catalog.Get(c.Param("id"))
	if !ok {
		return jsonError(c, http.StatusNotFound, "pitch not found")
	}
	return c.JSON(http.StatusOK, newPitchView(p))
}

// Facets answers GET /v1/facets with the values the filter controls offer.
func (h *CatalogHandler) Facets(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Catalog.Facets())
}

// runQuery evaluates one query and records its metrics.
func runQuery(cat *catalog.Catalog, c catalog.Criteria, sort catalog.SortKey, page int, source string) catalog.Result {
	start := time.Now()
	res := cat.Query(c, sort, page)
	metrics.CatalogQueryDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	metrics.CatalogQueries.WithLabelValues(string(sort), source).Inc()
	metrics.CatalogResults.Observe(float64(res.Total))
	return res
}

func publish(events service.EventPublisher, c echo.Context, ev queue.SearchPerformedEvent) {
	if events == nil {
		return
	}
	ev.LoggedIn = sessionLoggedIn(c)
	events.Publish(ev)
}

func sessionLoggedIn(c echo.Context) bool {
	return middleware.Session(c) != nil
}

// parsePage reads a 1-based page number; anything unparsable is page 1.
func parsePage(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

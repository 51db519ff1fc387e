package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/pitch-reservation/internal/browse"
	"github.com/iliyamo/pitch-reservation/internal/catalog"
	"github.com/iliyamo/pitch-reservation/internal/handler"
	"github.com/iliyamo/pitch-reservation/internal/model"
)

// mark tags every response passing through it with header.
func mark(header string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(header, "1")
			return next(c)
		}
	}
}

func newRouter(withBrowse bool) *echo.Echo {
	cat := catalog.New([]model.Pitch{
		{ID: "1", Name: "Zafer Spor", City: "İstanbul", Price: 1200},
		{ID: "2", Name: "Dere Sahası", City: "Ankara", Price: 900},
	}, 0)
	r := Catalog{
		Pitches:   handler.NewCatalogHandler(cat, nil, nil),
		Cache:     mark("X-Test-Cache"),
		RateLimit: mark("X-Test-Limit"),
	}
	if withBrowse {
		r.Browse = handler.NewBrowseHandler(cat, browse.NewMemoryStore(time.Minute), nil, nil)
		r.Live = handler.NewLiveSearchHandler(cat, 10*time.Millisecond, nil, nil)
	}
	e := echo.New()
	RegisterRoutes(e)
	RegisterPublic(e, r)
	RegisterAuth(e, handler.NewAuthHandler("secret", time.Hour))
	return e
}

func TestRegisterPublic_Middleware(t *testing.T) {
	e := newRouter(true)

	tests := []struct {
		method string
		path   string
		body   string
		code   int
		cached bool
	}{
		{method: http.MethodGet, path: "/v1/pitches?city=Ankara", code: http.StatusOK, cached: true},
		{method: http.MethodGet, path: "/v1/pitches/1", code: http.StatusOK, cached: true},
		{method: http.MethodGet, path: "/v1/facets", code: http.StatusOK, cached: true},
		{method: http.MethodPost, path: "/v1/browse", body: `{}`, code: http.StatusCreated},
		{method: http.MethodGet, path: "/v1/browse/missing", code: http.StatusNotFound},
		{method: http.MethodPatch, path: "/v1/browse/missing", body: `{"page":2}`, code: http.StatusNotFound},
		// not an upgrade request, so the live handler rejects it
		{method: http.MethodGet, path: "/v1/search/live", code: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, "1", rec.Header().Get("X-Test-Limit"), "rate limit must cover every /v1 route")
			if tt.cached {
				assert.Equal(t, "1", rec.Header().Get("X-Test-Cache"))
			} else {
				assert.Empty(t, rec.Header().Get("X-Test-Cache"))
			}
		})
	}
}

func TestRegisterPublic_OutsideCatalogGroup(t *testing.T) {
	e := newRouter(true)

	for _, path := range []string{"/healthz", "/v1/auth/session"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Empty(t, rec.Header().Get("X-Test-Cache"), path)
	}
}

func TestRegisterPublic_OptionalHandlers(t *testing.T) {
	e := newRouter(false)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/browse", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/pitches", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

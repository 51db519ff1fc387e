// Package router wires handlers and middleware onto the echo instance.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/pitch-reservation/internal/handler"
)

// RegisterRoutes registers the liveness probe.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// Catalog bundles the public catalog handlers and the middleware applied
// to them.
type Catalog struct {
	Pitches *handler.CatalogHandler
	Browse  *handler.BrowseHandler
	Live    *handler.LiveSearchHandler

	// Cache wraps the idempotent GET listing routes, RateLimit every
	// catalog route. Either may be nil.
	Cache     echo.MiddlewareFunc
	RateLimit echo.MiddlewareFunc
}

// RegisterPublic registers the catalog endpoints under /v1. Browse and
// live search are skipped when their handlers are nil.
func RegisterPublic(e *echo.Echo, r Catalog) {
	g := e.Group("/v1")
	if r.RateLimit != nil {
		g.Use(r.RateLimit)
	}
	var cached []echo.MiddlewareFunc
	if r.Cache != nil {
		cached = append(cached, r.Cache)
	}

	g.GET("/pitches", r.Pitches.List, cached...)
	g.GET("/pitches/:id", r.Pitches.Get, cached...)
	g.GET("/facets", r.Pitches.Facets, cached...)

	if r.Browse != nil {
		g.POST("/browse", r.Browse.Create)
		g.GET("/browse/:id", r.Browse.Get)
		g.PATCH("/browse/:id", r.Browse.Update)
	}
	if r.Live != nil {
		g.GET("/search/live", r.Live.Serve)
	}
}

// RegisterAuth registers the login-flag endpoints under /v1/auth.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
	g.GET("/session", a.Session)
	g.POST("/logout", a.Logout)
}

// RegisterMetrics exposes the Prometheus handler at /metrics.
func RegisterMetrics(e *echo.Echo, h echo.HandlerFunc) {
	e.GET("/metrics", h)
}

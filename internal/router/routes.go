package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/lead-enrichment/internal/auth"
	"github.com/octobees/lead-enrichment/internal/handler"
	middlewarepkg "github.com/octobees/lead-enrichment/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Enrich  *handler.EnrichHandler
	History *handler.HistoryHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, verifier auth.TokenVerifier, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	secured := e.Group("")
	secured.Use(middlewarepkg.RequireAuth(verifier))

	secured.POST("/enrich", handlers.Enrich.Enrich)
	secured.GET("/history", handlers.History.Get)
}

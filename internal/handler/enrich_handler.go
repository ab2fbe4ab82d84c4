package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/lead-enrichment/internal/dto"
	middlewarepkg "github.com/octobees/lead-enrichment/internal/middleware"
	"github.com/octobees/lead-enrichment/internal/provider"
	"github.com/octobees/lead-enrichment/internal/service"
)

// EnrichHandler serves domain enrichment lookups.
type EnrichHandler struct {
	enrichment *service.EnrichmentService
}

// NewEnrichHandler wires a new EnrichHandler instance.
func NewEnrichHandler(enrichment *service.EnrichmentService) *EnrichHandler {
	return &EnrichHandler{enrichment: enrichment}
}

// Enrich resolves the submitted domain to a company record, serving
// from cache when possible. The record is returned as a flat JSON
// object so cached and freshly fetched responses are byte-identical.
func (h *EnrichHandler) Enrich(c echo.Context) error {
	var payload dto.EnrichRequest
	if err := c.Bind(&payload); err != nil {
		return Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	userID := middlewarepkg.UserIDFromContext(c)

	company, err := h.enrichment.Enrich(c.Request().Context(), userID, payload.Domain)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDomain):
			return Error(c, http.StatusBadRequest, "Invalid domain")
		case errors.Is(err, service.ErrEnrichmentUnavailable):
			return Error(c, http.StatusBadRequest, "Unable to fetch data for this domain")
		case errors.Is(err, provider.ErrFetchFailed):
			return Error(c, http.StatusBadGateway, "failed to fetch company data")
		default:
			return Error(c, http.StatusInternalServerError, "internal server error")
		}
	}

	return c.JSON(http.StatusOK, company)
}

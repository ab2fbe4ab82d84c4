package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/lead-enrichment/internal/dto"
	middlewarepkg "github.com/octobees/lead-enrichment/internal/middleware"
	"github.com/octobees/lead-enrichment/internal/service"
)

// HistoryHandler serves a user's lookup history.
type HistoryHandler struct {
	history *service.HistoryService
}

// NewHistoryHandler wires a new HistoryHandler instance.
func NewHistoryHandler(history *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// Get returns every domain the caller has looked up with its last-visit
// time. Users with no history get an empty object.
func (h *HistoryHandler) Get(c echo.Context) error {
	userID := middlewarepkg.UserIDFromContext(c)

	visits, err := h.history.History(c.Request().Context(), userID)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to load history")
	}

	return c.JSON(http.StatusOK, dto.HistoryResponse{History: visits})
}

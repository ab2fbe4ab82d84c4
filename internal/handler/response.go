package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Error sends the flat error payload used across the API.
func Error(c echo.Context, status int, message string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, map[string]string{"error": message})
}

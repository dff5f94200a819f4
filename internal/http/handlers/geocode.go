package handlers

import (
	"errors"
	"net/http"
	"strings"

	"spinadmin/internal/geocode"

	"github.com/labstack/echo/v4"
)

// GeocodeHandler proxies address search to the geocoding provider so the
// console never talks to it directly
type GeocodeHandler struct {
	client *geocode.Client
}

// NewGeocodeHandler creates a new geocode handler
func NewGeocodeHandler(client *geocode.Client) *GeocodeHandler {
	return &GeocodeHandler{client: client}
}

// Search returns address suggestions for a free-text query
func (h *GeocodeHandler) Search(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if len(query) < 3 {
		return c.JSON(http.StatusOK, []geocode.Suggestion{})
	}

	suggestions, err := h.client.Search(c.Request().Context(), query)
	if err != nil {
		if errors.Is(err, geocode.ErrUnavailable) {
			return c.JSON(http.StatusBadGateway, map[string]string{"error": "Location search is temporarily unavailable"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to search locations"})
	}

	return c.JSON(http.StatusOK, suggestions)
}

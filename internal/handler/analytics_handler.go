package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ideahub/internal/errors"
	"ideahub/internal/service"
)

// AnalyticsHandler handles the admin analytics endpoints.
type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// SystemStats godoc
// @Summary System-wide user and idea counters
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.SystemStats
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/analytics/stats [get]
func (h *AnalyticsHandler) SystemStats(c echo.Context) error {
	stats, err := h.analyticsService.SystemStats(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, stats)
}

// Growth godoc
// @Summary Monthly user and idea growth for the last six months
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.GrowthStats
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/analytics/growth [get]
func (h *AnalyticsHandler) Growth(c echo.Context) error {
	growth, err := h.analyticsService.Growth(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, growth)
}

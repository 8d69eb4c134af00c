package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sampark-ngo/placement-tracker/internal/service"
	"github.com/sampark-ngo/placement-tracker/pkg/response"
)

// dashboardProvider abstracts the summary service for testing.
type dashboardProvider interface {
	Summary(ctx context.Context) (*service.DashboardSummary, bool, error)
}

// DashboardHandler serves aggregated chart data.
type DashboardHandler struct {
	dashboards dashboardProvider
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(dashboards dashboardProvider) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

// Summary godoc
// @Summary Gender and region distributions for charts
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, cacheHit, err := h.dashboards.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, "", map[string]interface{}{"cache_hit": cacheHit})
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/sampark-ngo/placement-tracker/internal/models"
	"github.com/sampark-ngo/placement-tracker/internal/service"
)

type fakeDashboardSrv struct {
	summary *service.DashboardSummary
	hit     bool
	err     error
}

func (f *fakeDashboardSrv) Summary(context.Context) (*service.DashboardSummary, bool, error) {
	return f.summary, f.hit, f.err
}

type responseEnvelope struct {
	Success bool                   `json:"success"`
	Data    json.RawMessage        `json:"data"`
	Meta    map[string]interface{} `json:"meta"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestDashboardHandlerSummary(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDashboardHandler(&fakeDashboardSrv{
		summary: &service.DashboardSummary{
			Gender: []models.AggregateCount{{Name: "Female", Value: 12}},
			Region: []models.AggregateCount{{Name: "North", Value: 8}},
		},
		hit: true,
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/summary", nil)

	handler.Summary(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.True(t, envelope.Success)
	assert.Equal(t, true, envelope.Meta["cache_hit"])

	var summary service.DashboardSummary
	_ = json.Unmarshal(envelope.Data, &summary)
	assert.Equal(t, "Female", summary.Gender[0].Name)
}

func TestDashboardHandlerSummaryFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDashboardHandler(&fakeDashboardSrv{err: errors.New("aggregation failed")})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/summary", nil)

	handler.Summary(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

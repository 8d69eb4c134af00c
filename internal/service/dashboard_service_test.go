package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sampark-ngo/placement-tracker/internal/models"
)

type mockAggregateReader struct {
	byColumn map[string][]models.AggregateCount
	calls    int
	err      error
}

func (m *mockAggregateReader) AggregateBy(ctx context.Context, column string) ([]models.AggregateCount, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.byColumn[column], nil
}

func TestDashboardSummaryWithoutCache(t *testing.T) {
	repo := &mockAggregateReader{byColumn: map[string][]models.AggregateCount{
		"gender": {{Name: "Female", Value: 12}},
		"region": {{Name: "North", Value: 8}, {Name: "South", Value: 4}},
	}}
	svc := NewDashboardService(repo, nil, nil, zap.NewNop())

	summary, hit, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	require.Len(t, summary.Gender, 1)
	require.Len(t, summary.Region, 2)
	assert.Equal(t, 2, repo.calls, "one aggregate query per chart")
}

func TestDashboardSummaryPropagatesAggregateError(t *testing.T) {
	repo := &mockAggregateReader{err: errors.New("connection reset")}
	svc := NewDashboardService(repo, nil, nil, zap.NewNop())

	_, _, err := svc.Summary(context.Background())
	require.Error(t, err)
}

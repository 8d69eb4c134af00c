package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sampark-ngo/placement-tracker/internal/models"
	appErrors "github.com/sampark-ngo/placement-tracker/pkg/errors"
)

type mockRecordLister struct {
	students []models.Student
	err      error
}

func (m *mockRecordLister) List(ctx context.Context) ([]models.Student, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.students, nil
}

func TestExportServiceCSV(t *testing.T) {
	lister := &mockRecordLister{students: []models.Student{
		{ID: 1, Name: "Asha Rao", Email: "asha@example.org", Region: strp("North"), Gender: strp("Female")},
		{ID: 2, Name: "Binod Kumar", Email: "binod@example.org"},
	}}
	svc := NewExportService(lister, zap.NewNop())

	file, err := svc.Export(context.Background(), ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, "placement-records.csv", file.Filename)

	content := strings.TrimPrefix(string(file.Content), "\xEF\xBB\xBF")
	lines := strings.Split(strings.TrimSpace(content), "\n")
	require.Len(t, lines, 3, "header plus one line per record")
	assert.True(t, strings.HasPrefix(lines[0], "ID,Name,Email,Region"))
	assert.Contains(t, lines[1], "Asha Rao")
	assert.Contains(t, lines[1], "North")
	assert.Contains(t, lines[2], "Binod Kumar")
}

func TestExportServicePDF(t *testing.T) {
	lister := &mockRecordLister{students: []models.Student{
		{ID: 1, Name: "Asha Rao", Email: "asha@example.org"},
	}}
	svc := NewExportService(lister, zap.NewNop())

	file, err := svc.Export(context.Background(), ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Content, []byte("%PDF")))
}

func TestExportServiceUnsupportedFormat(t *testing.T) {
	svc := NewExportService(&mockRecordLister{}, zap.NewNop())

	_, err := svc.Export(context.Background(), "xlsx")
	requireAppError(t, err, appErrors.ErrValidation.Code)
}

func TestExportServiceListFailure(t *testing.T) {
	svc := NewExportService(&mockRecordLister{err: errors.New("db down")}, zap.NewNop())

	_, err := svc.Export(context.Background(), ExportFormatCSV)
	require.Error(t, err)
}

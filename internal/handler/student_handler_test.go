package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sampark-ngo/placement-tracker/internal/models"
	"github.com/sampark-ngo/placement-tracker/internal/service"
)

type fakeStudentRepo struct {
	students   map[int64]models.Student
	aggregates []models.AggregateCount
	deleted    []int64
}

func (f *fakeStudentRepo) List(ctx context.Context) ([]models.Student, error) {
	out := make([]models.Student, 0, len(f.students))
	for _, s := range f.students {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStudentRepo) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	if s, ok := f.students[id]; ok {
		found := s
		return &found, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStudentRepo) Insert(ctx context.Context, patch *models.StudentPatch) (*models.Student, error) {
	student := models.Student{ID: 1}
	if patch.Name != nil {
		student.Name = *patch.Name
	}
	if patch.Email != nil {
		student.Email = *patch.Email
	}
	return &student, nil
}

func (f *fakeStudentRepo) Update(ctx context.Context, id int64, patch *models.StudentPatch) (*models.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if patch.Name != nil {
		s.Name = *patch.Name
	}
	updated := s
	return &updated, nil
}

func (f *fakeStudentRepo) Delete(ctx context.Context, id int64) (int64, error) {
	f.deleted = append(f.deleted, id)
	return 1, nil
}

func (f *fakeStudentRepo) AggregateBy(ctx context.Context, column string) ([]models.AggregateCount, error) {
	return f.aggregates, nil
}

func newStudentHandlerUnderTest(repo *fakeStudentRepo) *StudentHandler {
	students := service.NewStudentService(repo, nil, nil, nil, nil, nil)
	exports := service.NewExportService(students, nil)
	return NewStudentHandler(students, exports)
}

func testContext(t *testing.T, method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, rec
}

func TestStudentHandlerList(t *testing.T) {
	repo := &fakeStudentRepo{students: map[int64]models.Student{
		1: {ID: 1, Name: "Asha Rao", Email: "asha@example.org"},
	}}
	handler := newStudentHandlerUnderTest(repo)

	c, rec := testContext(t, http.MethodGet, "/students", nil)
	handler.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.True(t, envelope.Success)

	var students []models.Student
	_ = json.Unmarshal(envelope.Data, &students)
	require.Len(t, students, 1)
	require.NotNil(t, students[0].GreenJob)
	assert.Equal(t, "No", *students[0].GreenJob)
}

func TestStudentHandlerGetInvalidID(t *testing.T) {
	handler := newStudentHandlerUnderTest(&fakeStudentRepo{})

	c, rec := testContext(t, http.MethodGet, "/students/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	handler.Get(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStudentHandlerGetNotFound(t *testing.T) {
	handler := newStudentHandlerUnderTest(&fakeStudentRepo{})

	c, rec := testContext(t, http.MethodGet, "/students/42", nil)
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStudentHandlerCreate(t *testing.T) {
	handler := newStudentHandlerUnderTest(&fakeStudentRepo{})

	c, rec := testContext(t, http.MethodPost, "/students", map[string]string{
		"name":  "Asha Rao",
		"email": "asha@example.org",
	})
	handler.Create(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.True(t, envelope.Success)
}

func TestStudentHandlerCreateMissingEmail(t *testing.T) {
	handler := newStudentHandlerUnderTest(&fakeStudentRepo{})

	c, rec := testContext(t, http.MethodPost, "/students", map[string]string{"name": "Asha Rao"})
	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStudentHandlerUpdateEmptyBody(t *testing.T) {
	repo := &fakeStudentRepo{students: map[int64]models.Student{
		7: {ID: 7, Name: "Asha Rao", Email: "asha@example.org"},
	}}
	handler := newStudentHandlerUnderTest(repo)

	c, rec := testContext(t, http.MethodPatch, "/students/7", map[string]string{})
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	handler.Update(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no data provided for update")
}

func TestStudentHandlerUpdate(t *testing.T) {
	repo := &fakeStudentRepo{students: map[int64]models.Student{
		7: {ID: 7, Name: "Asha Rao", Email: "asha@example.org"},
	}}
	handler := newStudentHandlerUnderTest(repo)

	c, rec := testContext(t, http.MethodPatch, "/students/7", map[string]string{"name": "Asha R"})
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	handler.Update(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Asha R")
}

func TestStudentHandlerDelete(t *testing.T) {
	repo := &fakeStudentRepo{students: map[int64]models.Student{
		7: {ID: 7, Name: "Asha Rao", Email: "asha@example.org"},
	}}
	handler := newStudentHandlerUnderTest(repo)

	c, rec := testContext(t, http.MethodDelete, "/students/7", nil)
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	handler.Delete(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int64{7}, repo.deleted)
}

func TestStudentHandlerAggregateRequiresField(t *testing.T) {
	handler := newStudentHandlerUnderTest(&fakeStudentRepo{})

	c, rec := testContext(t, http.MethodGet, "/students/aggregate", nil)
	handler.Aggregate(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStudentHandlerAggregate(t *testing.T) {
	repo := &fakeStudentRepo{aggregates: []models.AggregateCount{{Name: "Female", Value: 3}}}
	handler := newStudentHandlerUnderTest(repo)

	c, rec := testContext(t, http.MethodGet, "/students/aggregate?field=gender", nil)
	handler.Aggregate(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Female")
}

func TestStudentHandlerExportCSV(t *testing.T) {
	repo := &fakeStudentRepo{students: map[int64]models.Student{
		1: {ID: 1, Name: "Asha Rao", Email: "asha@example.org"},
	}}
	handler := newStudentHandlerUnderTest(repo)

	c, rec := testContext(t, http.MethodGet, "/students/export?format=csv", nil)
	handler.Export(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="placement-records.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), "Asha Rao")
}

func TestStudentHandlerExportUnknownFormat(t *testing.T) {
	handler := newStudentHandlerUnderTest(&fakeStudentRepo{})

	c, rec := testContext(t, http.MethodGet, "/students/export?format=xlsx", nil)
	handler.Export(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

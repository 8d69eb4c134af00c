package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sampark-ngo/placement-tracker/internal/models"
	"github.com/sampark-ngo/placement-tracker/internal/service"
	appErrors "github.com/sampark-ngo/placement-tracker/pkg/errors"
	"github.com/sampark-ngo/placement-tracker/pkg/response"
)

// StudentHandler exposes placement record endpoints.
type StudentHandler struct {
	students *service.StudentService
	exports  *service.ExportService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students *service.StudentService, exports *service.ExportService) *StudentHandler {
	return &StudentHandler{students: students, exports: exports}
}

// List godoc
// @Summary List all placement records
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	students, err := h.students.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, "")
}

// Get godoc
// @Summary Get one placement record
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	student, err := h.students.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, "")
}

// Create godoc
// @Summary Create a placement record
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body models.StudentPatch true "Record fields"
// @Success 201 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var patch models.StudentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.Create(c.Request.Context(), patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student, "Student record created successfully")
}

// Update godoc
// @Summary Update a placement record
// @Tags Students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param payload body models.StudentPatch true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [patch]
func (h *StudentHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var patch models.StudentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.Update(c.Request.Context(), id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, "Student record updated successfully")
}

// Delete godoc
// @Summary Delete a placement record and its documents
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	student, err := h.students.Delete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, "Student record deleted successfully")
}

// Aggregate godoc
// @Summary Aggregate records by a chartable field
// @Tags Students
// @Produce json
// @Param field query string true "Column to group by (gender, region, ...)"
// @Success 200 {object} response.Envelope
// @Router /students/aggregate [get]
func (h *StudentHandler) Aggregate(c *gin.Context) {
	field := c.Query("field")
	if field == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "field query parameter is required"))
		return
	}
	counts, err := h.students.AggregateBy(c.Request.Context(), field)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, counts, "")
}

// Export godoc
// @Summary Export records as CSV or PDF
// @Tags Students
// @Produce octet-stream
// @Param format query string false "csv or pdf" default(csv)
// @Success 200
// @Router /students/export [get]
func (h *StudentHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", service.ExportFormatCSV)
	file, err := h.exports.Export(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Content)
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "valid student id is required")
	}
	return id, nil
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sampark-ngo/placement-tracker/internal/service"
	appErrors "github.com/sampark-ngo/placement-tracker/pkg/errors"
	"github.com/sampark-ngo/placement-tracker/pkg/response"
)

// UploadTargetRequest asks for a one-shot upload authorization.
type UploadTargetRequest struct {
	ContentType string `json:"content_type" binding:"required"`
}

// DownloadTargetRequest asks for a time-boxed download URL.
type DownloadTargetRequest struct {
	ObjectKey string `json:"object_key"`
}

// DeleteObjectRequest names the object to remove.
type DeleteObjectRequest struct {
	ObjectKey string `json:"object_key"`
}

// UploadHandler exposes the presigned-transfer broker endpoints. All routes
// sit behind the session middleware; an unauthenticated caller never
// reaches these methods.
type UploadHandler struct {
	uploads *service.UploadService
}

// NewUploadHandler constructs UploadHandler.
func NewUploadHandler(uploads *service.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// CreateUploadTarget godoc
// @Summary Issue a presigned upload authorization
// @Tags Uploads
// @Accept json
// @Produce json
// @Param payload body UploadTargetRequest true "Upload metadata"
// @Success 200 {object} response.Envelope
// @Router /uploads/target [post]
func (h *UploadHandler) CreateUploadTarget(c *gin.Context) {
	var req UploadTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "content_type is required"))
		return
	}
	target, err := h.uploads.RequestUploadTarget(c.Request.Context(), req.ContentType)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, target, "")
}

// CreateDownloadTarget godoc
// @Summary Issue a presigned download URL
// @Tags Uploads
// @Accept json
// @Produce json
// @Param payload body DownloadTargetRequest true "Object key"
// @Success 200 {object} response.Envelope
// @Router /uploads/download-target [post]
func (h *UploadHandler) CreateDownloadTarget(c *gin.Context) {
	var req DownloadTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	signedURL, err := h.uploads.RequestDownloadTarget(c.Request.Context(), req.ObjectKey)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"signed_url": signedURL}, "")
}

// DeleteObject godoc
// @Summary Delete an uploaded object
// @Tags Uploads
// @Accept json
// @Produce json
// @Param payload body DeleteObjectRequest true "Object key"
// @Success 200 {object} response.Envelope
// @Router /uploads/object [delete]
func (h *UploadHandler) DeleteObject(c *gin.Context) {
	var req DeleteObjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.uploads.DeleteObject(c.Request.Context(), req.ObjectKey); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deleted": true}, "Object deleted")
}

package enrollment

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"drivingschool/internal/domain"
	"drivingschool/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const maxDocumentSize = 10 << 20

type Handler struct {
	service   *Service
	uploadDir string
}

func NewHandler(service *Service, uploadDir string) *Handler {
	return &Handler{service: service, uploadDir: uploadDir}
}

func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup) {
	g := v1.Group("/enrollments")
	{
		g.POST("", h.Start)
		g.GET("/:ref", h.Get)
		g.PUT("/:ref", h.Update)
		g.POST("/:ref/next", h.Next)
		g.POST("/:ref/previous", h.Previous)
		g.POST("/:ref/documents", h.UploadDocument)
		g.POST("/:ref/submit", h.Submit)
	}
}

func (h *Handler) Start(c *gin.Context) {
	e, err := h.service.Start(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "ENROLLMENT_FAILED", "Failed to start enrollment")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"enrollment": view(e, nil)})
}

func (h *Handler) Get(c *gin.Context) {
	e, err := h.service.Get(c.Request.Context(), c.Param("ref"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Enrollment not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to get enrollment")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"enrollment": view(e, nil)})
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	e, err := h.service.UpdateFields(c.Request.Context(), c.Param("ref"), req)
	if err != nil {
		h.writeServiceError(c, err, "UPDATE_FAILED", "Failed to update enrollment")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"enrollment": view(e, nil)})
}

func (h *Handler) Next(c *gin.Context) {
	e, fieldErrs, err := h.service.Next(c.Request.Context(), c.Param("ref"))
	if err != nil {
		h.writeServiceError(c, err, "STEP_FAILED", "Failed to advance enrollment")
		return
	}
	if len(fieldErrs) > 0 {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity,
			"STEP_VALIDATION_FAILED", "Current step has invalid fields", fieldErrs)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"enrollment": view(e, nil)})
}

func (h *Handler) Previous(c *gin.Context) {
	e, err := h.service.Previous(c.Request.Context(), c.Param("ref"))
	if err != nil {
		h.writeServiceError(c, err, "STEP_FAILED", "Failed to step back")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"enrollment": view(e, nil)})
}

// UploadDocument stores one file into a named document slot. Only presence is
// checked, never content.
func (h *Handler) UploadDocument(c *gin.Context) {
	kind := domain.DocumentKind(c.PostForm("kind"))
	if !kind.Valid() {
		response.Error(c, http.StatusBadRequest, "INVALID_KIND", "Unknown document kind")
		return
	}

	file, err := c.FormFile("document")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "NO_FILE", "No document uploaded")
		return
	}
	if file.Size > maxDocumentSize {
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Document exceeds 10MB")
		return
	}

	if err := os.MkdirAll(h.uploadDir, os.ModePerm); err != nil {
		response.Error(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to create upload directory")
		return
	}

	filename := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(file.Filename))
	savePath := filepath.Join(h.uploadDir, filename)
	if err := c.SaveUploadedFile(file, savePath); err != nil {
		response.Error(c, http.StatusInternalServerError, "SAVE_FAILED", "Failed to save document")
		return
	}

	fileRef := "/static/enrollment/" + filename
	e, err := h.service.AttachDocument(c.Request.Context(), c.Param("ref"), kind, fileRef)
	if err != nil {
		h.writeServiceError(c, err, "ATTACH_FAILED", "Failed to attach document")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"enrollment": view(e, nil),
		"file_ref":   fileRef,
	})
}

func (h *Handler) Submit(c *gin.Context) {
	e, fieldErrs, err := h.service.Submit(c.Request.Context(), c.Param("ref"))
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailAlreadyExists):
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
		case errors.Is(err, ErrNotOnFinalStep):
			response.Error(c, http.StatusConflict, "NOT_ON_FINAL_STEP", "Finish the previous steps first")
		default:
			h.writeServiceError(c, err, "SUBMIT_FAILED", "Failed to submit enrollment")
		}
		return
	}
	if len(fieldErrs) > 0 {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity,
			"STEP_VALIDATION_FAILED", "Payment step has invalid fields", fieldErrs)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message":   "Inscription réussie",
		"reference": e.Reference,
	})
}

func (h *Handler) writeServiceError(c *gin.Context, err error, code, message string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Enrollment not found")
	case errors.Is(err, ErrAlreadySubmitted):
		response.Error(c, http.StatusConflict, "ALREADY_SUBMITTED", "Enrollment was already submitted")
	case errors.Is(err, ErrInvalidDocument):
		response.Error(c, http.StatusBadRequest, "INVALID_KIND", "Unknown document kind")
	default:
		response.Error(c, http.StatusInternalServerError, code, message)
	}
}

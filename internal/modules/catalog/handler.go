package catalog

import (
	"net/http"

	"drivingschool/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Catalogue endpoints are public: the signup wizard reads them before any
// account exists.
func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup) {
	g := v1.Group("/catalog")
	{
		g.GET("/lessons", h.GetLessonTypes)
		g.GET("/packages", h.GetTrainingPackages)
	}
}

func (h *Handler) GetLessonTypes(c *gin.Context) {
	lessons, err := h.service.LessonTypes(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list lessons")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"lessons": lessons})
}

func (h *Handler) GetTrainingPackages(c *gin.Context) {
	packages, err := h.service.TrainingPackages(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list packages")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"packages": packages})
}

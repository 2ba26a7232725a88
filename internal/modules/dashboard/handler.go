package dashboard

import (
	"net/http"
	"time"

	"drivingschool/internal/domain"
	"drivingschool/internal/middleware"
	"drivingschool/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts one overview endpoint per role. Each route
// carries its own role guard so a student token on the instructor
// dashboard gets a 403, not someone else's data.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard/admin", middleware.RequireRole(domain.RoleAdmin), h.AdminOverview)
	rg.GET("/dashboard/instructor", middleware.RequireRole(domain.RoleInstructor), h.InstructorOverview)
	rg.GET("/portail/summary", middleware.RequireRole(domain.RoleStudent), h.StudentOverview)
}

func (h *Handler) AdminOverview(c *gin.Context) {
	overview, err := h.service.AdminOverview(c.Request.Context(), time.Now())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", "Impossible de récupérer le tableau de bord")
		return
	}

	response.Success(c, http.StatusOK, overview)
}

func (h *Handler) InstructorOverview(c *gin.Context) {
	userID := c.GetInt64("user_id")

	overview, err := h.service.InstructorOverview(c.Request.Context(), userID, time.Now())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", "Impossible de récupérer le tableau de bord")
		return
	}

	response.Success(c, http.StatusOK, overview)
}

func (h *Handler) StudentOverview(c *gin.Context) {
	userID := c.GetInt64("user_id")

	overview, err := h.service.StudentOverview(c.Request.Context(), userID, time.Now())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", "Impossible de récupérer le résumé")
		return
	}

	response.Success(c, http.StatusOK, overview)
}

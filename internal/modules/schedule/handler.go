package schedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"drivingschool/internal/domain"
	"drivingschool/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/schedule")
	{
		g.GET("/slots", h.GetDaySlots)
		g.GET("/instructors", h.GetInstructors)
	}

	b := protected.Group("/bookings")
	{
		b.POST("", h.Book)
		b.GET("/upcoming", h.GetUpcoming)
		b.POST("/:id/cancel", h.Cancel)
	}
}

func (h *Handler) GetDaySlots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	var instructorID int64
	if s := c.Query("instructor_id"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil || v <= 0 {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid instructor ID")
			return
		}
		instructorID = v
	}

	slots, err := h.service.DaySlots(c.Request.Context(), date, instructorID)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "INVALID_DATE", "Date must be YYYY-MM-DD")
		case errors.Is(err, ErrUnknownInstructor):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Instructor not found")
		default:
			response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to compute slots")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"date":  date,
		"slots": slots,
	})
}

func (h *Handler) GetInstructors(c *gin.Context) {
	instructors, err := h.service.Instructors(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list instructors")
		return
	}

	out := make([]InstructorView, 0, len(instructors))
	for _, ins := range instructors {
		out = append(out, InstructorView{
			ID:        ins.ID,
			FirstName: ins.FirstName,
			LastName:  ins.LastName,
			Avatar:    ins.ProfilePicture,
		})
	}

	response.Success(c, http.StatusOK, gin.H{"instructors": out})
}

func (h *Handler) Book(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	var req BookSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Book(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking request")
		case errors.Is(err, ErrUnknownInstructor):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Instructor not found")
		case errors.Is(err, ErrSlotUnavailable):
			response.Error(c, http.StatusConflict, "SLOT_UNAVAILABLE", "Ce créneau est déjà réservé ou non disponible")
		case errors.Is(err, ErrSlotTaken):
			response.Error(c, http.StatusConflict, "SLOT_UNAVAILABLE", "Ce créneau vient d'être réservé")
		default:
			response.Error(c, http.StatusInternalServerError, "BOOKING_FAILED", "Failed to book slot")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) GetUpcoming(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	var (
		bookings []domain.Booking
		err      error
	)
	if c.GetString("role") == string(domain.RoleInstructor) {
		bookings, err = h.service.UpcomingForInstructor(c.Request.Context(), userID)
	} else {
		bookings, err = h.service.UpcomingForStudent(c.Request.Context(), userID)
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list bookings")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) Cancel(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not your booking")
		default:
			response.Error(c, http.StatusInternalServerError, "CANCEL_FAILED", "Failed to cancel booking")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

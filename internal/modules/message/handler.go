package message

import (
	"net/http"
	"strconv"

	"drivingschool/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers messaging routes under the protected group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	msgGroup := rg.Group("/messages")
	{
		msgGroup.GET("/conversations", h.ListConversations)
		msgGroup.GET("/conversations/:userID", h.GetConversation)
		msgGroup.POST("", h.Send)
		msgGroup.GET("/unread-count", h.UnreadCount)
	}
}

func (h *Handler) ListConversations(c *gin.Context) {
	userID := c.GetInt64("user_id")

	convs, err := h.service.Conversations(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", "Impossible de récupérer les conversations")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"conversations": convs})
}

func (h *Handler) GetConversation(c *gin.Context) {
	userID := c.GetInt64("user_id")

	otherID, err := strconv.ParseInt(c.Param("userID"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Identifiant d'utilisateur invalide")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	msgs, err := h.service.ConversationWith(c.Request.Context(), userID, otherID, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", "Impossible de récupérer les messages")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"messages": msgs})
}

func (h *Handler) Send(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Destinataire et contenu requis")
		return
	}

	msg, err := h.service.Send(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case err == ErrEmptyContent:
			response.Error(c, http.StatusBadRequest, "EMPTY_CONTENT", "Le message ne peut pas être vide")
		case err == ErrCannotMessageSelf:
			response.Error(c, http.StatusBadRequest, "INVALID_RECIPIENT", "Impossible de s'envoyer un message à soi-même")
		case err == ErrRecipientNotFound:
			response.Error(c, http.StatusNotFound, "RECIPIENT_NOT_FOUND", "Destinataire introuvable")
		default:
			response.Error(c, http.StatusInternalServerError, "SEND_ERROR", "Impossible d'envoyer le message")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": msg})
}

func (h *Handler) UnreadCount(c *gin.Context) {
	userID := c.GetInt64("user_id")

	cnt, err := h.service.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", "Impossible de récupérer le nombre de messages non lus")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"unread_count": cnt})
}

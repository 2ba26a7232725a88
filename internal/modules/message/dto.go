package message

import "drivingschool/internal/domain"

type SendMessageRequest struct {
	ReceiverID int64  `json:"receiver_id" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

// WSEnvelope is what connected clients receive when a message arrives
// while they are online.
type WSEnvelope struct {
	Type    string          `json:"type"`
	Message *domain.Message `json:"message"`
}

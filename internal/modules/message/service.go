package message

import (
	"context"
	"errors"
	"strings"

	"drivingschool/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	messageRepo MessageRepositoryInterface
	userRepo    UserReader
	notifier    NotificationSender
	hub         *Hub
}

func NewService(messageRepo MessageRepositoryInterface, userRepo UserReader, notifier NotificationSender, hub *Hub) *Service {
	return &Service{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		hub:         hub,
	}
}

// Send stores the message and pushes it to the recipient. Online
// recipients get it over their websocket; offline ones get a
// notification instead.
func (s *Service) Send(ctx context.Context, senderID int64, req SendMessageRequest) (*domain.Message, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if senderID == req.ReceiverID {
		return nil, ErrCannotMessageSelf
	}

	recipient, err := s.userRepo.GetByID(ctx, req.ReceiverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}
	if recipient.Status != domain.StatusActive {
		return nil, ErrRecipientNotFound
	}

	msg := &domain.Message{
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		Content:    content,
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	delivered := s.hub.SendToUser(req.ReceiverID, WSEnvelope{Type: "new_message", Message: msg})
	if !delivered {
		sender, err := s.userRepo.GetByID(ctx, senderID)
		senderName := "Un utilisateur"
		if err == nil {
			senderName = sender.FullName()
		}
		_ = s.notifier.NotifyNewMessage(ctx, req.ReceiverID, senderName)
	}

	return msg, nil
}

// Conversations lists everyone the user has exchanged messages with,
// most recent first, with last message and unread counts.
func (s *Service) Conversations(ctx context.Context, userID int64) ([]domain.Conversation, error) {
	ids, err := s.messageRepo.ListCorrespondents(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Conversation, 0, len(ids))
	for _, otherID := range ids {
		other, err := s.userRepo.GetByID(ctx, otherID)
		if err != nil {
			continue
		}

		conv := domain.Conversation{
			UserID: otherID,
			Name:   other.FullName(),
			Role:   other.Role,
		}

		if last, err := s.messageRepo.LastInConversation(ctx, userID, otherID); err == nil {
			conv.LastMessage = last.Content
			conv.LastAt = last.CreatedAt
		}
		if cnt, err := s.messageRepo.CountUnreadFrom(ctx, userID, otherID); err == nil {
			conv.UnreadCount = cnt
		}

		out = append(out, conv)
	}
	return out, nil
}

// ConversationWith returns the exchange with one correspondent, oldest
// first, and marks everything they sent as read.
func (s *Service) ConversationWith(ctx context.Context, userID, otherID int64, limit int) ([]domain.Message, error) {
	msgs, err := s.messageRepo.ListConversation(ctx, userID, otherID, limit)
	if err != nil {
		return nil, err
	}
	if err := s.messageRepo.MarkConversationRead(ctx, userID, otherID); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (s *Service) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.messageRepo.CountUnread(ctx, userID)
}

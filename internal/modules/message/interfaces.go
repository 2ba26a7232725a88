package message

import (
	"context"

	"drivingschool/internal/domain"
)

type MessageRepositoryInterface interface {
	Create(ctx context.Context, msg *domain.Message) error
	ListConversation(ctx context.Context, userID, otherID int64, limit int) ([]domain.Message, error)
	ListCorrespondents(ctx context.Context, userID int64) ([]int64, error)
	LastInConversation(ctx context.Context, userID, otherID int64) (*domain.Message, error)
	CountUnreadFrom(ctx context.Context, userID, otherID int64) (int64, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkConversationRead(ctx context.Context, userID, otherID int64) error
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type NotificationSender interface {
	NotifyNewMessage(ctx context.Context, userID int64, senderName string) error
}

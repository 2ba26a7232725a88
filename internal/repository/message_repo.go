package repository

import (
	"context"
	"time"

	"drivingschool/internal/domain"

	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

type messageModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	SenderID   int64     `gorm:"column:sender_id;index"`
	ReceiverID int64     `gorm:"column:receiver_id;index"`
	Content    string    `gorm:"column:content;type:text"`
	IsRead     bool      `gorm:"column:is_read"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (messageModel) TableName() string { return "messages" }

func toDomainMessage(m messageModel) *domain.Message {
	return &domain.Message{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		IsRead:     m.IsRead,
		CreatedAt:  m.CreatedAt,
	}
}

func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	m := messageModel{
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		Content:    msg.Content,
		IsRead:     msg.IsRead,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	msg.ID = m.ID
	msg.CreatedAt = m.CreatedAt
	return nil
}

// ListConversation returns the full exchange between two users, oldest first.
func (r *MessageRepository) ListConversation(ctx context.Context, userID, otherID int64, limit int) ([]domain.Message, error) {
	var models []messageModel
	tx := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID).
		Order("created_at").
		Limit(limit).
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Message, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainMessage(m))
	}
	return out, nil
}

// ListCorrespondents returns the IDs of everyone the user has exchanged
// messages with, most recent conversation first.
func (r *MessageRepository) ListCorrespondents(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	tx := r.db.WithContext(ctx).Model(&messageModel{}).
		Select("CASE WHEN sender_id = ? THEN receiver_id ELSE sender_id END AS other_id", userID).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Group("other_id").
		Order("MAX(created_at) DESC").
		Pluck("other_id", &ids)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return ids, nil
}

func (r *MessageRepository) LastInConversation(ctx context.Context, userID, otherID int64) (*domain.Message, error) {
	var m messageModel
	tx := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID).
		Order("created_at DESC").
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainMessage(m), nil
}

func (r *MessageRepository) CountUnreadFrom(ctx context.Context, userID, otherID int64) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&messageModel{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", otherID, userID, false).
		Count(&cnt)
	return cnt, tx.Error
}

func (r *MessageRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&messageModel{}).
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Count(&cnt)
	return cnt, tx.Error
}

// MarkConversationRead flags everything the other party sent as read.
func (r *MessageRepository) MarkConversationRead(ctx context.Context, userID, otherID int64) error {
	return r.db.WithContext(ctx).Model(&messageModel{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", otherID, userID, false).
		Update("is_read", true).Error
}

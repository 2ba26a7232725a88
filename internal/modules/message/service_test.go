package message

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"drivingschool/internal/domain"
)

type mockMessageRepo struct {
	mock.Mock
}

func (m *mockMessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *mockMessageRepo) ListConversation(ctx context.Context, userID, otherID int64, limit int) ([]domain.Message, error) {
	args := m.Called(ctx, userID, otherID, limit)
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *mockMessageRepo) ListCorrespondents(ctx context.Context, userID int64) ([]int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]int64), args.Error(1)
}

func (m *mockMessageRepo) LastInConversation(ctx context.Context, userID, otherID int64) (*domain.Message, error) {
	args := m.Called(ctx, userID, otherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

func (m *mockMessageRepo) CountUnreadFrom(ctx context.Context, userID, otherID int64) (int64, error) {
	args := m.Called(ctx, userID, otherID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMessageRepo) CountUnread(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMessageRepo) MarkConversationRead(ctx context.Context, userID, otherID int64) error {
	args := m.Called(ctx, userID, otherID)
	return args.Error(0)
}

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockMessageNotifier struct {
	mock.Mock
}

func (m *mockMessageNotifier) NotifyNewMessage(ctx context.Context, userID int64, senderName string) error {
	args := m.Called(ctx, userID, senderName)
	return args.Error(0)
}

func activeRecipient(id int64, first, last string) *domain.User {
	return &domain.User{ID: id, Role: domain.RoleInstructor, Status: domain.StatusActive, FirstName: first, LastName: last}
}

func TestSend_EmptyContent(t *testing.T) {
	svc := NewService(new(mockMessageRepo), new(mockUsers), new(mockMessageNotifier), NewHub())

	_, err := svc.Send(context.Background(), 1, SendMessageRequest{ReceiverID: 2, Content: "   "})
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestSend_ToSelf(t *testing.T) {
	svc := NewService(new(mockMessageRepo), new(mockUsers), new(mockMessageNotifier), NewHub())

	_, err := svc.Send(context.Background(), 1, SendMessageRequest{ReceiverID: 1, Content: "bonjour"})
	assert.ErrorIs(t, err, ErrCannotMessageSelf)
}

func TestSend_UnknownRecipient(t *testing.T) {
	users := new(mockUsers)
	users.On("GetByID", mock.Anything, int64(2)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(new(mockMessageRepo), users, new(mockMessageNotifier), NewHub())

	_, err := svc.Send(context.Background(), 1, SendMessageRequest{ReceiverID: 2, Content: "bonjour"})
	assert.ErrorIs(t, err, ErrRecipientNotFound)
}

func TestSend_OfflineRecipientGetsNotification(t *testing.T) {
	users := new(mockUsers)
	users.On("GetByID", mock.Anything, int64(2)).Return(activeRecipient(2, "Sarah", "Dubois"), nil)
	users.On("GetByID", mock.Anything, int64(1)).Return(activeRecipient(1, "Lucas", "Bernard"), nil)

	repo := new(mockMessageRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	notifier := new(mockMessageNotifier)
	notifier.On("NotifyNewMessage", mock.Anything, int64(2), "Lucas Bernard").Return(nil)

	svc := NewService(repo, users, notifier, NewHub())

	msg, err := svc.Send(context.Background(), 1, SendMessageRequest{ReceiverID: 2, Content: "  bonjour  "})
	assert.NoError(t, err)
	assert.Equal(t, "bonjour", msg.Content)
	notifier.AssertExpectations(t)
}

func TestConversations_AssemblesSummaries(t *testing.T) {
	repo := new(mockMessageRepo)
	repo.On("ListCorrespondents", mock.Anything, int64(1)).Return([]int64{2}, nil)
	repo.On("LastInConversation", mock.Anything, int64(1), int64(2)).
		Return(&domain.Message{SenderID: 2, ReceiverID: 1, Content: "À demain", CreatedAt: time.Now()}, nil)
	repo.On("CountUnreadFrom", mock.Anything, int64(1), int64(2)).Return(int64(3), nil)

	users := new(mockUsers)
	users.On("GetByID", mock.Anything, int64(2)).Return(activeRecipient(2, "Sarah", "Dubois"), nil)

	svc := NewService(repo, users, new(mockMessageNotifier), NewHub())

	convs, err := svc.Conversations(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, convs, 1)
	assert.Equal(t, "Sarah Dubois", convs[0].Name)
	assert.Equal(t, "À demain", convs[0].LastMessage)
	assert.Equal(t, int64(3), convs[0].UnreadCount)
}

func TestConversationWith_MarksRead(t *testing.T) {
	repo := new(mockMessageRepo)
	repo.On("ListConversation", mock.Anything, int64(1), int64(2), 100).
		Return([]domain.Message{{SenderID: 2, ReceiverID: 1, Content: "bonjour"}}, nil)
	repo.On("MarkConversationRead", mock.Anything, int64(1), int64(2)).Return(nil)

	svc := NewService(repo, new(mockUsers), new(mockMessageNotifier), NewHub())

	msgs, err := svc.ConversationWith(context.Background(), 1, 2, 100)
	assert.NoError(t, err)
	assert.Len(t, msgs, 1)
	repo.AssertExpectations(t)
}

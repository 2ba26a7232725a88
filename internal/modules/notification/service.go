package notification

import (
	"context"
	"fmt"
	"time"

	"drivingschool/internal/domain"
	"drivingschool/internal/repository"
)

// Service is the notification inbox plus the senders other modules call
// through their NotificationSender seams.
type Service struct {
	repo *repository.NotificationRepository
}

func NewService(repo *repository.NotificationRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetUserNotifications(ctx context.Context, userID int64, limit int) ([]domain.Notification, int64, error) {
	list, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return list, unread, nil
}

func (s *Service) MarkAsRead(ctx context.Context, id, userID int64) error {
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *Service) NotifyBookingConfirmed(ctx context.Context, userID, bookingID int64, start time.Time) error {
	return s.repo.Create(ctx, &domain.Notification{
		UserID:    userID,
		Type:      domain.NotifBookingConfirmed,
		Title:     "Leçon réservée",
		Message:   fmt.Sprintf("Votre leçon du %s à %s est confirmée.", start.Format("02/01/2006"), start.Format("15:04")),
		ActionURL: "/portail/booking",
	})
}

func (s *Service) NotifyBookingCancelled(ctx context.Context, userID, bookingID int64, start time.Time) error {
	return s.repo.Create(ctx, &domain.Notification{
		UserID:    userID,
		Type:      domain.NotifBookingCancelled,
		Title:     "Leçon annulée",
		Message:   fmt.Sprintf("La leçon du %s à %s a été annulée.", start.Format("02/01/2006"), start.Format("15:04")),
		ActionURL: "/portail/booking",
	})
}

func (s *Service) NotifyEnrollmentReceived(ctx context.Context, userID int64, reference string) error {
	return s.repo.Create(ctx, &domain.Notification{
		UserID:  userID,
		Type:    domain.NotifEnrollmentReceived,
		Title:   "Inscription reçue",
		Message: "Votre dossier d'inscription a bien été reçu.",
	})
}

func (s *Service) NotifyNewMessage(ctx context.Context, userID int64, senderName string) error {
	return s.repo.Create(ctx, &domain.Notification{
		UserID:    userID,
		Type:      domain.NotifNewMessage,
		Title:     "Nouveau message",
		Message:   fmt.Sprintf("%s vous a envoyé un message.", senderName),
		ActionURL: "/portail/messages",
	})
}

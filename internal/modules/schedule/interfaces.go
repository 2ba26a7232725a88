package schedule

import (
	"context"
	"time"

	"drivingschool/internal/domain"
	"drivingschool/internal/repository"
)

type BookingRepositoryInterface interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
	CheckAvailability(ctx context.Context, instructorID int64, start, end time.Time) (bool, error)
	GetBusySlots(ctx context.Context, instructorID int64, from, to time.Time) ([]repository.BusySlot, error)
	CountForInstructorBetween(ctx context.Context, instructorID int64, from, to time.Time) (int64, error)
	ListUpcomingByStudent(ctx context.Context, studentID int64, now time.Time) ([]domain.Booking, error)
	ListUpcomingByInstructor(ctx context.Context, instructorID int64, now time.Time) ([]domain.Booking, error)
}

// InstructorRoster lists the active instructors slots are scheduled against.
type InstructorRoster interface {
	ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type LessonTypeReader interface {
	GetLessonTypeByCode(ctx context.Context, code string) (*domain.LessonType, error)
}

type NotificationSender interface {
	NotifyBookingConfirmed(ctx context.Context, userID, bookingID int64, start time.Time) error
	NotifyBookingCancelled(ctx context.Context, userID, bookingID int64, start time.Time) error
}

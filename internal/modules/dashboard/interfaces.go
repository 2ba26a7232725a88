package dashboard

import (
	"context"
	"time"

	"drivingschool/internal/domain"
)

type UserCounter interface {
	CountByRole(ctx context.Context, role domain.UserRole) (int64, error)
}

type BookingStats interface {
	CountBetween(ctx context.Context, from, to time.Time) (int64, error)
	CountByStudent(ctx context.Context, studentID int64, status domain.BookingStatus) (int64, error)
	CountForInstructorBetween(ctx context.Context, instructorID int64, from, to time.Time) (int64, error)
	ListUpcomingByStudent(ctx context.Context, studentID int64, now time.Time) ([]domain.Booking, error)
	ListUpcomingByInstructor(ctx context.Context, instructorID int64, now time.Time) ([]domain.Booking, error)
}

type EnrollmentStats interface {
	CountSubmitted(ctx context.Context) (int64, error)
}

type UnreadCounter interface {
	CountUnread(ctx context.Context, userID int64) (int64, error)
}

package dashboard

import (
	"context"
	"time"

	"drivingschool/internal/domain"
)

type Service struct {
	userRepo       UserCounter
	bookingRepo    BookingStats
	enrollmentRepo EnrollmentStats
	messageCounts  UnreadCounter
	notifCounts    UnreadCounter
}

func NewService(
	userRepo UserCounter,
	bookingRepo BookingStats,
	enrollmentRepo EnrollmentStats,
	messageCounts UnreadCounter,
	notifCounts UnreadCounter,
) *Service {
	return &Service{
		userRepo:       userRepo,
		bookingRepo:    bookingRepo,
		enrollmentRepo: enrollmentRepo,
		messageCounts:  messageCounts,
		notifCounts:    notifCounts,
	}
}

func (s *Service) AdminOverview(ctx context.Context, now time.Time) (*AdminOverview, error) {
	out := &AdminOverview{}

	var err error
	if out.Students, err = s.userRepo.CountByRole(ctx, domain.RoleStudent); err != nil {
		return nil, err
	}
	if out.Instructors, err = s.userRepo.CountByRole(ctx, domain.RoleInstructor); err != nil {
		return nil, err
	}

	dayStart, dayEnd := dayBounds(now)
	if out.LessonsToday, err = s.bookingRepo.CountBetween(ctx, dayStart, dayEnd); err != nil {
		return nil, err
	}
	if out.SubmittedEnrollments, err = s.enrollmentRepo.CountSubmitted(ctx); err != nil {
		return nil, err
	}

	return out, nil
}

func (s *Service) InstructorOverview(ctx context.Context, instructorID int64, now time.Time) (*InstructorOverview, error) {
	out := &InstructorOverview{}

	dayStart, dayEnd := dayBounds(now)

	var err error
	if out.LessonsToday, err = s.bookingRepo.CountForInstructorBetween(ctx, instructorID, dayStart, dayEnd); err != nil {
		return nil, err
	}

	weekStart, weekEnd := weekBounds(now)
	if out.LessonsThisWeek, err = s.bookingRepo.CountForInstructorBetween(ctx, instructorID, weekStart, weekEnd); err != nil {
		return nil, err
	}

	if out.UpcomingLessons, err = s.bookingRepo.ListUpcomingByInstructor(ctx, instructorID, now); err != nil {
		return nil, err
	}
	if out.UnreadMessages, err = s.messageCounts.CountUnread(ctx, instructorID); err != nil {
		return nil, err
	}

	return out, nil
}

func (s *Service) StudentOverview(ctx context.Context, studentID int64, now time.Time) (*StudentOverview, error) {
	out := &StudentOverview{}

	var err error
	if out.UpcomingLessons, err = s.bookingRepo.ListUpcomingByStudent(ctx, studentID, now); err != nil {
		return nil, err
	}
	if out.CompletedLessons, err = s.bookingRepo.CountByStudent(ctx, studentID, domain.BookingCompleted); err != nil {
		return nil, err
	}
	if out.UnreadMessages, err = s.messageCounts.CountUnread(ctx, studentID); err != nil {
		return nil, err
	}
	if out.UnreadNotifications, err = s.notifCounts.CountUnread(ctx, studentID); err != nil {
		return nil, err
	}

	return out, nil
}

func dayBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}

// weekBounds returns the Monday-to-Monday window containing now.
func weekBounds(now time.Time) (time.Time, time.Time) {
	offset := (int(now.Weekday()) + 6) % 7
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 7)
}

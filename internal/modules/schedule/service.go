package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"drivingschool/internal/domain"
	"drivingschool/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// School day grid: half-hour boundaries between opening and closing. Every
// date yields exactly (closingHour-openingHour)*2 slots per instructor.
const (
	openingHour  = 8
	closingHour  = 18
	slotDuration = 30 * time.Minute
)

// SlotsPerDay is the fixed size of one instructor's day grid.
const SlotsPerDay = (closingHour - openingHour) * 2

// Service derives slot availability from stored bookings. Identical inputs
// give identical answers; nothing here is randomized.
type Service struct {
	bookings BookingRepositoryInterface
	roster   InstructorRoster
	lessons  LessonTypeReader
	notifs   NotificationSender
}

func NewService(
	bookings BookingRepositoryInterface,
	roster InstructorRoster,
	lessons LessonTypeReader,
	notifs NotificationSender,
) *Service {
	return &Service{
		bookings: bookings,
		roster:   roster,
		lessons:  lessons,
		notifs:   notifs,
	}
}

// Instructors returns the active roster.
func (s *Service) Instructors(ctx context.Context) ([]domain.User, error) {
	return s.roster.ListByRole(ctx, domain.RoleInstructor)
}

// DaySlots builds the day grid for one date. With instructorID > 0 the grid
// reflects that instructor's calendar; otherwise a slot is available when any
// instructor is free, attributed to the least-loaded free one.
func (s *Service) DaySlots(ctx context.Context, dateStr string, instructorID int64) ([]domain.TimeSlot, error) {
	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, ErrValidation
	}
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	if instructorID > 0 {
		instructor, err := s.roster.GetByID(ctx, instructorID)
		if err != nil || instructor.Role != domain.RoleInstructor {
			return nil, ErrUnknownInstructor
		}
		return s.instructorDay(ctx, day, dateStr, instructorID)
	}

	instructors, err := s.roster.ListByRole(ctx, domain.RoleInstructor)
	if err != nil {
		return nil, err
	}
	return s.rosterDay(ctx, day, dateStr, instructors)
}

func (s *Service) instructorDay(ctx context.Context, day time.Time, dateStr string, instructorID int64) ([]domain.TimeSlot, error) {
	open, close := dayBounds(day)
	busy, err := s.bookings.GetBusySlots(ctx, instructorID, open, close)
	if err != nil {
		return nil, err
	}

	slots := make([]domain.TimeSlot, 0, SlotsPerDay)
	for start := open; start.Before(close); start = start.Add(slotDuration) {
		end := start.Add(slotDuration)
		slot := domain.TimeSlot{
			ID:           slotID(dateStr, start, instructorID),
			Date:         dateStr,
			Time:         start.Format("15:04"),
			Available:    !overlapsAny(busy, start, end),
			InstructorID: instructorID,
			Start:        start,
			End:          end,
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

func (s *Service) rosterDay(ctx context.Context, day time.Time, dateStr string, instructors []domain.User) ([]domain.TimeSlot, error) {
	open, close := dayBounds(day)

	type calendar struct {
		id   int64
		busy []repository.BusySlot
		load int64
	}
	calendars := make([]calendar, 0, len(instructors))
	for _, ins := range instructors {
		busy, err := s.bookings.GetBusySlots(ctx, ins.ID, open, close)
		if err != nil {
			return nil, err
		}
		load, err := s.bookings.CountForInstructorBetween(ctx, ins.ID, open, close)
		if err != nil {
			return nil, err
		}
		calendars = append(calendars, calendar{id: ins.ID, busy: busy, load: load})
	}

	slots := make([]domain.TimeSlot, 0, SlotsPerDay)
	for start := open; start.Before(close); start = start.Add(slotDuration) {
		end := start.Add(slotDuration)

		var chosen int64
		available := false
		var bestLoad int64
		for _, cal := range calendars {
			if overlapsAny(cal.busy, start, end) {
				continue
			}
			if !available || cal.load < bestLoad {
				available = true
				chosen = cal.id
				bestLoad = cal.load
			}
		}

		slots = append(slots, domain.TimeSlot{
			ID:           slotID(dateStr, start, chosen),
			Date:         dateStr,
			Time:         start.Format("15:04"),
			Available:    available,
			InstructorID: chosen,
			Start:        start,
			End:          end,
		})
	}
	return slots, nil
}

// Book places a lesson into a free slot. The guard rejects occupied slots up
// front; a concurrent insert loses against the no-overbooking index.
func (s *Service) Book(ctx context.Context, studentID int64, req BookSlotRequest) (*domain.Booking, error) {
	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrValidation
	}
	clock, err := time.Parse("15:04", req.Time)
	if err != nil {
		return nil, ErrValidation
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC)
	if !onGrid(start) {
		return nil, ErrValidation
	}
	if start.Before(time.Now()) {
		return nil, ErrValidation
	}

	instructor, err := s.roster.GetByID(ctx, req.InstructorID)
	if err != nil || instructor.Role != domain.RoleInstructor {
		return nil, ErrUnknownInstructor
	}

	lesson, err := s.lessons.GetLessonTypeByCode(ctx, req.LessonType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrValidation
		}
		return nil, err
	}

	end := start.Add(time.Duration(lesson.Duration) * time.Minute)

	free, err := s.bookings.CheckAvailability(ctx, req.InstructorID, start, end)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, ErrSlotUnavailable
	}

	b := &domain.Booking{
		StudentID:    studentID,
		InstructorID: req.InstructorID,
		LessonTypeID: lesson.ID,
		StartTime:    start,
		EndTime:      end,
		Location:     req.Location,
		Price:        lesson.Price,
		Status:       domain.BookingConfirmed,
		Notes:        req.Notes,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingConfirmed(ctx, studentID, b.ID, b.StartTime)
		_ = s.notifs.NotifyBookingConfirmed(ctx, req.InstructorID, b.ID, b.StartTime)
	}

	return b, nil
}

// Cancel releases a booking. Only a participant may cancel.
func (s *Service) Cancel(ctx context.Context, userID, bookingID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.StudentID != userID && b.InstructorID != userID {
		return nil, ErrForbidden
	}
	if b.Status == domain.BookingCancelled {
		return b, nil
	}

	now := time.Now()
	b.Status = domain.BookingCancelled
	b.CancelledAt = &now

	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		other := b.StudentID
		if userID == b.StudentID {
			other = b.InstructorID
		}
		_ = s.notifs.NotifyBookingCancelled(ctx, other, b.ID, b.StartTime)
	}

	return b, nil
}

func (s *Service) UpcomingForStudent(ctx context.Context, studentID int64) ([]domain.Booking, error) {
	return s.bookings.ListUpcomingByStudent(ctx, studentID, time.Now())
}

func (s *Service) UpcomingForInstructor(ctx context.Context, instructorID int64) ([]domain.Booking, error) {
	return s.bookings.ListUpcomingByInstructor(ctx, instructorID, time.Now())
}

func dayBounds(day time.Time) (time.Time, time.Time) {
	open := time.Date(day.Year(), day.Month(), day.Day(), openingHour, 0, 0, 0, time.UTC)
	close := time.Date(day.Year(), day.Month(), day.Day(), closingHour, 0, 0, 0, time.UTC)
	return open, close
}

func onGrid(t time.Time) bool {
	if t.Hour() < openingHour || t.Hour() >= closingHour {
		return false
	}
	return t.Minute() == 0 || t.Minute() == 30
}

func overlapsAny(busy []repository.BusySlot, start, end time.Time) bool {
	for _, b := range busy {
		if b.Start.Before(end) && b.End.After(start) {
			return true
		}
	}
	return false
}

func slotID(date string, start time.Time, instructorID int64) string {
	return fmt.Sprintf("%s-%s-%d", date, start.Format("15:04"), instructorID)
}

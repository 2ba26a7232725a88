package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"drivingschool/internal/domain"
	"drivingschool/internal/repository"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) Update(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockBookingRepo) CheckAvailability(ctx context.Context, instructorID int64, start, end time.Time) (bool, error) {
	args := m.Called(ctx, instructorID, start, end)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookingRepo) GetBusySlots(ctx context.Context, instructorID int64, from, to time.Time) ([]repository.BusySlot, error) {
	args := m.Called(ctx, instructorID, from, to)
	return args.Get(0).([]repository.BusySlot), args.Error(1)
}

func (m *mockBookingRepo) CountForInstructorBetween(ctx context.Context, instructorID int64, from, to time.Time) (int64, error) {
	args := m.Called(ctx, instructorID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) ListUpcomingByStudent(ctx context.Context, studentID int64, now time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, studentID, now)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) ListUpcomingByInstructor(ctx context.Context, instructorID int64, now time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, instructorID, now)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type mockRoster struct {
	mock.Mock
}

func (m *mockRoster) ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	args := m.Called(ctx, role)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockRoster) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockLessonReader struct {
	mock.Mock
}

func (m *mockLessonReader) GetLessonTypeByCode(ctx context.Context, code string) (*domain.LessonType, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LessonType), args.Error(1)
}

func instructor(id int64) *domain.User {
	return &domain.User{ID: id, Role: domain.RoleInstructor, Status: domain.StatusActive}
}

func busyAt(day string, clock string, minutes int) repository.BusySlot {
	d, _ := time.Parse("2006-01-02", day)
	c, _ := time.Parse("15:04", clock)
	start := time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, time.UTC)
	return repository.BusySlot{Start: start, End: start.Add(time.Duration(minutes) * time.Minute)}
}

func TestDaySlots_FixedGridSize(t *testing.T) {
	bookings := new(mockBookingRepo)
	bookings.On("GetBusySlots", mock.Anything, int64(1), mock.Anything, mock.Anything).
		Return([]repository.BusySlot{}, nil)

	roster := new(mockRoster)
	roster.On("GetByID", mock.Anything, int64(1)).Return(instructor(1), nil)

	svc := NewService(bookings, roster, new(mockLessonReader), nil)

	slots, err := svc.DaySlots(context.Background(), "2026-09-14", 1)
	assert.NoError(t, err)
	assert.Len(t, slots, SlotsPerDay)
	assert.Equal(t, "08:00", slots[0].Time)
	assert.Equal(t, "17:30", slots[len(slots)-1].Time)
}

func TestDaySlots_Deterministic(t *testing.T) {
	busy := []repository.BusySlot{busyAt("2026-09-14", "10:00", 90)}

	bookings := new(mockBookingRepo)
	bookings.On("GetBusySlots", mock.Anything, int64(1), mock.Anything, mock.Anything).
		Return(busy, nil)

	roster := new(mockRoster)
	roster.On("GetByID", mock.Anything, int64(1)).Return(instructor(1), nil)

	svc := NewService(bookings, roster, new(mockLessonReader), nil)

	first, err := svc.DaySlots(context.Background(), "2026-09-14", 1)
	assert.NoError(t, err)
	second, err := svc.DaySlots(context.Background(), "2026-09-14", 1)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDaySlots_BusyRangeBlocksCoveredSlots(t *testing.T) {
	// a 10:00 lesson of 90 minutes blocks 10:00, 10:30 and 11:00
	busy := []repository.BusySlot{busyAt("2026-09-14", "10:00", 90)}

	bookings := new(mockBookingRepo)
	bookings.On("GetBusySlots", mock.Anything, int64(1), mock.Anything, mock.Anything).
		Return(busy, nil)

	roster := new(mockRoster)
	roster.On("GetByID", mock.Anything, int64(1)).Return(instructor(1), nil)

	svc := NewService(bookings, roster, new(mockLessonReader), nil)

	slots, err := svc.DaySlots(context.Background(), "2026-09-14", 1)
	assert.NoError(t, err)

	byTime := make(map[string]domain.TimeSlot, len(slots))
	for _, s := range slots {
		byTime[s.Time] = s
	}

	assert.True(t, byTime["09:30"].Available)
	assert.False(t, byTime["10:00"].Available)
	assert.False(t, byTime["10:30"].Available)
	assert.False(t, byTime["11:00"].Available)
	assert.True(t, byTime["11:30"].Available)
}

func TestDaySlots_RosterPicksLeastLoadedInstructor(t *testing.T) {
	bookings := new(mockBookingRepo)
	bookings.On("GetBusySlots", mock.Anything, int64(1), mock.Anything, mock.Anything).
		Return([]repository.BusySlot{}, nil)
	bookings.On("GetBusySlots", mock.Anything, int64(2), mock.Anything, mock.Anything).
		Return([]repository.BusySlot{}, nil)
	bookings.On("CountForInstructorBetween", mock.Anything, int64(1), mock.Anything, mock.Anything).
		Return(int64(5), nil)
	bookings.On("CountForInstructorBetween", mock.Anything, int64(2), mock.Anything, mock.Anything).
		Return(int64(1), nil)

	roster := new(mockRoster)
	roster.On("ListByRole", mock.Anything, domain.RoleInstructor).
		Return([]domain.User{*instructor(1), *instructor(2)}, nil)

	svc := NewService(bookings, roster, new(mockLessonReader), nil)

	slots, err := svc.DaySlots(context.Background(), "2026-09-14", 0)
	assert.NoError(t, err)
	assert.Len(t, slots, SlotsPerDay)
	for _, s := range slots {
		assert.True(t, s.Available)
		assert.Equal(t, int64(2), s.InstructorID)
	}
}

func TestDaySlots_BadDate(t *testing.T) {
	svc := NewService(new(mockBookingRepo), new(mockRoster), new(mockLessonReader), nil)

	_, err := svc.DaySlots(context.Background(), "14/09/2026", 1)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBook_OccupiedSlot(t *testing.T) {
	roster := new(mockRoster)
	roster.On("GetByID", mock.Anything, int64(1)).Return(instructor(1), nil)

	lessons := new(mockLessonReader)
	lessons.On("GetLessonTypeByCode", mock.Anything, "practical").
		Return(&domain.LessonType{ID: 2, Code: "practical", Duration: 90, Price: 45}, nil)

	bookings := new(mockBookingRepo)
	bookings.On("CheckAvailability", mock.Anything, int64(1), mock.Anything, mock.Anything).
		Return(false, nil)

	svc := NewService(bookings, roster, lessons, nil)

	date := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	_, err := svc.Book(context.Background(), 10, BookSlotRequest{
		Date: date, Time: "10:00", InstructorID: 1, LessonType: "practical",
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBook_OffGridTime(t *testing.T) {
	svc := NewService(new(mockBookingRepo), new(mockRoster), new(mockLessonReader), nil)

	date := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	_, err := svc.Book(context.Background(), 10, BookSlotRequest{
		Date: date, Time: "10:15", InstructorID: 1, LessonType: "practical",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBook_PastSlot(t *testing.T) {
	svc := NewService(new(mockBookingRepo), new(mockRoster), new(mockLessonReader), nil)

	_, err := svc.Book(context.Background(), 10, BookSlotRequest{
		Date: "2020-01-06", Time: "10:00", InstructorID: 1, LessonType: "practical",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBook_Success(t *testing.T) {
	roster := new(mockRoster)
	roster.On("GetByID", mock.Anything, int64(1)).Return(instructor(1), nil)

	lessons := new(mockLessonReader)
	lessons.On("GetLessonTypeByCode", mock.Anything, "practical").
		Return(&domain.LessonType{ID: 2, Code: "practical", Duration: 90, Price: 45}, nil)

	bookings := new(mockBookingRepo)
	bookings.On("CheckAvailability", mock.Anything, int64(1), mock.Anything, mock.Anything).
		Return(true, nil)
	bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.StudentID == 10 &&
			b.InstructorID == 1 &&
			b.Status == domain.BookingConfirmed &&
			b.EndTime.Sub(b.StartTime) == 90*time.Minute &&
			b.Price == 45
	})).Return(nil)

	svc := NewService(bookings, roster, lessons, nil)

	date := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	b, err := svc.Book(context.Background(), 10, BookSlotRequest{
		Date: date, Time: "10:00", InstructorID: 1, LessonType: "practical",
	})
	assert.NoError(t, err)
	assert.NotNil(t, b)
	bookings.AssertExpectations(t)
}

func TestCancel_OnlyParticipants(t *testing.T) {
	b := &domain.Booking{ID: 5, StudentID: 10, InstructorID: 1, Status: domain.BookingConfirmed}

	bookings := new(mockBookingRepo)
	bookings.On("GetByID", mock.Anything, int64(5)).Return(b, nil)

	svc := NewService(bookings, new(mockRoster), new(mockLessonReader), nil)

	_, err := svc.Cancel(context.Background(), 99, 5)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCancel_Idempotent(t *testing.T) {
	cancelled := time.Now()
	b := &domain.Booking{ID: 5, StudentID: 10, InstructorID: 1, Status: domain.BookingCancelled, CancelledAt: &cancelled}

	bookings := new(mockBookingRepo)
	bookings.On("GetByID", mock.Anything, int64(5)).Return(b, nil)

	svc := NewService(bookings, new(mockRoster), new(mockLessonReader), nil)

	got, err := svc.Cancel(context.Background(), 10, 5)
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, got.Status)
	bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

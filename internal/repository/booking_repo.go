package repository

import (
	"context"
	"time"

	"drivingschool/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID           int64      `gorm:"column:id;primaryKey"`
	StudentID    int64      `gorm:"column:student_id"`
	InstructorID int64      `gorm:"column:instructor_id;index:idx_instructor_slot,unique,where:status <> 'cancelled'"`
	LessonTypeID int64      `gorm:"column:lesson_type_id"`
	StartTime    time.Time  `gorm:"column:start_time;index:idx_instructor_slot,unique,where:status <> 'cancelled'"`
	EndTime      time.Time  `gorm:"column:end_time"`
	Location     *string    `gorm:"column:location"`
	Price        float64    `gorm:"column:price"`
	Status       string     `gorm:"column:status"`
	Notes        *string    `gorm:"column:notes"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
	CancelledAt  *time.Time `gorm:"column:cancelled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

// BusySlot is an occupied interval of an instructor's day.
type BusySlot struct {
	Start time.Time
	End   time.Time
}

func toDomainBooking(m bookingModel) *domain.Booking {
	var location, notes string
	if m.Location != nil {
		location = *m.Location
	}
	if m.Notes != nil {
		notes = *m.Notes
	}

	return &domain.Booking{
		ID:           m.ID,
		StudentID:    m.StudentID,
		InstructorID: m.InstructorID,
		LessonTypeID: m.LessonTypeID,
		StartTime:    m.StartTime,
		EndTime:      m.EndTime,
		Location:     location,
		Price:        m.Price,
		Status:       domain.BookingStatus(m.Status),
		Notes:        notes,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		CancelledAt:  m.CancelledAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var location, notes *string
	if b.Location != "" {
		v := b.Location
		location = &v
	}
	if b.Notes != "" {
		v := b.Notes
		notes = &v
	}

	return bookingModel{
		ID:           b.ID,
		StudentID:    b.StudentID,
		InstructorID: b.InstructorID,
		LessonTypeID: b.LessonTypeID,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		Location:     location,
		Price:        b.Price,
		Status:       string(b.Status),
		Notes:        notes,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
		CancelledAt:  b.CancelledAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// CheckAvailability reports whether the interval is free for the instructor.
// Cancelled bookings do not block.
func (r *BookingRepository) CheckAvailability(ctx context.Context, instructorID int64, start, end time.Time) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("instructor_id = ?", instructorID).
		Where("status <> ?", string(domain.BookingCancelled)).
		Where("start_time < ? AND end_time > ?", end, start).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt == 0, nil
}

// GetBusySlots returns the occupied intervals of one instructor inside [from, to).
func (r *BookingRepository) GetBusySlots(ctx context.Context, instructorID int64, from, to time.Time) ([]BusySlot, error) {
	var models []bookingModel
	tx := r.db.WithContext(ctx).
		Where("instructor_id = ?", instructorID).
		Where("status <> ?", string(domain.BookingCancelled)).
		Where("start_time < ? AND end_time > ?", to, from).
		Order("start_time").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]BusySlot, 0, len(models))
	for _, m := range models {
		out = append(out, BusySlot{Start: m.StartTime, End: m.EndTime})
	}
	return out, nil
}

// CountForInstructorBetween counts non-cancelled bookings of one instructor
// inside [from, to). The scheduler uses it to pick the least-loaded instructor.
func (r *BookingRepository) CountForInstructorBetween(ctx context.Context, instructorID int64, from, to time.Time) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("instructor_id = ?", instructorID).
		Where("status <> ?", string(domain.BookingCancelled)).
		Where("start_time >= ? AND start_time < ?", from, to).
		Count(&cnt)
	return cnt, tx.Error
}

func (r *BookingRepository) ListUpcomingByStudent(ctx context.Context, studentID int64, now time.Time) ([]domain.Booking, error) {
	var models []bookingModel
	tx := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Where("status <> ?", string(domain.BookingCancelled)).
		Where("start_time >= ?", now).
		Order("start_time").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) ListUpcomingByInstructor(ctx context.Context, instructorID int64, now time.Time) ([]domain.Booking, error) {
	var models []bookingModel
	tx := r.db.WithContext(ctx).
		Where("instructor_id = ?", instructorID).
		Where("status <> ?", string(domain.BookingCancelled)).
		Where("start_time >= ?", now).
		Order("start_time").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	return r.db.WithContext(ctx).Save(&m).Error
}

func (r *BookingRepository) CountBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("status <> ?", string(domain.BookingCancelled)).
		Where("start_time >= ? AND start_time < ?", from, to).
		Count(&cnt)
	return cnt, tx.Error
}

func (r *BookingRepository) CountByStudent(ctx context.Context, studentID int64, status domain.BookingStatus) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("student_id = ? AND status = ?", studentID, string(status)).
		Count(&cnt)
	return cnt, tx.Error
}

package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

type Booking struct {
	ID           int64         `json:"id"`
	StudentID    int64         `json:"student_id" validate:"required"`
	InstructorID int64         `json:"instructor_id" validate:"required"`
	LessonTypeID int64         `json:"lesson_type_id" validate:"required"`
	StartTime    time.Time     `json:"start_time" validate:"required"`
	EndTime      time.Time     `json:"end_time" validate:"required"`
	Location     string        `json:"location,omitempty"`
	Price        float64       `json:"price" validate:"gte=0"`
	Status       BookingStatus `json:"status"`
	Notes        string        `json:"notes,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	CancelledAt  *time.Time    `json:"cancelled_at,omitempty"`
}

// TimeSlot is one half-hour cell of an instructor's day grid. Availability is
// derived from stored bookings, never randomized.
type TimeSlot struct {
	ID           string    `json:"id"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Available    bool      `json:"available"`
	InstructorID int64     `json:"instructor_id,omitempty"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
}

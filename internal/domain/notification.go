package domain

import "time"

type NotificationType string

const (
	NotifBookingConfirmed   NotificationType = "booking_confirmed"
	NotifBookingCancelled   NotificationType = "booking_cancelled"
	NotifLessonReminder     NotificationType = "lesson_reminder"
	NotifEnrollmentReceived NotificationType = "enrollment_received"
	NotifNewMessage         NotificationType = "new_message"
)

type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message,omitempty"`
	IsRead    bool             `json:"is_read"`
	ActionURL string           `json:"action_url,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

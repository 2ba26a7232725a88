package dashboard

import "drivingschool/internal/domain"

type AdminOverview struct {
	Students             int64 `json:"students"`
	Instructors          int64 `json:"instructors"`
	LessonsToday         int64 `json:"lessons_today"`
	SubmittedEnrollments int64 `json:"submitted_enrollments"`
}

type InstructorOverview struct {
	LessonsToday    int64            `json:"lessons_today"`
	LessonsThisWeek int64            `json:"lessons_this_week"`
	UpcomingLessons []domain.Booking `json:"upcoming_lessons"`
	UnreadMessages  int64            `json:"unread_messages"`
}

type StudentOverview struct {
	UpcomingLessons     []domain.Booking `json:"upcoming_lessons"`
	CompletedLessons    int64            `json:"completed_lessons"`
	UnreadMessages      int64            `json:"unread_messages"`
	UnreadNotifications int64            `json:"unread_notifications"`
}

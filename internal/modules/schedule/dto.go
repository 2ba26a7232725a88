package schedule

type BookSlotRequest struct {
	InstructorID int64  `json:"instructor_id" binding:"required"`
	LessonType   string `json:"lesson_type" binding:"required"`
	Date         string `json:"date" binding:"required"`
	Time         string `json:"time" binding:"required"`
	Location     string `json:"location"`
	Notes        string `json:"notes"`
}

type InstructorView struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar,omitempty"`
}

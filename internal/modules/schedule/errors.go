package schedule

import "errors"

var (
	ErrValidation        = errors.New("validation failed")
	ErrSlotUnavailable   = errors.New("slot is not available")
	ErrSlotTaken         = errors.New("slot was booked concurrently")
	ErrUnknownInstructor = errors.New("unknown instructor")
	ErrForbidden         = errors.New("forbidden")
)

package enrollment

import "errors"

var (
	ErrAlreadySubmitted   = errors.New("enrollment already submitted")
	ErrNotOnFinalStep     = errors.New("enrollment is not on the payment step")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidDocument    = errors.New("invalid document kind")
)

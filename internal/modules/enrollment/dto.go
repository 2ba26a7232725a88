package enrollment

import "drivingschool/internal/domain"

// UpdateEnrollmentRequest merges field edits into the draft. Pointer fields
// distinguish "not sent" from "cleared".
type UpdateEnrollmentRequest struct {
	FirstName       *string `json:"first_name,omitempty"`
	LastName        *string `json:"last_name,omitempty"`
	Email           *string `json:"email,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	BirthDate       *string `json:"birth_date,omitempty"`
	Address         *string `json:"address,omitempty"`
	Password        *string `json:"password,omitempty"`
	ConfirmPassword *string `json:"confirm_password,omitempty"`
	LicenseType     *string `json:"license_type,omitempty"`
	TrainingPackage *string `json:"training_package,omitempty"`
	PaymentMethod   *string `json:"payment_method,omitempty"`
	TermsAccepted   *bool   `json:"terms_accepted,omitempty"`
}

// EnrollmentView is the wizard state handed back to the client.
type EnrollmentView struct {
	Reference   string                  `json:"reference"`
	Step        int                     `json:"step"`
	Status      domain.EnrollmentStatus `json:"status"`
	Form        *domain.Enrollment      `json:"form"`
	FieldErrors FieldErrors             `json:"field_errors,omitempty"`
}

func view(e *domain.Enrollment, errs FieldErrors) EnrollmentView {
	return EnrollmentView{
		Reference:   e.Reference,
		Step:        e.Step,
		Status:      e.Status,
		Form:        e,
		FieldErrors: errs,
	}
}

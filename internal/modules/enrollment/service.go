package enrollment

import (
	"context"
	"strings"
	"time"

	"drivingschool/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service drives enrollment drafts through the wizard and turns a submitted
// draft into a student account.
type Service struct {
	enrollments EnrollmentRepositoryInterface
	users       UserWriter
	packages    PackageCatalog
	notifs      NotificationSender
}

func NewService(
	enrollments EnrollmentRepositoryInterface,
	users UserWriter,
	packages PackageCatalog,
	notifs NotificationSender,
) *Service {
	return &Service{
		enrollments: enrollments,
		users:       users,
		packages:    packages,
		notifs:      notifs,
	}
}

func (s *Service) Start(ctx context.Context) (*domain.Enrollment, error) {
	e := &domain.Enrollment{
		Reference: uuid.NewString(),
		Step:      StepPersonal,
		Status:    domain.EnrollmentDraft,
	}
	if err := s.enrollments.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) Get(ctx context.Context, ref string) (*domain.Enrollment, error) {
	return s.enrollments.GetByReference(ctx, ref)
}

func (s *Service) UpdateFields(ctx context.Context, ref string, req UpdateEnrollmentRequest) (*domain.Enrollment, error) {
	e, err := s.enrollments.GetByReference(ctx, ref)
	if err != nil {
		return nil, err
	}
	if e.Status == domain.EnrollmentSubmitted {
		return nil, ErrAlreadySubmitted
	}

	applyUpdate(e, req)

	if err := s.enrollments.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Next validates the current step and advances on success. The returned
// field errors are non-nil exactly when the step was rejected.
func (s *Service) Next(ctx context.Context, ref string) (*domain.Enrollment, FieldErrors, error) {
	e, err := s.enrollments.GetByReference(ctx, ref)
	if err != nil {
		return nil, nil, err
	}
	if e.Status == domain.EnrollmentSubmitted {
		return nil, nil, ErrAlreadySubmitted
	}

	w, err := s.wizard(ctx)
	if err != nil {
		return nil, nil, err
	}

	if errs := w.Next(e); len(errs) > 0 {
		return e, errs, nil
	}

	if err := s.enrollments.Update(ctx, e); err != nil {
		return nil, nil, err
	}
	return e, nil, nil
}

func (s *Service) Previous(ctx context.Context, ref string) (*domain.Enrollment, error) {
	e, err := s.enrollments.GetByReference(ctx, ref)
	if err != nil {
		return nil, err
	}
	if e.Status == domain.EnrollmentSubmitted {
		return nil, ErrAlreadySubmitted
	}

	w, err := s.wizard(ctx)
	if err != nil {
		return nil, err
	}
	w.Previous(e)

	if err := s.enrollments.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// AttachDocument records a file reference in one of the four document slots.
// Only presence matters; content is never inspected.
func (s *Service) AttachDocument(ctx context.Context, ref string, kind domain.DocumentKind, fileRef string) (*domain.Enrollment, error) {
	if !kind.Valid() {
		return nil, ErrInvalidDocument
	}

	e, err := s.enrollments.GetByReference(ctx, ref)
	if err != nil {
		return nil, err
	}
	if e.Status == domain.EnrollmentSubmitted {
		return nil, ErrAlreadySubmitted
	}

	e.SetDocument(kind, fileRef)

	if err := s.enrollments.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Submit finishes the wizard: the whole form is validated once more, the
// student account is created and the draft flips to submitted. The form
// itself is never exposed again.
func (s *Service) Submit(ctx context.Context, ref string) (*domain.Enrollment, FieldErrors, error) {
	e, err := s.enrollments.GetByReference(ctx, ref)
	if err != nil {
		return nil, nil, err
	}
	if e.Status == domain.EnrollmentSubmitted {
		return nil, nil, ErrAlreadySubmitted
	}
	if e.Step != StepPayment {
		return nil, nil, ErrNotOnFinalStep
	}

	w, err := s.wizard(ctx)
	if err != nil {
		return nil, nil, err
	}
	if errs := w.ValidateAll(e); len(errs) > 0 {
		return e, errs, nil
	}

	email := strings.ToLower(strings.TrimSpace(e.Email))
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(e.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleStudent,
		Status:       domain.StatusActive,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Phone:        e.Phone,
		Address:      e.Address,
	}
	if bd, err := time.Parse("2006-01-02", e.BirthDate); err == nil {
		user.BirthDate = &bd
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	now := time.Now()
	e.Status = domain.EnrollmentSubmitted
	e.SubmittedAt = &now
	// the plaintext credentials have served their purpose
	e.Password = ""
	e.ConfirmPassword = ""

	if err := s.enrollments.Update(ctx, e); err != nil {
		return nil, nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyEnrollmentReceived(ctx, user.ID, e.Reference)
	}

	return e, nil, nil
}

func (s *Service) wizard(ctx context.Context) (*Wizard, error) {
	packages, err := s.packages.ListTrainingPackages(ctx)
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(packages))
	for _, p := range packages {
		codes = append(codes, p.Code)
	}
	return NewWizard(codes), nil
}

func applyUpdate(e *domain.Enrollment, req UpdateEnrollmentRequest) {
	if req.FirstName != nil {
		e.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		e.LastName = *req.LastName
	}
	if req.Email != nil {
		e.Email = *req.Email
	}
	if req.Phone != nil {
		e.Phone = *req.Phone
	}
	if req.BirthDate != nil {
		e.BirthDate = *req.BirthDate
	}
	if req.Address != nil {
		e.Address = *req.Address
	}
	if req.Password != nil {
		e.Password = *req.Password
	}
	if req.ConfirmPassword != nil {
		e.ConfirmPassword = *req.ConfirmPassword
	}
	if req.LicenseType != nil {
		e.LicenseType = domain.LicenseType(*req.LicenseType)
	}
	if req.TrainingPackage != nil {
		e.TrainingPackage = *req.TrainingPackage
	}
	if req.PaymentMethod != nil {
		e.PaymentMethod = domain.PaymentMethod(*req.PaymentMethod)
	}
	if req.TermsAccepted != nil {
		e.TermsAccepted = *req.TermsAccepted
	}
}

package enrollment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"drivingschool/internal/domain"
)

type mockEnrollmentRepo struct {
	mock.Mock
}

func (m *mockEnrollmentRepo) Create(ctx context.Context, e *domain.Enrollment) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *mockEnrollmentRepo) GetByReference(ctx context.Context, ref string) (*domain.Enrollment, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Enrollment), args.Error(1)
}

func (m *mockEnrollmentRepo) Update(ctx context.Context, e *domain.Enrollment) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

type mockUserWriter struct {
	mock.Mock
}

func (m *mockUserWriter) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserWriter) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type mockPackageCatalog struct {
	mock.Mock
}

func (m *mockPackageCatalog) ListTrainingPackages(ctx context.Context) ([]domain.TrainingPackage, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.TrainingPackage), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyEnrollmentReceived(ctx context.Context, userID int64, reference string) error {
	args := m.Called(ctx, userID, reference)
	return args.Error(0)
}

func stubPackages() []domain.TrainingPackage {
	return []domain.TrainingPackage{
		{Code: "classique", Price: 890},
		{Code: "intensive", Price: 1190, Popular: true},
		{Code: "premium", Price: 1490},
	}
}

func submittableEnrollment() *domain.Enrollment {
	return &domain.Enrollment{
		ID:              1,
		Reference:       "ref-123",
		Step:            StepPayment,
		Status:          domain.EnrollmentDraft,
		FirstName:       "Lucas",
		LastName:        "Bernard",
		Email:           "Lucas.Bernard@example.com",
		Phone:           "0612345678",
		BirthDate:       "2004-03-15",
		Address:         "12 rue de la République, Lyon",
		Password:        "Secret123!",
		ConfirmPassword: "Secret123!",
		LicenseType:     domain.LicenseB,
		TrainingPackage: "classique",
		IdentityDoc:     "/static/enrollment/cni.pdf",
		AddressProofDoc: "/static/enrollment/edf.pdf",
		PhotoDoc:        "/static/enrollment/photo.jpg",
		RoadSafetyDoc:   "/static/enrollment/assr2.pdf",
		PaymentMethod:   domain.PaymentCard,
		TermsAccepted:   true,
	}
}

func TestStart_CreatesDraftOnFirstStep(t *testing.T) {
	repo := new(mockEnrollmentRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.Enrollment) bool {
		return e.Step == StepPersonal && e.Status == domain.EnrollmentDraft && e.Reference != ""
	})).Return(nil)

	svc := NewService(repo, new(mockUserWriter), new(mockPackageCatalog), nil)

	e, err := svc.Start(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, StepPersonal, e.Step)
	repo.AssertExpectations(t)
}

func TestNext_ValidationFailureKeepsDraft(t *testing.T) {
	e := &domain.Enrollment{Reference: "ref-123", Step: StepPersonal, Status: domain.EnrollmentDraft}

	repo := new(mockEnrollmentRepo)
	repo.On("GetByReference", mock.Anything, "ref-123").Return(e, nil)

	packages := new(mockPackageCatalog)
	packages.On("ListTrainingPackages", mock.Anything).Return(stubPackages(), nil)

	svc := NewService(repo, new(mockUserWriter), packages, nil)

	got, fieldErrs, err := svc.Next(context.Background(), "ref-123")
	assert.NoError(t, err)
	assert.NotEmpty(t, fieldErrs)
	assert.Equal(t, StepPersonal, got.Step)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSubmit_CreatesStudentAccount(t *testing.T) {
	e := submittableEnrollment()

	repo := new(mockEnrollmentRepo)
	repo.On("GetByReference", mock.Anything, "ref-123").Return(e, nil)
	repo.On("Update", mock.Anything, e).Return(nil)

	packages := new(mockPackageCatalog)
	packages.On("ListTrainingPackages", mock.Anything).Return(stubPackages(), nil)

	users := new(mockUserWriter)
	users.On("ExistsByEmail", mock.Anything, "lucas.bernard@example.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "lucas.bernard@example.com" &&
			u.Role == domain.RoleStudent &&
			u.Status == domain.StatusActive &&
			u.PasswordHash != "" &&
			u.PasswordHash != "Secret123!"
	})).Return(nil)

	notifs := new(mockNotifier)
	notifs.On("NotifyEnrollmentReceived", mock.Anything, mock.Anything, "ref-123").Return(nil)

	svc := NewService(repo, users, packages, notifs)

	got, fieldErrs, err := svc.Submit(context.Background(), "ref-123")
	assert.NoError(t, err)
	assert.Empty(t, fieldErrs)
	assert.Equal(t, domain.EnrollmentSubmitted, got.Status)
	assert.NotNil(t, got.SubmittedAt)
	assert.Empty(t, got.Password)
	assert.Empty(t, got.ConfirmPassword)
	users.AssertExpectations(t)
}

func TestSubmit_TamperedDraftIsRevalidated(t *testing.T) {
	// Reach the payment step legitimately, then edit the draft back into an
	// invalid state before submitting.
	e := submittableEnrollment()
	e.Password = "abc"
	e.ConfirmPassword = "abc"
	e.Email = "pas-un-email"

	repo := new(mockEnrollmentRepo)
	repo.On("GetByReference", mock.Anything, "ref-123").Return(e, nil)

	packages := new(mockPackageCatalog)
	packages.On("ListTrainingPackages", mock.Anything).Return(stubPackages(), nil)

	users := new(mockUserWriter)

	svc := NewService(repo, users, packages, nil)

	got, fieldErrs, err := svc.Submit(context.Background(), "ref-123")
	assert.NoError(t, err)
	assert.Contains(t, fieldErrs, "password")
	assert.Contains(t, fieldErrs, "email")
	assert.Equal(t, domain.EnrollmentDraft, got.Status)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSubmit_DuplicateEmail(t *testing.T) {
	e := submittableEnrollment()

	repo := new(mockEnrollmentRepo)
	repo.On("GetByReference", mock.Anything, "ref-123").Return(e, nil)

	packages := new(mockPackageCatalog)
	packages.On("ListTrainingPackages", mock.Anything).Return(stubPackages(), nil)

	users := new(mockUserWriter)
	users.On("ExistsByEmail", mock.Anything, "lucas.bernard@example.com").Return(true, nil)

	svc := NewService(repo, users, packages, nil)

	_, _, err := svc.Submit(context.Background(), "ref-123")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmit_RejectedBeforeFinalStep(t *testing.T) {
	e := submittableEnrollment()
	e.Step = StepDocuments

	repo := new(mockEnrollmentRepo)
	repo.On("GetByReference", mock.Anything, "ref-123").Return(e, nil)

	svc := NewService(repo, new(mockUserWriter), new(mockPackageCatalog), nil)

	_, _, err := svc.Submit(context.Background(), "ref-123")
	assert.ErrorIs(t, err, ErrNotOnFinalStep)
}

func TestSubmit_AlreadySubmitted(t *testing.T) {
	e := submittableEnrollment()
	e.Status = domain.EnrollmentSubmitted

	repo := new(mockEnrollmentRepo)
	repo.On("GetByReference", mock.Anything, "ref-123").Return(e, nil)

	svc := NewService(repo, new(mockUserWriter), new(mockPackageCatalog), nil)

	_, _, err := svc.Submit(context.Background(), "ref-123")
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
}

func TestUpdateFields_SubmittedDraftIsFrozen(t *testing.T) {
	e := submittableEnrollment()
	e.Status = domain.EnrollmentSubmitted

	repo := new(mockEnrollmentRepo)
	repo.On("GetByReference", mock.Anything, "ref-123").Return(e, nil)

	svc := NewService(repo, new(mockUserWriter), new(mockPackageCatalog), nil)

	name := "Autre"
	_, err := svc.UpdateFields(context.Background(), "ref-123", UpdateEnrollmentRequest{FirstName: &name})
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
}

func TestAttachDocument_RejectsUnknownKind(t *testing.T) {
	svc := NewService(new(mockEnrollmentRepo), new(mockUserWriter), new(mockPackageCatalog), nil)

	_, err := svc.AttachDocument(context.Background(), "ref-123", domain.DocumentKind("diploma"), "/x.pdf")
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

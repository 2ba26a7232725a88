package enrollment

import (
	"context"

	"drivingschool/internal/domain"
)

type EnrollmentRepositoryInterface interface {
	Create(ctx context.Context, e *domain.Enrollment) error
	GetByReference(ctx context.Context, ref string) (*domain.Enrollment, error)
	Update(ctx context.Context, e *domain.Enrollment) error
}

// UserWriter creates the student account on submission.
type UserWriter interface {
	Create(ctx context.Context, u *domain.User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type PackageCatalog interface {
	ListTrainingPackages(ctx context.Context) ([]domain.TrainingPackage, error)
}

// NotificationSender is the seam through which the wizard tells the inbox
// about a received enrollment. Nil-safe at the call site.
type NotificationSender interface {
	NotifyEnrollmentReceived(ctx context.Context, userID int64, reference string) error
}

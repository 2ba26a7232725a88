package repository

import (
	"context"
	"time"

	"drivingschool/internal/domain"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

type enrollmentModel struct {
	ID        int64  `gorm:"column:id;primaryKey"`
	Reference string `gorm:"column:reference;uniqueIndex"`
	Step      int    `gorm:"column:step"`
	Status    string `gorm:"column:status"`

	FirstName       string `gorm:"column:first_name"`
	LastName        string `gorm:"column:last_name"`
	Email           string `gorm:"column:email"`
	Phone           string `gorm:"column:phone"`
	BirthDate       string `gorm:"column:birth_date"`
	Address         string `gorm:"column:address"`
	Password        string `gorm:"column:password"`
	ConfirmPassword string `gorm:"column:confirm_password"`

	LicenseType     string `gorm:"column:license_type"`
	TrainingPackage string `gorm:"column:training_package"`

	IdentityDoc     string `gorm:"column:identity_doc"`
	AddressProofDoc string `gorm:"column:address_proof_doc"`
	PhotoDoc        string `gorm:"column:photo_doc"`
	RoadSafetyDoc   string `gorm:"column:road_safety_doc"`

	PaymentMethod string `gorm:"column:payment_method"`
	TermsAccepted bool   `gorm:"column:terms_accepted"`

	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	SubmittedAt *time.Time `gorm:"column:submitted_at"`
}

func (enrollmentModel) TableName() string { return "enrollments" }

func toDomainEnrollment(m enrollmentModel) *domain.Enrollment {
	return &domain.Enrollment{
		ID:              m.ID,
		Reference:       m.Reference,
		Step:            m.Step,
		Status:          domain.EnrollmentStatus(m.Status),
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		Email:           m.Email,
		Phone:           m.Phone,
		BirthDate:       m.BirthDate,
		Address:         m.Address,
		Password:        m.Password,
		ConfirmPassword: m.ConfirmPassword,
		LicenseType:     domain.LicenseType(m.LicenseType),
		TrainingPackage: m.TrainingPackage,
		IdentityDoc:     m.IdentityDoc,
		AddressProofDoc: m.AddressProofDoc,
		PhotoDoc:        m.PhotoDoc,
		RoadSafetyDoc:   m.RoadSafetyDoc,
		PaymentMethod:   domain.PaymentMethod(m.PaymentMethod),
		TermsAccepted:   m.TermsAccepted,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		SubmittedAt:     m.SubmittedAt,
	}
}

func toEnrollmentModel(e *domain.Enrollment) enrollmentModel {
	return enrollmentModel{
		ID:              e.ID,
		Reference:       e.Reference,
		Step:            e.Step,
		Status:          string(e.Status),
		FirstName:       e.FirstName,
		LastName:        e.LastName,
		Email:           e.Email,
		Phone:           e.Phone,
		BirthDate:       e.BirthDate,
		Address:         e.Address,
		Password:        e.Password,
		ConfirmPassword: e.ConfirmPassword,
		LicenseType:     string(e.LicenseType),
		TrainingPackage: e.TrainingPackage,
		IdentityDoc:     e.IdentityDoc,
		AddressProofDoc: e.AddressProofDoc,
		PhotoDoc:        e.PhotoDoc,
		RoadSafetyDoc:   e.RoadSafetyDoc,
		PaymentMethod:   string(e.PaymentMethod),
		TermsAccepted:   e.TermsAccepted,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
		SubmittedAt:     e.SubmittedAt,
	}
}

func (r *EnrollmentRepository) Create(ctx context.Context, e *domain.Enrollment) error {
	m := toEnrollmentModel(e)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*e = *toDomainEnrollment(m)
	return nil
}

func (r *EnrollmentRepository) GetByReference(ctx context.Context, ref string) (*domain.Enrollment, error) {
	var m enrollmentModel
	tx := r.db.WithContext(ctx).Where("reference = ?", ref).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainEnrollment(m), nil
}

func (r *EnrollmentRepository) Update(ctx context.Context, e *domain.Enrollment) error {
	m := toEnrollmentModel(e)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*e = *toDomainEnrollment(m)
	return nil
}

func (r *EnrollmentRepository) CountSubmitted(ctx context.Context) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&enrollmentModel{}).
		Where("status = ?", string(domain.EnrollmentSubmitted)).
		Count(&cnt)
	return cnt, tx.Error
}

package repository

import (
	"context"
	"time"

	"drivingschool/internal/domain"

	"gorm.io/gorm"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

type lessonTypeModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Code        string    `gorm:"column:code;uniqueIndex"`
	Name        string    `gorm:"column:name"`
	Description *string   `gorm:"column:description"`
	Duration    int       `gorm:"column:duration_minutes"`
	Price       float64   `gorm:"column:price"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (lessonTypeModel) TableName() string { return "lesson_types" }

type trainingPackageModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Code        string    `gorm:"column:code;uniqueIndex"`
	Name        string    `gorm:"column:name"`
	Description *string   `gorm:"column:description"`
	Price       float64   `gorm:"column:price"`
	Features    string    `gorm:"column:features;type:text"`
	Popular     bool      `gorm:"column:popular"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (trainingPackageModel) TableName() string { return "training_packages" }

func toDomainLessonType(m lessonTypeModel) *domain.LessonType {
	var desc string
	if m.Description != nil {
		desc = *m.Description
	}
	return &domain.LessonType{
		ID:          m.ID,
		Code:        m.Code,
		Name:        m.Name,
		Description: desc,
		Duration:    m.Duration,
		Price:       m.Price,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *CatalogRepository) ListLessonTypes(ctx context.Context) ([]domain.LessonType, error) {
	var models []lessonTypeModel
	tx := r.db.WithContext(ctx).Order("id").Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.LessonType, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainLessonType(m))
	}
	return out, nil
}

func (r *CatalogRepository) GetLessonTypeByCode(ctx context.Context, code string) (*domain.LessonType, error) {
	var m lessonTypeModel
	tx := r.db.WithContext(ctx).Where("code = ?", code).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainLessonType(m), nil
}

func (r *CatalogRepository) ListTrainingPackages(ctx context.Context) ([]domain.TrainingPackage, error) {
	var models []trainingPackageModel
	tx := r.db.WithContext(ctx).Order("price").Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.TrainingPackage, 0, len(models))
	for _, m := range models {
		var desc string
		if m.Description != nil {
			desc = *m.Description
		}
		out = append(out, domain.TrainingPackage{
			ID:          m.ID,
			Code:        m.Code,
			Name:        m.Name,
			Description: desc,
			Price:       m.Price,
			Features:    splitFeatures(m.Features),
			Popular:     m.Popular,
			CreatedAt:   m.CreatedAt,
			UpdatedAt:   m.UpdatedAt,
		})
	}
	return out, nil
}

func (r *CatalogRepository) CreateLessonType(ctx context.Context, lt *domain.LessonType) error {
	m := lessonTypeModel{
		Code:     lt.Code,
		Name:     lt.Name,
		Duration: lt.Duration,
		Price:    lt.Price,
	}
	if lt.Description != "" {
		v := lt.Description
		m.Description = &v
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	lt.ID = m.ID
	return nil
}

func (r *CatalogRepository) ExistsLessonType(ctx context.Context, code string) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&lessonTypeModel{}).
		Where("code = ?", code).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

func (r *CatalogRepository) CreateTrainingPackage(ctx context.Context, tp *domain.TrainingPackage) error {
	m := trainingPackageModel{
		Code:     tp.Code,
		Name:     tp.Name,
		Price:    tp.Price,
		Features: joinFeatures(tp.Features),
		Popular:  tp.Popular,
	}
	if tp.Description != "" {
		v := tp.Description
		m.Description = &v
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	tp.ID = m.ID
	return nil
}

func (r *CatalogRepository) ExistsTrainingPackage(ctx context.Context, code string) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&trainingPackageModel{}).
		Where("code = ?", code).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

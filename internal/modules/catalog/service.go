package catalog

import (
	"context"

	"drivingschool/internal/domain"
	"drivingschool/internal/repository"
)

// Service exposes the fixed lesson and training-package catalogues.
type Service struct {
	catalog *repository.CatalogRepository
}

func NewService(catalog *repository.CatalogRepository) *Service {
	return &Service{catalog: catalog}
}

func (s *Service) LessonTypes(ctx context.Context) ([]domain.LessonType, error) {
	return s.catalog.ListLessonTypes(ctx)
}

func (s *Service) TrainingPackages(ctx context.Context) ([]domain.TrainingPackage, error) {
	return s.catalog.ListTrainingPackages(ctx)
}

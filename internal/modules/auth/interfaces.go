package auth

import (
	"context"

	"drivingschool/internal/domain"
)

// UserReader — only the lookups the session manager needs.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type tokenIssuer interface {
	GenerateToken(u *domain.User) (string, error)
}

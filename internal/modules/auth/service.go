package auth

import (
	"context"
	"errors"
	"strings"

	"drivingschool/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Landing routes per role. Unknown roles fall back to the login page.
const (
	routeAdminDashboard      = "/dashboard/admin"
	routeInstructorDashboard = "/dashboard/instructor"
	routeStudentPortal       = "/portail"
	routeLogin               = "/auth/login"
)

// Service turns a credential pair into a session. One generic rejection for
// unknown email, wrong password and non-active accounts, so a caller cannot
// probe which addresses exist.
type Service struct {
	users UserReader
	jwt   tokenIssuer
}

func NewService(users UserReader, jwt tokenIssuer) *Service {
	return &Service{users: users, jwt: jwt}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Status != domain.StatusActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		User:          user.Projection(),
		Token:         token,
		RedirectRoute: RedirectRouteFor(user.Role),
	}, nil
}

func (s *Service) CurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// RedirectRouteFor maps a role to its landing route.
func RedirectRouteFor(role domain.UserRole) string {
	switch role {
	case domain.RoleAdmin:
		return routeAdminDashboard
	case domain.RoleInstructor:
		return routeInstructorDashboard
	case domain.RoleStudent:
		return routeStudentPortal
	default:
		return routeLogin
	}
}

package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"drivingschool/internal/domain"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockTokenIssuer struct {
	mock.Mock
}

func (m *mockTokenIssuer) GenerateToken(u *domain.User) (string, error) {
	args := m.Called(u)
	return args.String(0), args.Error(1)
}

func activeUser(email string, password string, role domain.UserRole) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &domain.User{
		ID:           1,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       domain.StatusActive,
		FirstName:    "Lucas",
		LastName:     "Bernard",
	}
}

func TestLogin_MissingCredentials(t *testing.T) {
	svc := NewService(new(mockUserRepo), new(mockTokenIssuer))

	cases := []LoginRequest{
		{Email: "", Password: ""},
		{Email: "student@test.com", Password: ""},
		{Email: "   ", Password: "Student123!"},
	}
	for _, req := range cases {
		res, err := svc.Login(context.Background(), req)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, ErrMissingCredentials)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, "nobody@test.com").Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(users, new(mockTokenIssuer))

	res, err := svc.Login(context.Background(), LoginRequest{Email: "nobody@test.com", Password: "whatever"})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	users.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, "student@test.com").
		Return(activeUser("student@test.com", "Student123!", domain.RoleStudent), nil)

	svc := NewService(users, new(mockTokenIssuer))

	res, err := svc.Login(context.Background(), LoginRequest{Email: "student@test.com", Password: "wrong"})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_InactiveAccount(t *testing.T) {
	u := activeUser("student@test.com", "Student123!", domain.RoleStudent)
	u.Status = domain.StatusSuspended

	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, "student@test.com").Return(u, nil)

	svc := NewService(users, new(mockTokenIssuer))

	res, err := svc.Login(context.Background(), LoginRequest{Email: "student@test.com", Password: "Student123!"})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_Success(t *testing.T) {
	cases := []struct {
		email    string
		password string
		role     domain.UserRole
		redirect string
	}{
		{"admin@test.com", "Admin123!", domain.RoleAdmin, "/dashboard/admin"},
		{"instructor@test.com", "Instructor123!", domain.RoleInstructor, "/dashboard/instructor"},
		{"student@test.com", "Student123!", domain.RoleStudent, "/portail"},
	}

	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			u := activeUser(tc.email, tc.password, tc.role)

			users := new(mockUserRepo)
			users.On("GetByEmail", mock.Anything, tc.email).Return(u, nil)

			issuer := new(mockTokenIssuer)
			issuer.On("GenerateToken", u).Return("signed-token", nil)

			svc := NewService(users, issuer)

			res, err := svc.Login(context.Background(), LoginRequest{Email: tc.email, Password: tc.password})
			assert.NoError(t, err)
			assert.Equal(t, "signed-token", res.Token)
			assert.Equal(t, tc.redirect, res.RedirectRoute)
			assert.Equal(t, tc.email, res.User.Email)
			issuer.AssertExpectations(t)
		})
	}
}

func TestLogin_TrimsEmail(t *testing.T) {
	u := activeUser("student@test.com", "Student123!", domain.RoleStudent)

	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, "student@test.com").Return(u, nil)

	issuer := new(mockTokenIssuer)
	issuer.On("GenerateToken", u).Return("signed-token", nil)

	svc := NewService(users, issuer)

	res, err := svc.Login(context.Background(), LoginRequest{Email: "  student@test.com  ", Password: "Student123!"})
	assert.NoError(t, err)
	assert.NotNil(t, res)
}

func TestCurrentUser_ClearsHash(t *testing.T) {
	u := activeUser("student@test.com", "Student123!", domain.RoleStudent)

	users := new(mockUserRepo)
	users.On("GetByID", mock.Anything, int64(1)).Return(u, nil)

	svc := NewService(users, new(mockTokenIssuer))

	got, err := svc.CurrentUser(context.Background(), 1)
	assert.NoError(t, err)
	assert.Empty(t, got.PasswordHash)
}

func TestRedirectRouteFor_UnknownRole(t *testing.T) {
	assert.Equal(t, "/auth/login", RedirectRouteFor(domain.UserRole("visitor")))
}

package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"drivingschool/internal/domain"
)

func loginRouter(users *mockUserRepo, issuer *mockTokenIssuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewService(users, issuer)).RegisterPublicRoutes(r.Group("/api/v1"))
	return r
}

func postLogin(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginEndpoint_MissingCredentials(t *testing.T) {
	r := loginRouter(new(mockUserRepo), new(mockTokenIssuer))

	w := postLogin(r, `{"email":"","password":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_CREDENTIALS")
	assert.Contains(t, w.Body.String(), "Email et mot de passe requis")
}

func TestLoginEndpoint_InvalidCredentials(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, "nobody@test.com").Return(nil, gorm.ErrRecordNotFound)

	r := loginRouter(users, new(mockTokenIssuer))

	w := postLogin(r, `{"email":"nobody@test.com","password":"whatever"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_CREDENTIALS")
	assert.Contains(t, w.Body.String(), "Email ou mot de passe incorrect")
}

func TestLoginEndpoint_Success(t *testing.T) {
	u := activeUser("student@test.com", "Student123!", domain.RoleStudent)

	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, "student@test.com").Return(u, nil)

	issuer := new(mockTokenIssuer)
	issuer.On("GenerateToken", u).Return("signed-token", nil)

	r := loginRouter(users, issuer)

	w := postLogin(r, `{"email":"student@test.com","password":"Student123!"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token":"signed-token"`)
	assert.Contains(t, w.Body.String(), `"redirect_route":"/portail"`)
	// hash never leaves the server
	assert.NotContains(t, w.Body.String(), u.PasswordHash)
}

func TestLogoutEndpoint_AlwaysSucceeds(t *testing.T) {
	r := loginRouter(new(mockUserRepo), new(mockTokenIssuer))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"redirect_route":"/auth/login"`)
}

package auth

import "drivingschool/internal/domain"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is what a successful login hands back: the session token, the
// reduced user projection and the role-specific landing route.
type LoginResult struct {
	User          domain.UserProjection `json:"user"`
	Token         string                `json:"token"`
	RedirectRoute string                `json:"redirect_route"`
}

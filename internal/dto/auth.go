package dto

import (
	"eduquiz-web/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// AuthRequest is the body of POST /auth/signup and POST /auth/signin.
type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse covers both auth endpoints. Sign-in fills AccessToken and
// User; sign-up may instead answer with Message, UserID and Email.
type AuthResponse struct {
	AccessToken string       `json:"access_token,omitempty"`
	User        *domain.User `json:"user,omitempty"`
	Message     string       `json:"message,omitempty"`
	UserID      string       `json:"user_id,omitempty"`
	Email       string       `json:"email,omitempty"`
}

// HasSession reports whether the response carries enough to log in.
func (r *AuthResponse) HasSession() bool {
	return r != nil && r.AccessToken != "" && r.User != nil && r.User.Email != ""
}

// HandoffClaims carries an in-progress quiz attempt between views.
type HandoffClaims struct {
	Attempt domain.Attempt `json:"attempt"`
	jwt.RegisteredClaims
}

package service

import (
	"context"
	"errors"
	"strings"

	"eduquiz-web/internal/domain"
	"eduquiz-web/internal/logger"
	"eduquiz-web/internal/port"
	"eduquiz-web/internal/validation"

	"go.uber.org/zap"
)

// Fallback messages shown when the backend gives no error text of its own.
const (
	SignUpFallbackMessage = "An error occurred during registration"
	SignInFallbackMessage = "An error occurred during sign in"
)

// SignUpResult reports whether registration also started a session.
type SignUpResult struct {
	LoggedIn bool
	State    domain.AuthState
}

// AuthService defines the interface for authentication operations.
type AuthService interface {
	SignUp(ctx context.Context, sid string, form validation.SignUpForm) (*SignUpResult, error)
	SignIn(ctx context.Context, sid string, form validation.SignInForm) (domain.AuthState, error)
	// Logout signs out on the backend (best effort) and clears the session.
	Logout(ctx context.Context, sid string, state domain.AuthState) error
}

type authServiceImpl struct {
	backend   port.BackendAPI
	gate      *AuthGate
	validator *validation.Validator
}

// NewAuthService creates a new AuthService.
func NewAuthService(backend port.BackendAPI, gate *AuthGate, validator *validation.Validator) AuthService {
	return &authServiceImpl{
		backend:   backend,
		gate:      gate,
		validator: validator,
	}
}

func (s *authServiceImpl) SignUp(ctx context.Context, sid string, form validation.SignUpForm) (*SignUpResult, error) {
	if err := s.validator.ValidateSignUp(form); err != nil {
		return nil, err
	}

	email := strings.TrimSpace(form.Email)
	resp, err := s.backend.SignUp(ctx, email, form.Password)
	if err != nil {
		logger.Get().Warn("Sign-up rejected by backend", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	if !resp.HasSession() {
		return &SignUpResult{}, nil
	}

	state, err := s.gate.Login(ctx, sid, resp.AccessToken, *resp.User)
	if err != nil {
		return nil, err
	}
	return &SignUpResult{LoggedIn: true, State: state}, nil
}

func (s *authServiceImpl) SignIn(ctx context.Context, sid string, form validation.SignInForm) (domain.AuthState, error) {
	if err := s.validator.ValidateSignIn(form); err != nil {
		return domain.Anonymous(), err
	}

	email := strings.TrimSpace(form.Email)
	resp, err := s.backend.SignIn(ctx, email, form.Password)
	if err != nil {
		logger.Get().Warn("Sign-in rejected by backend", zap.String("email", email), zap.Error(err))
		return domain.Anonymous(), err
	}
	if !resp.HasSession() {
		return domain.Anonymous(), domain.NewBackendError(0, "", errors.New("sign-in response has no access token or user"))
	}

	return s.gate.Login(ctx, sid, resp.AccessToken, *resp.User)
}

func (s *authServiceImpl) Logout(ctx context.Context, sid string, state domain.AuthState) error {
	if state.Token != "" {
		if err := s.backend.SignOut(ctx, state.Token); err != nil {
			logger.Get().Warn("Backend sign-out failed; clearing local session anyway", logger.SessionRef(sid), zap.Error(err))
		}
	}
	return s.gate.Logout(ctx, sid)
}

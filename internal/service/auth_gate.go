package service

import (
	"context"
	"errors"
	"fmt"

	"eduquiz-web/internal/domain"
	"eduquiz-web/internal/logger"

	"go.uber.org/zap"
)

// AuthGate is the single owner of authentication state. It is built once at
// startup and shared by middleware and handlers; callers only ever see
// immutable domain.AuthState snapshots.
type AuthGate struct {
	store domain.SessionStore
}

// NewAuthGate creates an AuthGate over store.
func NewAuthGate(store domain.SessionStore) *AuthGate {
	return &AuthGate{store: store}
}

// Hydrate reads the session for sid. A missing, partial or unparseable record
// yields the anonymous state; storage failures are logged, never returned.
func (g *AuthGate) Hydrate(ctx context.Context, sid string) domain.AuthState {
	if sid == "" {
		return domain.Anonymous()
	}

	record, err := g.store.GetSession(ctx, sid)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			logger.Get().Error("Failed to read session", logger.SessionRef(sid), zap.Error(err))
		}
		return domain.Anonymous()
	}

	if !record.Complete() {
		g.discard(ctx, sid, "incomplete session record")
		return domain.Anonymous()
	}

	user, err := domain.DecodeUser(record.User)
	if err != nil {
		g.discard(ctx, sid, "malformed stored user", zap.Error(err))
		return domain.Anonymous()
	}

	return domain.AuthState{
		Authenticated: true,
		User:          user,
		Token:         record.AccessToken,
	}
}

// Login persists token and user together and returns the new snapshot.
func (g *AuthGate) Login(ctx context.Context, sid, token string, user domain.User) (domain.AuthState, error) {
	if sid == "" || token == "" || user.Email == "" {
		return domain.Anonymous(), domain.NewInternalError("login requires a session id, token and user email", nil)
	}

	encoded, err := domain.EncodeUser(user)
	if err != nil {
		return domain.Anonymous(), domain.NewInternalError("failed to encode user", err)
	}

	if err := g.store.SetSession(ctx, sid, domain.SessionRecord{AccessToken: token, User: encoded}); err != nil {
		return domain.Anonymous(), domain.NewInternalError("failed to persist session", err)
	}

	logger.Get().Info("User logged in", logger.SessionRef(sid), zap.String("email", user.Email))
	return domain.AuthState{Authenticated: true, User: &user, Token: token}, nil
}

// Logout removes both halves of the session record.
func (g *AuthGate) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	if err := g.store.ClearSession(ctx, sid); err != nil {
		return domain.NewInternalError("failed to clear session", err)
	}
	logger.Get().Info("User logged out", logger.SessionRef(sid))
	return nil
}

func (g *AuthGate) discard(ctx context.Context, sid, reason string, fields ...zap.Field) {
	fields = append([]zap.Field{logger.SessionRef(sid), zap.String("reason", reason)}, fields...)
	logger.Get().Warn("Discarding stored session", fields...)
	if err := g.store.ClearSession(ctx, sid); err != nil {
		logger.Get().Error("Failed to clear discarded session", logger.SessionRef(sid), zap.Error(fmt.Errorf("clear: %w", err)))
	}
}

package domain

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

// Storage keys for the two halves of a session record.
const (
	SessionKeyAccessToken = "access_token"
	SessionKeyUser        = "user"
)

// ErrSessionNotFound is returned by a SessionStore when no record exists.
var ErrSessionNotFound = errors.New("session: not found")

// User is the account record returned by the backend on sign-in.
type User struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email"`
}

// SessionRecord is the persisted form of a session: the opaque token and the
// JSON-serialised user, exactly as written under SessionKeyAccessToken and
// SessionKeyUser.
type SessionRecord struct {
	AccessToken string
	User        string
}

// Complete reports whether both halves of the record are present.
func (r *SessionRecord) Complete() bool {
	return r != nil && r.AccessToken != "" && r.User != ""
}

// SessionStore is the storage port behind the auth gate. Set and Clear must
// write or remove both halves of the record in one operation.
type SessionStore interface {
	// GetSession returns ErrSessionNotFound if nothing is stored for sid.
	GetSession(ctx context.Context, sid string) (*SessionRecord, error)
	SetSession(ctx context.Context, sid string, record SessionRecord) error
	// ClearSession does not fail when nothing is stored.
	ClearSession(ctx context.Context, sid string) error
}

// Pinger is implemented by stores backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// AuthState is a read-only snapshot of a browser profile's authentication.
type AuthState struct {
	Authenticated bool
	User          *User
	Token         string
}

// Anonymous is the unauthenticated snapshot.
func Anonymous() AuthState {
	return AuthState{}
}

// Email returns the signed-in user's email, or "".
func (s AuthState) Email() string {
	if s.User == nil {
		return ""
	}
	return s.User.Email
}

// EncodeUser serialises u for storage under SessionKeyUser.
func EncodeUser(u User) (string, error) {
	b, err := json.Marshal(u)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeUser parses a stored user. A record without an email is malformed.
func DecodeUser(raw string) (*User, error) {
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, err
	}
	if strings.TrimSpace(u.Email) == "" {
		return nil, errors.New("stored user has no email")
	}
	return &u, nil
}

package models

import "time"

// Session is a row of the sessions table: one per browser profile.
type Session struct {
	ID          string    `db:"id"`           // ULID from the session cookie
	AccessToken string    `db:"access_token"` // Opaque backend bearer token
	UserJSON    string    `db:"user_json"`    // JSON-encoded domain.User
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

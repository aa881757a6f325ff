package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"eduquiz-web/internal/domain"
	"eduquiz-web/internal/repository/models"
)

// sqlxSessionRepository stores session records in the sessions table.
type sqlxSessionRepository struct {
	db DBTX
}

// NewSQLXSessionRepository creates a session store over db, which is usually
// a *sqlx.DB opened by database.NewSQLiteDB.
func NewSQLXSessionRepository(db DBTX) domain.SessionStore {
	return &sqlxSessionRepository{db: db}
}

// GetSession retrieves the record for sid.
func (r *sqlxSessionRepository) GetSession(ctx context.Context, sid string) (*domain.SessionRecord, error) {
	var row models.Session
	query := `SELECT id, access_token, user_json FROM sessions WHERE id = ?`

	if err := r.db.GetContext(ctx, &row, query, sid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return toDomainSession(&row), nil
}

// SetSession writes both halves of the record in a single upsert.
func (r *sqlxSessionRepository) SetSession(ctx context.Context, sid string, record domain.SessionRecord) error {
	query := `INSERT INTO sessions (id, access_token, user_json, created_at, updated_at)
	          VALUES (:id, :access_token, :user_json, :created_at, :updated_at)
	          ON CONFLICT(id) DO UPDATE SET
	              access_token = excluded.access_token,
	              user_json = excluded.user_json,
	              updated_at = excluded.updated_at`

	now := time.Now().UTC()
	row := models.Session{
		ID:          sid,
		AccessToken: record.AccessToken,
		UserJSON:    record.User,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// ClearSession deletes the row for sid; a missing row is not an error.
func (r *sqlxSessionRepository) ClearSession(ctx context.Context, sid string) error {
	query := `DELETE FROM sessions WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, sid); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Ping checks the underlying connection when db supports it.
func (r *sqlxSessionRepository) Ping(ctx context.Context) error {
	p, ok := r.db.(interface{ PingContext(context.Context) error })
	if !ok {
		return nil
	}
	return p.PingContext(ctx)
}

func toDomainSession(m *models.Session) *domain.SessionRecord {
	if m == nil {
		return nil
	}
	return &domain.SessionRecord{
		AccessToken: m.AccessToken,
		User:        m.UserJSON,
	}
}

var _ domain.Pinger = (*sqlxSessionRepository)(nil)

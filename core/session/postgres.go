package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/authcore/pkg/useragent"
)

// PostgresStore is a Store implementation backed by PostgreSQL.
//
// Expected schema:
//
//	CREATE TABLE sessions (
//	    id               UUID PRIMARY KEY,
//	    user_id          UUID NOT NULL,
//	    device_type      TEXT NOT NULL DEFAULT 'unknown',
//	    device_name      TEXT NOT NULL DEFAULT '',
//	    city             TEXT NOT NULL DEFAULT '',
//	    region           TEXT NOT NULL DEFAULT '',
//	    country          TEXT NOT NULL DEFAULT '',
//	    ip               TEXT NOT NULL,
//	    user_agent       TEXT NOT NULL DEFAULT '',
//	    created_at       TIMESTAMPTZ NOT NULL,
//	    last_activity_at TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX sessions_user_id_idx ON sessions (user_id, last_activity_at DESC);
//
// Row-level locking in PostgreSQL serializes concurrent writes to the
// same session, which satisfies the per-user mutation contract.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL-backed session store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const upsertSessionSQL = `
INSERT INTO sessions (id, user_id, device_type, device_name, city, region, country, ip, user_agent, created_at, last_activity_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (id) DO UPDATE SET last_activity_at = EXCLUDED.last_activity_at`

// Save inserts or replaces a session. Only last_activity_at changes on
// conflict since everything else is immutable after creation.
func (s *PostgresStore) Save(ctx context.Context, sess Session) error {
	_, err := s.pool.Exec(ctx, upsertSessionSQL,
		sess.ID,
		sess.UserID,
		string(sess.Device.Type),
		sess.Device.Name,
		sess.Location.City,
		sess.Location.Region,
		sess.Location.Country,
		sess.IP,
		sess.UserAgent,
		sess.CreatedAt,
		sess.LastActivityAt,
	)
	if err != nil {
		return errors.Join(ErrStoreUnavailable, fmt.Errorf("upsert session: %w", err))
	}
	return nil
}

const selectSessionSQL = `
SELECT id, user_id, device_type, device_name, city, region, country, ip, user_agent, created_at, last_activity_at
FROM sessions
WHERE user_id = $1 AND id = $2`

// Get returns the session or ErrNotFound.
func (s *PostgresStore) Get(ctx context.Context, userID, id uuid.UUID) (Session, error) {
	row := s.pool.QueryRow(ctx, selectSessionSQL, userID, id)
	sess, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Session{}, ErrNotFound
		}
		return Session{}, errors.Join(ErrStoreUnavailable, fmt.Errorf("select session: %w", err))
	}
	return sess, nil
}

const listSessionsSQL = `
SELECT id, user_id, device_type, device_name, city, region, country, ip, user_agent, created_at, last_activity_at
FROM sessions
WHERE user_id = $1
ORDER BY last_activity_at DESC`

// ListByUser returns all stored sessions for the user.
func (s *PostgresStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]Session, error) {
	rows, err := s.pool.Query(ctx, listSessionsSQL, userID)
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, fmt.Errorf("query sessions: %w", err))
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, errors.Join(ErrStoreUnavailable, fmt.Errorf("scan session: %w", err))
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrStoreUnavailable, fmt.Errorf("iterate sessions: %w", err))
	}
	return sessions, nil
}

// Delete removes the session if present and reports whether removal occurred.
func (s *PostgresStore) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return false, errors.Join(ErrStoreUnavailable, fmt.Errorf("delete session: %w", err))
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteUser removes all sessions for the user.
func (s *PostgresStore) DeleteUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	if err != nil {
		return 0, errors.Join(ErrStoreUnavailable, fmt.Errorf("delete user sessions: %w", err))
	}
	return tag.RowsAffected(), nil
}

// DeleteExpired removes sessions past either cutoff. Zero cutoffs match
// nothing, disabling the corresponding criterion.
func (s *PostgresStore) DeleteExpired(ctx context.Context, idleBefore, createdBefore time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM sessions WHERE last_activity_at < $1 OR created_at < $2`,
		idleBefore, createdBefore,
	)
	if err != nil {
		return 0, errors.Join(ErrStoreUnavailable, fmt.Errorf("delete expired sessions: %w", err))
	}
	return tag.RowsAffected(), nil
}

// Healthcheck verifies database connectivity.
func (s *PostgresStore) Healthcheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func scanSession(row pgx.Row) (Session, error) {
	var (
		sess       Session
		deviceType string
	)
	err := row.Scan(
		&sess.ID,
		&sess.UserID,
		&deviceType,
		&sess.Device.Name,
		&sess.Location.City,
		&sess.Location.Region,
		&sess.Location.Country,
		&sess.IP,
		&sess.UserAgent,
		&sess.CreatedAt,
		&sess.LastActivityAt,
	)
	if err != nil {
		return Session{}, err
	}
	sess.Device.Type = useragent.DeviceType(deviceType)
	return sess, nil
}

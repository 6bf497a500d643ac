package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"legalprompt-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSessionRepository stores each session as one JSONB document
type PostgresSessionRepository struct {
	db *pgxpool.Pool
}

// NewPostgresSessionRepository creates a new session repository
func NewPostgresSessionRepository(db *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

// Create inserts a new session
func (r *PostgresSessionRepository) Create(ctx context.Context, session *models.Session) error {
	data, err := session.Value()
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	query := `
		INSERT INTO sessions (id, data, created_at, last_seen_at)
		VALUES ($1, $2, $3, $4)`

	_, err = r.db.Exec(ctx, query, session.ID, data, session.CreatedAt, session.LastSeenAt)
	return err
}

// Get retrieves a session by ID
func (r *PostgresSessionRepository) Get(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	query := `SELECT data FROM sessions WHERE id = $1`

	var data []byte
	if err := r.db.QueryRow(ctx, query, id).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	session := &models.Session{}
	if err := session.Scan(data); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return session, nil
}

// Save overwrites the stored document
func (r *PostgresSessionRepository) Save(ctx context.Context, session *models.Session) error {
	data, err := session.Value()
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	query := `
		UPDATE sessions SET
			data = $2,
			last_seen_at = $3
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, session.ID, data, session.LastSeenAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// Update locks the row for the length of a transaction while fn runs
func (r *PostgresSessionRepository) Update(ctx context.Context, id uuid.UUID, fn UpdateFunc) (*models.Session, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var data []byte
	if err := tx.QueryRow(ctx, `SELECT data FROM sessions WHERE id = $1 FOR UPDATE`, id).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	session := &models.Session{}
	if err := session.Scan(data); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	if err := fn(session); err != nil {
		return nil, err
	}

	encoded, err := session.Value()
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}
	query := `
		UPDATE sessions SET
			data = $2,
			last_seen_at = $3
		WHERE id = $1`
	if _, err := tx.Exec(ctx, query, id, encoded, session.LastSeenAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit session update: %w", err)
	}
	return session, nil
}

// Delete deletes a session
func (r *PostgresSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// PruneIdle deletes sessions last seen before cutoff
func (r *PostgresSessionRepository) PruneIdle(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE last_seen_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// Count returns the number of stored sessions
func (r *PostgresSessionRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&n)
	return n, err
}

package repository

import (
	"context"
	"errors"
	"time"

	"legalprompt-backend/models"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when no session has the given ID
var ErrSessionNotFound = errors.New("session not found")

// UpdateFunc mutates a session in place. Returning an error aborts the update.
type UpdateFunc func(session *models.Session) error

// SessionStore persists sessions. Implementations hand out copies, so a
// caller mutating a session must Save it back, or use Update to read, modify
// and write it atomically.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, id uuid.UUID) (*models.Session, error)
	Save(ctx context.Context, session *models.Session) error
	// Update applies fn to the stored session with no other writer in between
	// and returns the saved copy
	Update(ctx context.Context, id uuid.UUID, fn UpdateFunc) (*models.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// PruneIdle removes sessions last seen before cutoff and reports how many
	PruneIdle(ctx context.Context, cutoff time.Time) (int, error)
	Count(ctx context.Context) (int, error)
}

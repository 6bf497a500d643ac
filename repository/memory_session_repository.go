package repository

import (
	"context"
	"sync"
	"time"

	"legalprompt-backend/models"

	"github.com/google/uuid"
)

// MemorySessionRepository keeps sessions in process memory
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*models.Session
}

// NewMemorySessionRepository creates an empty in-memory store
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[uuid.UUID]*models.Session)}
}

// Create stores a new session
func (r *MemorySessionRepository) Create(ctx context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session.Clone()
	return nil
}

// Get returns a copy of the session
func (r *MemorySessionRepository) Get(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s.Clone(), nil
}

// Save replaces a stored session
func (r *MemorySessionRepository) Save(ctx context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[session.ID]; !ok {
		return ErrSessionNotFound
	}
	r.sessions[session.ID] = session.Clone()
	return nil
}

// Update applies fn under the write lock
func (r *MemorySessionRepository) Update(ctx context.Context, id uuid.UUID, fn UpdateFunc) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	session := stored.Clone()
	if err := fn(session); err != nil {
		return nil, err
	}
	r.sessions[id] = session.Clone()
	return session, nil
}

// Delete removes a session
func (r *MemorySessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// PruneIdle removes sessions not seen since cutoff
func (r *MemorySessionRepository) PruneIdle(ctx context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pruned := 0
	for id, s := range r.sessions {
		if s.LastSeenAt.Before(cutoff) {
			delete(r.sessions, id)
			pruned++
		}
	}
	return pruned, nil
}

// Count returns the number of stored sessions
func (r *MemorySessionRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions), nil
}

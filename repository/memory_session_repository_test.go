package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"legalprompt-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository()
	s := models.NewSession(time.Now())

	require.NoError(t, repo.Create(ctx, s))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := repo.Get(ctx, s.ID)
	require.NoError(t, err)
	got.Favorites = append(got.Favorites, "kept")
	require.NoError(t, repo.Save(ctx, got))

	again, err := repo.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"kept"}, again.Favorites)

	require.NoError(t, repo.Delete(ctx, s.ID))
	_, err = repo.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemorySessionRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository()
	s := models.NewSession(time.Now())
	require.NoError(t, repo.Create(ctx, s))

	s.Favorites = append(s.Favorites, "not saved")
	got, err := repo.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Favorites)

	got.Analytics.FrameworksUsed["RICE"] = 9
	again, err := repo.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, again.Analytics.FrameworksUsed)
}

func TestMemorySessionRepository_MissingSession(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository()

	assert.ErrorIs(t, repo.Save(ctx, models.NewSession(time.Now())), ErrSessionNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), ErrSessionNotFound)
}

func TestMemorySessionRepository_PruneIdle(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository()
	now := time.Now()

	old := models.NewSession(now.Add(-2 * time.Hour))
	recent := models.NewSession(now)
	require.NoError(t, repo.Create(ctx, old))
	require.NoError(t, repo.Create(ctx, recent))

	pruned, err := repo.PruneIdle(ctx, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, pruned)

	_, err = repo.Get(ctx, recent.ID)
	assert.NoError(t, err)
}

func TestMemorySessionRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository()
	s := models.NewSession(time.Now())
	require.NoError(t, repo.Create(ctx, s))

	updated, err := repo.Update(ctx, s.ID, func(session *models.Session) error {
		session.Favorites = append(session.Favorites, "kept")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"kept"}, updated.Favorites)

	boom := errors.New("boom")
	_, err = repo.Update(ctx, s.ID, func(session *models.Session) error {
		session.Favorites = append(session.Favorites, "dropped")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repo.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"kept"}, got.Favorites)

	_, err = repo.Update(ctx, uuid.New(), func(*models.Session) error { return nil })
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

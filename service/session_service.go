package service

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"legalprompt-backend/metrics"
	"legalprompt-backend/models"
	"legalprompt-backend/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

// ErrEntryNotFound is returned when a history entry ID is not in the session
var ErrEntryNotFound = errors.New("history entry not found")

const (
	frameworkSourcePrefix = "Framework:"
	topFrameworksLimit    = 5
)

// SessionService owns the session lifecycle and every session mutation
type SessionService struct {
	store   repository.SessionStore
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// SessionServiceOption is a functional option for SessionService
type SessionServiceOption func(*SessionService)

// SessionWithStore sets the session store
func SessionWithStore(store repository.SessionStore) SessionServiceOption {
	return func(s *SessionService) {
		s.store = store
	}
}

// SessionWithMetrics sets the metrics sink
func SessionWithMetrics(m *metrics.Metrics) SessionServiceOption {
	return func(s *SessionService) {
		s.metrics = m
	}
}

// SessionWithLogger sets the logger
func SessionWithLogger(l *zap.Logger) SessionServiceOption {
	return func(s *SessionService) {
		s.logger = l
	}
}

// SessionWithClock overrides the time source
func SessionWithClock(now func() time.Time) SessionServiceOption {
	return func(s *SessionService) {
		s.now = now
	}
}

// NewSessionService creates a new session service. Without a store it keeps
// sessions in memory.
func NewSessionService(opts ...SessionServiceOption) *SessionService {
	s := &SessionService{
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = repository.NewMemorySessionRepository()
	}
	return s
}

// Create starts a new session
func (s *SessionService) Create(ctx context.Context) (*models.Session, error) {
	session := models.NewSession(s.now())
	if err := s.store.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	s.refreshGauge(ctx)
	return session, nil
}

// Get returns a session by ID
func (s *SessionService) Get(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	return s.store.Get(ctx, id)
}

// Delete ends a session
func (s *SessionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.refreshGauge(ctx)
	return nil
}

// update applies fn and stamps the session as seen in one atomic store update
func (s *SessionService) update(ctx context.Context, id uuid.UUID, fn func(*models.Session) error) (*models.Session, error) {
	session, err := s.store.Update(ctx, id, func(session *models.Session) error {
		if err := fn(session); err != nil {
			return err
		}
		session.LastSeenAt = s.now()
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) || errors.Is(err, ErrEntryNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update session: %w", err)
	}
	return session, nil
}

// Touch marks a session as active and returns it
func (s *SessionService) Touch(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	return s.update(ctx, id, func(*models.Session) error { return nil })
}

// HistoryID derives the short content-addressed ID of a prompt
func HistoryID(prompt string) string {
	sum := blake2b.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])[:8]
}

// AddToHistory prepends a prompt to the session history, keeping the newest
// 50 entries, and counts it as generated.
func (s *SessionService) AddToHistory(ctx context.Context, id uuid.UUID, prompt, source string, metadata map[string]string) (models.HistoryEntry, error) {
	entry := models.HistoryEntry{
		ID:        HistoryID(prompt),
		Prompt:    prompt,
		Source:    source,
		Metadata:  metadata,
		Timestamp: s.now(),
	}
	_, err := s.update(ctx, id, func(session *models.Session) error {
		pushHistory(session, entry)
		return nil
	})
	return entry, err
}

func pushHistory(session *models.Session, entry models.HistoryEntry) {
	session.History = append([]models.HistoryEntry{entry}, session.History...)
	if len(session.History) > models.MaxHistoryEntries {
		session.History = session.History[:models.MaxHistoryEntries]
	}
	session.Analytics.PromptsGenerated++
}

// ToggleFavorite flips the favorite flag of the first entry with entryID
func (s *SessionService) ToggleFavorite(ctx context.Context, id uuid.UUID, entryID string) (bool, error) {
	var favorited bool
	_, err := s.update(ctx, id, func(session *models.Session) error {
		for i := range session.History {
			if session.History[i].ID == entryID {
				session.History[i].Favorited = !session.History[i].Favorited
				favorited = session.History[i].Favorited
				return nil
			}
		}
		return ErrEntryNotFound
	})
	return favorited, err
}

// AddFavorite saves a prompt to favorites and records it in history as a
// favorited entry. Saving the same text twice keeps one favorite.
func (s *SessionService) AddFavorite(ctx context.Context, id uuid.UUID, prompt, source string) (models.HistoryEntry, error) {
	entry := models.HistoryEntry{
		ID:        HistoryID(prompt),
		Prompt:    prompt,
		Source:    source,
		Metadata:  map[string]string{"favorited": "true"},
		Timestamp: s.now(),
		Favorited: true,
	}
	_, err := s.update(ctx, id, func(session *models.Session) error {
		found := false
		for _, f := range session.Favorites {
			if f == prompt {
				found = true
				break
			}
		}
		if !found {
			session.Favorites = append(session.Favorites, prompt)
		}
		pushHistory(session, entry)
		return nil
	})
	return entry, err
}

// ClearHistory empties the prompt history
func (s *SessionService) ClearHistory(ctx context.Context, id uuid.UUID) error {
	_, err := s.update(ctx, id, func(session *models.Session) error {
		session.History = []models.HistoryEntry{}
		return nil
	})
	return err
}

// ClearChat empties the chat log
func (s *SessionService) ClearChat(ctx context.Context, id uuid.UUID) error {
	_, err := s.update(ctx, id, func(session *models.Session) error {
		session.ChatMessages = []models.ChatMessage{}
		return nil
	})
	return err
}

// AppendChat records one exchange and counts it as a chat interaction
func (s *SessionService) AppendChat(ctx context.Context, id uuid.UUID, user, assistant models.ChatMessage) error {
	_, err := s.update(ctx, id, func(session *models.Session) error {
		session.ChatMessages = append(session.ChatMessages, user, assistant)
		session.Analytics.ChatInteractions++
		return nil
	})
	return err
}

// RecordSearch remembers a search query once, in first-seen order
func (s *SessionService) RecordSearch(ctx context.Context, id uuid.UUID, query string) error {
	_, err := s.update(ctx, id, func(session *models.Session) error {
		if !slices.Contains(session.Analytics.SearchQueries, query) {
			session.Analytics.SearchQueries = append(session.Analytics.SearchQueries, query)
		}
		return nil
	})
	return err
}

// RecordFrameworkUse counts a framework as used
func (s *SessionService) RecordFrameworkUse(ctx context.Context, id uuid.UUID, framework string) error {
	_, err := s.update(ctx, id, func(session *models.Session) error {
		if session.Analytics.FrameworksUsed == nil {
			session.Analytics.FrameworksUsed = map[string]int{}
		}
		session.Analytics.FrameworksUsed[framework]++
		return nil
	})
	return err
}

// RecordExport counts an export
func (s *SessionService) RecordExport(ctx context.Context, id uuid.UUID) error {
	_, err := s.update(ctx, id, func(session *models.Session) error {
		session.Analytics.ExportCount++
		return nil
	})
	return err
}

// FrameworkCount is a framework with its use count
type FrameworkCount struct {
	Framework string `json:"framework"`
	Count     int    `json:"count"`
}

// AnalyticsSummary is the headline usage of a session
type AnalyticsSummary struct {
	TotalPrompts      int              `json:"totalPrompts"`
	Favorites         int              `json:"favorites"`
	SessionMinutes    int              `json:"sessionMinutes"`
	TopFrameworks     []FrameworkCount `json:"topFrameworks"`
	ProductivityScore int              `json:"productivityScore"`
	ChatInteractions  int              `json:"chatInteractions"`
	ExportCount       int              `json:"exportCount"`
	SearchQueries     int              `json:"searchQueries"`
}

// Summarize computes the analytics summary of a session at now
func Summarize(session *models.Session, now time.Time) AnalyticsSummary {
	favorites := 0
	counts := map[string]int{}
	for _, e := range session.History {
		if e.Favorited {
			favorites++
		}
		if strings.HasPrefix(e.Source, frameworkSourcePrefix) {
			counts[strings.TrimSpace(strings.TrimPrefix(e.Source, frameworkSourcePrefix))]++
		}
	}
	for fw, n := range session.Analytics.FrameworksUsed {
		counts[fw] += n
	}

	top := make([]FrameworkCount, 0, len(counts))
	for fw, n := range counts {
		top = append(top, FrameworkCount{Framework: fw, Count: n})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Framework < top[j].Framework
	})
	if len(top) > topFrameworksLimit {
		top = top[:topFrameworksLimit]
	}

	total := session.Analytics.PromptsGenerated
	return AnalyticsSummary{
		TotalPrompts:      total,
		Favorites:         favorites,
		SessionMinutes:    int(now.Sub(session.CreatedAt) / time.Minute),
		TopFrameworks:     top,
		ProductivityScore: min(100, total*10+favorites*5),
		ChatInteractions:  session.Analytics.ChatInteractions,
		ExportCount:       session.Analytics.ExportCount,
		SearchQueries:     len(session.Analytics.SearchQueries),
	}
}

// Analytics returns the analytics summary of a session
func (s *SessionService) Analytics(ctx context.Context, id uuid.UUID) (AnalyticsSummary, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return AnalyticsSummary{}, err
	}
	return Summarize(session, s.now()), nil
}

// PruneIdle removes sessions idle for longer than ttl
func (s *SessionService) PruneIdle(ctx context.Context, ttl time.Duration) (int, error) {
	pruned, err := s.store.PruneIdle(ctx, s.now().Add(-ttl))
	if err != nil {
		return 0, fmt.Errorf("failed to prune sessions: %w", err)
	}
	if pruned > 0 {
		s.logger.Info("pruned idle sessions", zap.Int("count", pruned), zap.Duration("ttl", ttl))
	}
	s.refreshGauge(ctx)
	return pruned, nil
}

func (s *SessionService) refreshGauge(ctx context.Context) {
	if s.metrics == nil {
		return
	}
	n, err := s.store.Count(ctx)
	if err != nil {
		s.logger.Warn("failed to count sessions", zap.Error(err))
		return
	}
	s.metrics.SetActiveSessions(n)
}

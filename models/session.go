package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// MaxHistoryEntries bounds the per-session prompt history
const MaxHistoryEntries = 50

// HistoryEntry is a prompt saved to a session
type HistoryEntry struct {
	ID        string            `json:"id"`
	Prompt    string            `json:"prompt"`
	Source    string            `json:"source"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Favorited bool              `json:"favorited"`
}

// ChatRole identifies the author of a chat message
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of the assistant conversation
type ChatMessage struct {
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Analytics tracks per-session usage counters
type Analytics struct {
	PromptsGenerated int            `json:"promptsGenerated"`
	ChatInteractions int            `json:"chatInteractions"`
	ExportCount      int            `json:"exportCount"`
	SearchQueries    []string       `json:"searchQueries"`
	FrameworksUsed   map[string]int `json:"frameworksUsed"`
}

// Session is the per-user interaction context. History is newest first.
type Session struct {
	ID           uuid.UUID      `json:"id"`
	CreatedAt    time.Time      `json:"createdAt"`
	LastSeenAt   time.Time      `json:"lastSeenAt"`
	History      []HistoryEntry `json:"history"`
	Favorites    []string       `json:"favorites"`
	Analytics    Analytics      `json:"analytics"`
	ChatMessages []ChatMessage  `json:"chatMessages"`
}

// NewSession returns an empty session stamped with now
func NewSession(now time.Time) *Session {
	return &Session{
		ID:         uuid.New(),
		CreatedAt:  now,
		LastSeenAt: now,
		History:    []HistoryEntry{},
		Favorites:  []string{},
		Analytics: Analytics{
			SearchQueries:  []string{},
			FrameworksUsed: map[string]int{},
		},
		ChatMessages: []ChatMessage{},
	}
}

// Clone returns a deep copy so stored sessions are never shared
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.History = make([]HistoryEntry, len(s.History))
	for i, e := range s.History {
		if e.Metadata != nil {
			md := make(map[string]string, len(e.Metadata))
			for k, v := range e.Metadata {
				md[k] = v
			}
			e.Metadata = md
		}
		c.History[i] = e
	}
	c.Favorites = append([]string{}, s.Favorites...)
	c.ChatMessages = append([]ChatMessage{}, s.ChatMessages...)
	c.Analytics.SearchQueries = append([]string{}, s.Analytics.SearchQueries...)
	c.Analytics.FrameworksUsed = make(map[string]int, len(s.Analytics.FrameworksUsed))
	for k, v := range s.Analytics.FrameworksUsed {
		c.Analytics.FrameworksUsed[k] = v
	}
	return &c
}

// Value implements driver.Valuer for JSONB
func (s Session) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner for JSONB
func (s *Session) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("unsupported session column type")
	}

	return json.Unmarshal(bytes, s)
}

package handlers

import (
	"errors"
	"net/http"

	"legalprompt-backend/models"
	"legalprompt-backend/repository"
	"legalprompt-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionHandler handles HTTP requests for sessions, history and chat
type SessionHandler struct {
	sessions *service.SessionService
	chat     *service.ChatService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *service.SessionService, chat *service.ChatService) *SessionHandler {
	return &SessionHandler{sessions: sessions, chat: chat}
}

// sessionID parses :id, responding with 400 when it is not a UUID
func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_SESSION_ID", "Invalid session ID format")
		return uuid.Nil, false
	}
	return id, true
}

// sessionError maps service errors to responses
func sessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrSessionNotFound):
		notFound(c, "Session not found")
	case errors.Is(err, service.ErrEntryNotFound):
		notFound(c, "History entry not found")
	default:
		internalError(c, err)
	}
}

// CreateSession handles POST /api/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	session, err := h.sessions.Create(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, session)
}

// GetSession handles GET /api/sessions/:id. Fetching a session counts as
// activity for idle pruning.
func (h *SessionHandler) GetSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	session, err := h.sessions.Touch(c.Request.Context(), id)
	if err != nil {
		sessionError(c, err)
		return
	}
	respondOK(c, http.StatusOK, session)
}

// DeleteSession handles DELETE /api/sessions/:id
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.sessions.Delete(c.Request.Context(), id); err != nil {
		sessionError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": true})
}

// AddHistoryRequest represents the request body for saving a prompt
type AddHistoryRequest struct {
	Prompt   string            `json:"prompt" binding:"required"`
	Source   string            `json:"source"`
	Metadata map[string]string `json:"metadata"`
	Favorite bool              `json:"favorite"`
}

// AddHistory handles POST /api/sessions/:id/history
func (h *SessionHandler) AddHistory(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req AddHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var (
		entry models.HistoryEntry
		err   error
	)
	if req.Favorite {
		entry, err = h.sessions.AddFavorite(c.Request.Context(), id, req.Prompt, req.Source)
	} else {
		entry, err = h.sessions.AddToHistory(c.Request.Context(), id, req.Prompt, req.Source, req.Metadata)
	}
	if err != nil {
		sessionError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, entry)
}

// GetHistory handles GET /api/sessions/:id/history
func (h *SessionHandler) GetHistory(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	session, err := h.sessions.Get(c.Request.Context(), id)
	if err != nil {
		sessionError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"history":   session.History,
		"favorites": session.Favorites,
	})
}

// ClearHistory handles DELETE /api/sessions/:id/history
func (h *SessionHandler) ClearHistory(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.sessions.ClearHistory(c.Request.Context(), id); err != nil {
		sessionError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"cleared": true})
}

// ToggleFavorite handles POST /api/sessions/:id/history/:entry/favorite
func (h *SessionHandler) ToggleFavorite(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	favorited, err := h.sessions.ToggleFavorite(c.Request.Context(), id, c.Param("entry"))
	if err != nil {
		sessionError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"id":        c.Param("entry"),
		"favorited": favorited,
	})
}

// Analytics handles GET /api/sessions/:id/analytics
func (h *SessionHandler) Analytics(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	summary, err := h.sessions.Analytics(c.Request.Context(), id)
	if err != nil {
		sessionError(c, err)
		return
	}
	respondOK(c, http.StatusOK, summary)
}

// ChatRequest represents the request body for a chat message
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// Chat handles POST /api/sessions/:id/chat
func (h *SessionHandler) Chat(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.chat.ReplyInSession(c.Request.Context(), id, req.Message)
	if err != nil {
		sessionError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"reply":    result.Reply,
		"source":   result.Source,
		"provider": result.Provider,
		"warning":  result.Warning,
		"fallback": result.IsFallback(),
	})
}

// ClearChat handles DELETE /api/sessions/:id/chat
func (h *SessionHandler) ClearChat(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.sessions.ClearChat(c.Request.Context(), id); err != nil {
		sessionError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"cleared": true})
}

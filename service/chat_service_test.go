package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"legalprompt-backend/models"
	"legalprompt-backend/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	reply   string
	err     error
	system  string
	message string
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Complete(ctx context.Context, system, message string) (string, error) {
	p.system, p.message = system, message
	return p.reply, p.err
}

func TestRuleBasedReply(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"commercial framework", "Which framework for a contract dispute?", frameworkCommercial},
		{"criminal framework", "Which framework suits criminal defence work?", frameworkCriminal},
		{"general framework", "Recommend a framework", frameworkGuide},
		{"modes", "Tell me about CRISPE", modesGuide},
		{"courts", "What does the CCMA do?", courtsGuide},
		{"ethics", "ethics of drafting with AI", ethicsGuide},
		{"presets", "family law matter", presetsGuide},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RuleBasedReply(tt.message))
		})
	}
}

func TestRuleBasedReply_DefaultEchoesQuery(t *testing.T) {
	out := RuleBasedReply("hello there")
	assert.Contains(t, out, `*Your query: "hello there"*`)
	assert.Contains(t, out, "SA Legal Prompting Assistant")
}

func TestReply_NoProvider(t *testing.T) {
	res := NewChatService().Reply(context.Background(), "hello")

	assert.True(t, res.IsFallback())
	assert.Empty(t, res.Warning)
	assert.Empty(t, res.Provider)
	assert.Equal(t, RuleBasedReply("hello"), res.Reply)
}

func TestReply_ProviderSuccess(t *testing.T) {
	p := &stubProvider{reply: "Use RICE."}
	res := NewChatService(ChatWithProvider(p)).Reply(context.Background(), "Which framework?")

	assert.False(t, res.IsFallback())
	assert.Equal(t, "Use RICE.", res.Reply)
	assert.Equal(t, "stub", res.Provider)
	assert.Equal(t, systemPrompt, p.system)
	assert.Equal(t, "Which framework?", p.message)
}

func TestReply_ProviderErrorFallsBack(t *testing.T) {
	p := &stubProvider{err: errors.New("rate limited")}
	res := NewChatService(ChatWithProvider(p)).Reply(context.Background(), "Tell me about CRISPE")

	assert.True(t, res.IsFallback())
	assert.Equal(t, modesGuide, res.Reply)
	assert.Equal(t, "rate limited", res.Warning)
	assert.Equal(t, "stub", res.Provider)
}

func TestReply_EmptyReplyFallsBack(t *testing.T) {
	p := &stubProvider{reply: "  \n"}
	res := NewChatService(ChatWithProvider(p)).Reply(context.Background(), "hello")

	assert.True(t, res.IsFallback())
	assert.Equal(t, ErrEmptyReply.Error(), res.Warning)
}

func TestReply_CerebrasTimeoutFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	p, err := NewCerebrasProvider(CerebrasConfig{APIKey: "test", BaseURL: srv.URL})
	require.NoError(t, err)

	start := time.Now()
	res := NewChatService(ChatWithProvider(p), ChatWithTimeout(50*time.Millisecond)).Reply(context.Background(), "hello")

	assert.Less(t, time.Since(start), 3*time.Second)
	assert.True(t, res.IsFallback())
	assert.Equal(t, "cerebras", res.Provider)
	assert.NotEmpty(t, res.Warning)
	assert.Equal(t, RuleBasedReply("hello"), res.Reply)
}

func TestReply_CerebrasSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","model":"llama-3.3-70b",` +
			`"choices":[{"index":0,"message":{"role":"assistant","content":"Try CO-STAR."},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	p, err := NewCerebrasProvider(CerebrasConfig{APIKey: "test", BaseURL: srv.URL})
	require.NoError(t, err)

	res := NewChatService(ChatWithProvider(p)).Reply(context.Background(), "hello")
	assert.False(t, res.IsFallback())
	assert.Equal(t, "Try CO-STAR.", res.Reply)
}

func TestNewProviders_RequireAPIKey(t *testing.T) {
	_, err := NewCerebrasProvider(CerebrasConfig{})
	assert.ErrorIs(t, err, ErrProviderNotConfigured)

	_, err = NewGeminiProvider(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrProviderNotConfigured)
}

func TestReplyInSession_RecordsExchange(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessionService()
	session, err := sessions.Create(ctx)
	require.NoError(t, err)

	chat := NewChatService(ChatWithSessions(sessions))
	res, err := chat.ReplyInSession(ctx, session.ID, "Tell me about CRISPE")
	require.NoError(t, err)
	assert.Equal(t, modesGuide, res.Reply)

	got, err := sessions.Get(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, got.ChatMessages, 2)
	assert.Equal(t, models.ChatRoleUser, got.ChatMessages[0].Role)
	assert.Equal(t, "Tell me about CRISPE", got.ChatMessages[0].Content)
	assert.Equal(t, models.ChatRoleAssistant, got.ChatMessages[1].Role)
	assert.Equal(t, string(SourceFallback), got.ChatMessages[1].Source)
	assert.Equal(t, 1, got.Analytics.ChatInteractions)
}

func TestReplyInSession_UnknownSession(t *testing.T) {
	chat := NewChatService(ChatWithSessions(NewSessionService()))
	_, err := chat.ReplyInSession(context.Background(), uuid.New(), "hi")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

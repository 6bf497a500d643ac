package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"legalprompt-backend/metrics"
	"legalprompt-backend/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:embed responses/*.md
var responseFS embed.FS

// ReplySource says who produced an assistant reply
type ReplySource string

const (
	SourceProvider ReplySource = "provider"
	SourceFallback ReplySource = "fallback"
)

const defaultChatTimeout = 30 * time.Second

// ChatResult is an assistant reply. Warning carries the provider error when
// a configured provider failed and the rule-based reply was used instead.
type ChatResult struct {
	Reply    string      `json:"reply"`
	Source   ReplySource `json:"source"`
	Provider string      `json:"provider,omitempty"`
	Warning  string      `json:"warning,omitempty"`
}

// IsFallback reports whether the rule-based responder answered
func (r ChatResult) IsFallback() bool {
	return r.Source == SourceFallback
}

// ChatService answers questions about legal prompting
type ChatService struct {
	provider ChatProvider
	sessions *SessionService
	metrics  *metrics.Metrics
	logger   *zap.Logger
	timeout  time.Duration
}

// ChatServiceOption is a functional option for ChatService
type ChatServiceOption func(*ChatService)

// ChatWithProvider sets the hosted model provider
func ChatWithProvider(p ChatProvider) ChatServiceOption {
	return func(s *ChatService) {
		s.provider = p
	}
}

// ChatWithSessions records exchanges in sessions
func ChatWithSessions(sessions *SessionService) ChatServiceOption {
	return func(s *ChatService) {
		s.sessions = sessions
	}
}

// ChatWithMetrics sets the metrics sink
func ChatWithMetrics(m *metrics.Metrics) ChatServiceOption {
	return func(s *ChatService) {
		s.metrics = m
	}
}

// ChatWithLogger sets the logger
func ChatWithLogger(l *zap.Logger) ChatServiceOption {
	return func(s *ChatService) {
		s.logger = l
	}
}

// ChatWithTimeout bounds each provider call
func ChatWithTimeout(d time.Duration) ChatServiceOption {
	return func(s *ChatService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewChatService creates a new chat service
func NewChatService(opts ...ChatServiceOption) *ChatService {
	s := &ChatService{
		logger:  zap.NewNop(),
		timeout: defaultChatTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reply answers a message. A provider failure never surfaces as an error;
// the rule-based reply is returned with a warning instead.
func (s *ChatService) Reply(ctx context.Context, message string) ChatResult {
	if s.provider == nil {
		s.metrics.RecordChatReply(string(SourceFallback))
		return ChatResult{Reply: RuleBasedReply(message), Source: SourceFallback}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	reply, err := s.provider.Complete(callCtx, systemPrompt, message)
	s.metrics.RecordProviderCall(s.provider.Name(), err == nil, time.Since(start))
	if err == nil && strings.TrimSpace(reply) == "" {
		err = ErrEmptyReply
	}
	if err != nil {
		s.logger.Warn("chat provider failed, using rule-based reply",
			zap.String("provider", s.provider.Name()),
			zap.Error(err))
		s.metrics.RecordChatReply(string(SourceFallback))
		return ChatResult{
			Reply:    RuleBasedReply(message),
			Source:   SourceFallback,
			Provider: s.provider.Name(),
			Warning:  err.Error(),
		}
	}

	s.metrics.RecordChatReply(string(SourceProvider))
	return ChatResult{Reply: reply, Source: SourceProvider, Provider: s.provider.Name()}
}

// ReplyInSession answers a message and appends the exchange to the session
func (s *ChatService) ReplyInSession(ctx context.Context, sessionID uuid.UUID, message string) (ChatResult, error) {
	if s.sessions == nil {
		return ChatResult{}, fmt.Errorf("session service not set")
	}
	if _, err := s.sessions.Get(ctx, sessionID); err != nil {
		return ChatResult{}, err
	}

	asked := time.Now()
	result := s.Reply(ctx, message)

	err := s.sessions.AppendChat(ctx, sessionID,
		models.ChatMessage{Role: models.ChatRoleUser, Content: message, CreatedAt: asked},
		models.ChatMessage{Role: models.ChatRoleAssistant, Content: result.Reply, Source: string(result.Source), CreatedAt: time.Now()},
	)
	if err != nil {
		return ChatResult{}, err
	}
	return result, nil
}

var (
	systemPrompt         = mustResponse("system_prompt.md")
	frameworkCommercial  = mustResponse("framework_commercial.md")
	frameworkCriminal    = mustResponse("framework_criminal.md")
	frameworkGuide       = mustResponse("framework_guide.md")
	modesGuide           = mustResponse("modes.md")
	courtsGuide          = mustResponse("courts.md")
	ethicsGuide          = mustResponse("ethics.md")
	presetsGuide         = mustResponse("presets.md")
	defaultReplyTemplate = template.Must(template.New("default").Parse(mustResponse("default.md")))
)

func mustResponse(name string) string {
	raw, err := responseFS.ReadFile("responses/" + name)
	if err != nil {
		panic(fmt.Sprintf("missing embedded response %s: %v", name, err))
	}
	return strings.TrimSuffix(string(raw), "\n")
}

type replyRule struct {
	terms []string
	reply func(lower, message string) string
}

var replyRules = []replyRule{
	{
		terms: []string{"framework", "which", "recommend", "best", "use"},
		reply: func(lower, _ string) string {
			switch {
			case containsAny(lower, "contract", "commercial", "business"):
				return frameworkCommercial
			case containsAny(lower, "criminal", "defence", "prosecution"):
				return frameworkCriminal
			default:
				return frameworkGuide
			}
		},
	},
	{
		terms: []string{"optimization", "optimize", "enhance", "mode", "crispe", "co-star", "chain of thought", "vari", "q-star", "micro", "spo", "guided"},
		reply: func(string, string) string { return modesGuide },
	},
	{
		terms: []string{"court", "tribunal", "ccma", "labour"},
		reply: func(string, string) string { return courtsGuide },
	},
	{
		terms: []string{"ethics", "risk", "ai use", "appropriate"},
		reply: func(string, string) string { return ethicsGuide },
	},
	{
		terms: []string{"preset", "constitutional", "criminal", "labour", "commercial", "family", "property", "litigation"},
		reply: func(string, string) string { return presetsGuide },
	},
}

// RuleBasedReply answers from canned guidance chosen by keywords. The first
// matching topic wins; anything else gets a help message echoing the query.
func RuleBasedReply(message string) string {
	lower := strings.ToLower(message)
	for _, rule := range replyRules {
		if containsAny(lower, rule.terms...) {
			return rule.reply(lower, message)
		}
	}

	var buf bytes.Buffer
	_ = defaultReplyTemplate.Execute(&buf, message)
	return buf.String()
}

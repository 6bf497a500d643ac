package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"
)

const (
	DefaultCerebrasBaseURL = "https://api.cerebras.ai/v1"
	DefaultCerebrasModel   = "llama-3.3-70b"
	DefaultGeminiModel     = "gemini-1.5-flash"

	chatMaxTokens   = 1024
	chatTemperature = 0.7
)

var (
	// ErrProviderNotConfigured is returned when a provider has no API key
	ErrProviderNotConfigured = errors.New("chat provider not configured")
	// ErrEmptyReply is returned when a provider answers with no text
	ErrEmptyReply = errors.New("chat provider returned empty reply")
)

// ChatProvider sends one user message with a system prompt to a hosted model
type ChatProvider interface {
	Name() string
	Complete(ctx context.Context, system, message string) (string, error)
}

// CerebrasConfig configures an OpenAI-compatible chat endpoint
type CerebrasConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// CerebrasProvider talks to Cerebras through its OpenAI-compatible API
type CerebrasProvider struct {
	client *openai.Client
	model  string
}

// NewCerebrasProvider creates a provider for an OpenAI-compatible endpoint
func NewCerebrasProvider(cfg CerebrasConfig) (*CerebrasProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("cerebras: %w", ErrProviderNotConfigured)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultCerebrasBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultCerebrasModel
	}

	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = cfg.BaseURL

	return &CerebrasProvider{
		client: openai.NewClientWithConfig(config),
		model:  cfg.Model,
	}, nil
}

// Name returns the provider name
func (p *CerebrasProvider) Name() string { return "cerebras" }

// Complete sends the message and returns the first choice's content
func (p *CerebrasProvider) Complete(ctx context.Context, system, message string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		MaxTokens:   chatMaxTokens,
		Temperature: chatTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("cerebras API error: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyReply
	}
	return resp.Choices[0].Message.Content, nil
}

// GeminiProvider talks to Google Gemini through the generative-ai SDK
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a Gemini client for the given key and model
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: %w", ErrProviderNotConfigured)
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiProvider{client: client, model: model}, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string { return "gemini" }

// Complete sends the message and concatenates the text parts of the reply
func (p *GeminiProvider) Complete(ctx context.Context, system, message string) (string, error) {
	model := p.client.GenerativeModel(p.model)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	model.SetTemperature(chatTemperature)
	model.SetMaxOutputTokens(chatMaxTokens)

	resp, err := model.GenerateContent(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}

	var reply strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				reply.WriteString(string(text))
			}
		}
	}
	if strings.TrimSpace(reply.String()) == "" {
		return "", ErrEmptyReply
	}
	return reply.String(), nil
}

// Close releases the underlying client
func (p *GeminiProvider) Close() error {
	return p.client.Close()
}

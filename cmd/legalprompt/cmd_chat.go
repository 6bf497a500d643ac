package main

import (
	"context"
	"fmt"
	"strings"

	"legalprompt-backend/config"
	"legalprompt-backend/service"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Ask the prompting assistant a question",
	Long:  "Ask the prompting assistant a question. Set CHAT_PROVIDER to cerebras or gemini\nto use a hosted model; otherwise the built-in guidance answers.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := newLogger()
	config.LoadDotEnv(logger)
	cfg := config.Load(logger)

	opts := []service.ChatServiceOption{
		service.ChatWithLogger(logger),
		service.ChatWithTimeout(cfg.ChatTimeout),
	}
	switch cfg.ChatProvider {
	case config.ChatProviderCerebras:
		p, err := service.NewCerebrasProvider(service.CerebrasConfig{
			APIKey:  cfg.CerebrasAPIKey,
			BaseURL: cfg.CerebrasBaseURL,
			Model:   cfg.CerebrasModel,
		})
		if err != nil {
			return err
		}
		opts = append(opts, service.ChatWithProvider(p))
	case config.ChatProviderGemini:
		p, err := service.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return err
		}
		defer p.Close()
		opts = append(opts, service.ChatWithProvider(p))
	}

	result := service.NewChatService(opts...).Reply(ctx, strings.Join(args, " "))
	if result.Warning != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s (showing built-in guidance)\n", result.Warning)
	}
	return printMarkdown(cmd.OutOrStdout(), result.Reply)
}

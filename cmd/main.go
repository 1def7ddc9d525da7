package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/windlearn/kazegaku/internal/catalog"
	"github.com/windlearn/kazegaku/internal/services"
	"github.com/windlearn/kazegaku/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	songs, err := catalog.Load()
	if err != nil {
		logger.Fatalf("failed to load song catalog: %v", err)
	}

	config := shared.DefaultConfig()
	configPath := "config.toml"
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config, using defaults", "error", err)
		}
	}

	gateway, err := newGateway(config)
	if err != nil {
		logger.Warn("no gateway configured", "error", err)
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Songs:      songs,
		Gateway:    gateway,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "kazegaku",
		Usage:    "Learn Japanese through Fujii Kaze lyrics",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}

// newGateway builds the configured AI gateway provider.
func newGateway(config *shared.Config) (services.Gateway, error) {
	switch config.Gateway.Provider {
	case "openai":
		return services.NewOpenAIService(config.Credentials.OpenAI, config.Gateway.RequestsPerMinute)
	default:
		return services.NewGeminiService(config.Credentials.Gemini, config.Gateway.RequestsPerMinute)
	}
}

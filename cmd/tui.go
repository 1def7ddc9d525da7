package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/urfave/cli/v3"

	"github.com/windlearn/kazegaku/internal/repositories"
	"github.com/windlearn/kazegaku/internal/shared"
	"github.com/windlearn/kazegaku/internal/ui"
)

// TUI launches the interactive study session.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireGateway(); err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/kazegaku-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	var analyses *repositories.AnalysisRepository
	var results *repositories.QuizResultRepository

	db, err := r.openDatabase()
	if err != nil {
		// The TUI still works without persistence, just slower and forgetful.
		fileLogger.Warn("running without local cache", "error", err)
	} else {
		defer db.Close()
		analyses = repositories.NewAnalysisRepository(db)
		results = repositories.NewQuizResultRepository(db)
	}

	model := ui.NewModel(ctx, r.songs, r.gateway, analyses, results, fileLogger)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/windlearn/kazegaku/internal/models"
	"github.com/windlearn/kazegaku/internal/repositories"
	"github.com/windlearn/kazegaku/internal/shared"
)

// GatewayAnalyze analyzes a song's lyrics, serving from the local cache
// unless --refresh is set.
func (r *Runner) GatewayAnalyze(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireGateway(); err != nil {
		return err
	}

	song, err := r.resolveSong(cmd.StringArg("song"))
	if err != nil {
		return err
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewAnalysisRepository(db)

	var analysis *models.AnalysisResponse
	if !cmd.Bool("refresh") {
		if cached, err := repo.GetBySong(song.ID); err == nil {
			r.logger.Debug("serving analysis from cache", "song", song.ID)
			analysis = cached
		}
	}

	if analysis == nil {
		r.logger.Info("analyzing lyrics", "song", song.ID, "provider", r.gateway.Name())
		analysis, err = r.gateway.AnalyzeLyrics(ctx, song.Lyrics, song.Title)
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}
		if err := repo.Save(song.ID, analysis); err != nil {
			r.logger.Warn("failed to cache analysis", "song", song.ID, "error", err)
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(analysis, cmd.Bool("pretty"))
	}

	r.writePlain("%s (%s)\n\n", song.Title, song.RomajiTitle)
	r.writePlain("%s\n", analysis.Summary)

	if len(analysis.Vocabulary) > 0 {
		r.writePlainln("Vocabulary:")
		for _, word := range analysis.Vocabulary {
			r.writePlain("  %s（%s）- %s\n", word.Word, word.Reading, word.Meaning)
		}
	}

	if len(analysis.Grammar) > 0 {
		r.writePlainln("Grammar:")
		for _, point := range analysis.Grammar {
			r.writePlain("  %s: %s\n", point.Point, point.Explanation)
		}
	}

	if analysis.CulturalNote != "" {
		r.writePlainln("%s", analysis.CulturalNote)
	}

	return nil
}

// GatewayTranslate translates one line of Japanese text.
func (r *Runner) GatewayTranslate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireGateway(); err != nil {
		return err
	}

	text := cmd.StringArg("text")
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: text to translate required", shared.ErrMissingArgument)
	}

	translation := r.gateway.QuickTranslation(ctx, text)
	r.writePlain("%s\n→ %s\n", text, translation)
	return nil
}

// GatewayQuiz generates and prints a quiz with answers marked.
func (r *Runner) GatewayQuiz(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireGateway(); err != nil {
		return err
	}

	song, err := r.resolveSong(cmd.StringArg("song"))
	if err != nil {
		return err
	}

	r.logger.Info("generating quiz", "song", song.ID, "provider", r.gateway.Name())
	questions, err := r.gateway.GenerateQuiz(ctx, song)
	if err != nil {
		return fmt.Errorf("quiz generation failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(questions, true)
	}

	if len(questions) == 0 {
		r.writePlain("No questions could be generated for %s\n", song.Title)
		return nil
	}

	r.writePlain("Quiz for %s (%d questions):\n", song.Title, len(questions))
	for i, q := range questions {
		r.writePlainln("%d. %s", i+1, q.Question)
		for j, option := range q.Options {
			marker := " "
			if j == q.CorrectIndex {
				marker = "*"
			}
			r.writePlain("   %s %d) %s\n", marker, j+1, option)
		}
		if q.Explanation != "" {
			r.writePlain("   %s\n", q.Explanation)
		}
	}
	return nil
}

// GatewayTutor asks the tutor a single question, optionally grounded in
// a catalog song.
func (r *Runner) GatewayTutor(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireGateway(); err != nil {
		return err
	}

	question := cmd.StringArg("question")
	if strings.TrimSpace(question) == "" {
		return fmt.Errorf("%w: question required", shared.ErrMissingArgument)
	}

	var contextSong *models.Song
	if songArg := cmd.String("song"); songArg != "" {
		song, err := r.resolveSong(songArg)
		if err != nil {
			return err
		}
		contextSong = &song
	}

	history := []models.ChatMessage{{Role: models.RoleUser, Text: question}}
	reply := r.gateway.AskTutor(ctx, history, contextSong)

	r.writePlain("%s\n", reply)
	return nil
}

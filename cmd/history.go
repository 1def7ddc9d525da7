package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/windlearn/kazegaku/internal/repositories"
)

// HistoryList prints recorded quiz attempts, newest first.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewQuizResultRepository(db)
	results, err := repo.List(cmd.String("song"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		type entry struct {
			SongID    string `json:"song_id"`
			Score     int    `json:"score"`
			Total     int    `json:"total"`
			CreatedAt string `json:"created_at"`
		}
		entries := make([]entry, 0, len(results))
		for _, result := range results {
			entries = append(entries, entry{
				SongID:    result.SongID(),
				Score:     result.Score(),
				Total:     result.Total(),
				CreatedAt: result.CreatedAt().Format("2006-01-02 15:04"),
			})
		}
		return r.writeJSON(entries, true)
	}

	if len(results) == 0 {
		r.writePlain("No quiz attempts recorded\n")
		return nil
	}

	r.writePlain("Quiz attempts (%d):\n", len(results))
	for _, result := range results {
		title := result.SongID()
		if song, err := r.songs.Get(result.SongID()); err == nil {
			title = song.Title
		}
		r.writePlain("  %s  %-12s %d/%d\n", result.CreatedAt().Format("2006-01-02 15:04"), title, result.Score(), result.Total())
	}
	return nil
}

// HistoryClear deletes recorded quiz attempts.
func (r *Runner) HistoryClear(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewQuizResultRepository(db)
	songID := cmd.String("song")
	if err := repo.Clear(songID); err != nil {
		return err
	}

	if songID != "" {
		r.writePlain("Cleared quiz attempts for %s\n", songID)
	} else {
		r.writePlain("Cleared all quiz attempts\n")
	}
	return nil
}

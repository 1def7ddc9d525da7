package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/windlearn/kazegaku/internal/models"
	"github.com/windlearn/kazegaku/internal/shared"
)

// SongsList prints the catalog.
func (r *Runner) SongsList(ctx context.Context, cmd *cli.Command) error {
	songs := r.songs.Songs()

	if cmd.Bool("json") {
		type entry struct {
			ID          string `json:"id"`
			Title       string `json:"title"`
			RomajiTitle string `json:"romaji_title"`
			Difficulty  string `json:"difficulty"`
		}
		entries := make([]entry, 0, len(songs))
		for _, song := range songs {
			entries = append(entries, entry{song.ID, song.Title, song.RomajiTitle, string(song.Difficulty)})
		}
		return r.writeJSON(entries, cmd.Bool("pretty"))
	}

	r.writePlain("Songs (%d):\n", len(songs))
	for _, song := range songs {
		r.writePlain("  %-12s %s (%s) — %s\n", song.ID, song.Title, song.RomajiTitle, song.Difficulty)
	}
	return nil
}

// SongsShow prints one song with its full lyrics.
func (r *Runner) SongsShow(ctx context.Context, cmd *cli.Command) error {
	song, err := r.resolveSong(cmd.StringArg("song"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(song, true)
	}

	r.writePlain("%s (%s)\n", song.Title, song.RomajiTitle)
	r.writePlain("Difficulty: %s\n", song.Difficulty)
	if song.Description != "" {
		r.writePlain("%s\n", song.Description)
	}
	if url := song.VideoURL(); url != "" {
		r.writePlain("Video: %s\n", url)
	}
	r.writePlainln("%s", song.Lyrics)
	return nil
}

// resolveSong finds a catalog song by id, then by title or romaji title.
func (r *Runner) resolveSong(idOrTitle string) (models.Song, error) {
	if strings.TrimSpace(idOrTitle) == "" {
		return models.Song{}, fmt.Errorf("%w: song id or title required", shared.ErrMissingArgument)
	}

	song, err := r.songs.Get(idOrTitle)
	if err == nil {
		return song, nil
	}

	needle := strings.ToLower(strings.TrimSpace(idOrTitle))
	for _, s := range r.songs.Songs() {
		if strings.ToLower(s.Title) == needle || strings.ToLower(s.RomajiTitle) == needle {
			return s, nil
		}
	}

	return models.Song{}, fmt.Errorf("%w: no song with id or title %q", shared.ErrSongNotFound, idOrTitle)
}

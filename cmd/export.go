package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/windlearn/kazegaku/internal/formatter"
	"github.com/windlearn/kazegaku/internal/models"
	"github.com/windlearn/kazegaku/internal/repositories"
	"github.com/windlearn/kazegaku/internal/shared"
	"github.com/windlearn/kazegaku/internal/tasks"
)

// ExportRun builds a study pack for one song and writes it to disk.
func (r *Runner) ExportRun(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireGateway(); err != nil {
		return err
	}

	format := cmd.String("format")
	if err := validateFormat(format); err != nil {
		return err
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	engine := tasks.NewPackEngine(
		r.gateway,
		r.songs,
		repositories.NewAnalysisRepository(db),
		repositories.NewQuizResultRepository(db),
	)

	progress, done := r.printProgress()
	pack, err := engine.Build(ctx, progress, cmd.StringArg("song"))
	close(progress)
	<-done
	if err != nil {
		return fmt.Errorf("failed to build study pack: %w", err)
	}

	return r.writePack(pack, format, cmd.String("output"))
}

// ExportAll builds and writes study packs for the whole catalog.
func (r *Runner) ExportAll(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireGateway(); err != nil {
		return err
	}

	format := cmd.String("format")
	if err := validateFormat(format); err != nil {
		return err
	}
	outputDir := cmd.String("output")

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	engine := tasks.NewPackEngine(
		r.gateway,
		r.songs,
		repositories.NewAnalysisRepository(db),
		repositories.NewQuizResultRepository(db),
	)

	progress, done := r.printProgress()
	packs, err := engine.BuildAll(ctx, progress)
	close(progress)
	<-done
	if err != nil {
		return fmt.Errorf("failed to build study packs: %w", err)
	}

	for _, pack := range packs {
		target := filepath.Join(outputDir, pack.Song.ID)
		if err := r.writePack(pack, format, target); err != nil {
			return err
		}
	}

	r.writePlain("Exported %d/%d study packs to %s\n", len(packs), r.songs.Len(), outputDir)
	return nil
}

// printProgress drains progress updates to the output until the channel
// closes, signalling completion on the returned done channel.
func (r *Runner) printProgress() (chan tasks.ProgressUpdate, <-chan struct{}) {
	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
	}()

	return progress, done
}

func (r *Runner) writePack(pack *models.StudyPack, format, output string) error {
	switch format {
	case "markdown", "md":
		result, err := formatter.WriteMarkdownExport(pack, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ %s → %s\n", pack.Song.Title, result.Directory)
	case "csv":
		result, err := formatter.WriteCSVExport(pack, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ %s → %s, %s\n", pack.Song.Title, result.CardsFile, result.MetadataFile)
	case "text", "txt":
		path, err := formatter.WriteTextExport(pack, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ %s → %s\n", pack.Song.Title, path)
	}
	return nil
}

func validateFormat(format string) error {
	switch format {
	case "markdown", "md", "csv", "text", "txt":
		return nil
	default:
		return fmt.Errorf("%w: unknown format %q (markdown, csv, or text)", shared.ErrInvalidArgument, format)
	}
}

// package tasks implements study-pack assembly for songs.
//
// The core abstraction is StudyEngine, which orchestrates the analysis,
// quiz generation, and history lookups needed to build an exportable
// study pack. Operations emit progress updates via channels for
// non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/windlearn/kazegaku/internal/catalog"
	"github.com/windlearn/kazegaku/internal/models"
	"github.com/windlearn/kazegaku/internal/services"
	"github.com/windlearn/kazegaku/internal/shared"
)

// AnalysisStore is the subset of the analysis repository the engine
// needs, abstracted for testing.
type AnalysisStore interface {
	GetBySong(songID string) (*models.AnalysisResponse, error)
	Save(songID string, analysis *models.AnalysisResponse) error
}

// ResultStore is the subset of the quiz result repository the engine needs.
type ResultStore interface {
	List(songID string) ([]*models.QuizResult, error)
}

// StudyEngine defines operations for assembling study packs.
type StudyEngine interface {
	// Build assembles a study pack for one song: cached-or-fresh analysis,
	// a generated quiz, and past attempt history.
	Build(ctx context.Context, progress chan<- ProgressUpdate, songIDOrTitle string) (*models.StudyPack, error)

	// BuildAll assembles study packs for every catalog song, skipping
	// songs whose analysis cannot be fetched.
	BuildAll(ctx context.Context, progress chan<- ProgressUpdate) ([]*models.StudyPack, error)
}

// PackEngine implements StudyEngine against the gateway and the local cache.
type PackEngine struct {
	gateway  services.Gateway
	songs    *catalog.Catalog
	analyses AnalysisStore
	results  ResultStore
}

// NewPackEngine creates a new PackEngine with the provided dependencies.
// The analysis and result stores are optional; without them the engine
// always fetches fresh and omits history.
func NewPackEngine(gateway services.Gateway, songs *catalog.Catalog, analyses AnalysisStore, results ResultStore) *PackEngine {
	return &PackEngine{
		gateway:  gateway,
		songs:    songs,
		analyses: analyses,
		results:  results,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *PackEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Build assembles a study pack for one song.
//
// The song argument is resolved as a catalog id first, then by
// case-insensitive title or romaji title match. Cached analyses are
// used when present; fresh ones are cached for next time.
func (e *PackEngine) Build(ctx context.Context, progress chan<- ProgressUpdate, songIDOrTitle string) (*models.StudyPack, error) {
	if e.gateway == nil {
		return nil, fmt.Errorf("%w: gateway not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, resolveSongUpdate(1, 1, songIDOrTitle))

	song, err := e.resolveSong(songIDOrTitle)
	if err != nil {
		return nil, err
	}

	pack := &models.StudyPack{Song: song}

	e.sendProgress(progress, fetchAnalysisUpdate(1, 1, song.Title))
	analysis, err := e.fetchAnalysis(ctx, song)
	if err != nil {
		return nil, err
	}
	pack.Analysis = analysis

	e.sendProgress(progress, generateQuizUpdate(1, 1, song.Title))
	quiz, err := e.gateway.GenerateQuiz(ctx, song)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to generate quiz: %v", shared.ErrGatewayRequest, err)
	}
	pack.Quiz = quiz

	if e.results != nil {
		e.sendProgress(progress, loadHistoryUpdate(1, 1, song.Title))
		history, err := e.results.List(song.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load quiz history: %w", err)
		}
		pack.History = history
	}

	e.sendProgress(progress, packReadyUpdate(song.Title, len(pack.Quiz)))
	return pack, nil
}

// BuildAll assembles packs for the whole catalog. Songs whose analysis
// fetch fails are reported through progress and skipped rather than
// aborting the run.
func (e *PackEngine) BuildAll(ctx context.Context, progress chan<- ProgressUpdate) ([]*models.StudyPack, error) {
	if e.gateway == nil {
		return nil, fmt.Errorf("%w: gateway not initialized", shared.ErrServiceUnavailable)
	}

	songs := e.songs.Songs()
	packs := make([]*models.StudyPack, 0, len(songs))

	for i, song := range songs {
		e.sendProgress(progress, buildPackUpdate(i+1, len(songs), song.Title))

		pack, err := e.Build(ctx, nil, song.ID)
		if err != nil {
			e.sendProgress(progress, packFailedUpdate(i+1, len(songs), song.Title, err))
			continue
		}
		packs = append(packs, pack)
	}

	if len(packs) == 0 {
		return nil, fmt.Errorf("%w: no study packs could be built", shared.ErrGatewayRequest)
	}

	return packs, nil
}

func (e *PackEngine) resolveSong(idOrTitle string) (models.Song, error) {
	song, err := e.songs.Get(idOrTitle)
	if err == nil {
		return song, nil
	}

	needle := strings.ToLower(strings.TrimSpace(idOrTitle))
	for _, s := range e.songs.Songs() {
		if strings.ToLower(s.Title) == needle || strings.ToLower(s.RomajiTitle) == needle {
			return s, nil
		}
	}

	return models.Song{}, fmt.Errorf("%w: no song with id or title %q", shared.ErrSongNotFound, idOrTitle)
}

func (e *PackEngine) fetchAnalysis(ctx context.Context, song models.Song) (*models.AnalysisResponse, error) {
	if e.analyses != nil {
		cached, err := e.analyses.GetBySong(song.ID)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("failed to read analysis cache: %w", err)
		}
	}

	analysis, err := e.gateway.AnalyzeLyrics(ctx, song.Lyrics, song.Title)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to analyze lyrics: %v", shared.ErrGatewayRequest, err)
	}

	if e.analyses != nil {
		if err := e.analyses.Save(song.ID, analysis); err != nil {
			return nil, fmt.Errorf("failed to cache analysis: %w", err)
		}
	}

	return analysis, nil
}

package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/windlearn/kazegaku/internal/models"
	"github.com/windlearn/kazegaku/internal/shared"
)

// AnalysisRepository caches gateway analyses per song.
//
// One row per song; Save upserts so re-analyzing refreshes the cached
// copy. Vocabulary and grammar lists are stored JSON-encoded.
type AnalysisRepository struct {
	db *sql.DB
}

// NewAnalysisRepository creates a new AnalysisRepository with the given database connection
func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Save stores or refreshes the cached analysis for a song.
func (r *AnalysisRepository) Save(songID string, analysis *models.AnalysisResponse) error {
	if songID == "" {
		return fmt.Errorf("%w: song id required", shared.ErrInvalidInput)
	}
	if analysis == nil {
		return fmt.Errorf("%w: analysis required", shared.ErrInvalidInput)
	}

	vocabulary, err := json.Marshal(analysis.Vocabulary)
	if err != nil {
		return fmt.Errorf("failed to encode vocabulary: %w", err)
	}
	grammar, err := json.Marshal(analysis.Grammar)
	if err != nil {
		return fmt.Errorf("failed to encode grammar: %w", err)
	}

	sequence, err := NextSequence(r.db, "analyses")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	now := time.Now()
	query := `
		INSERT INTO analyses (id, sequence, song_id, summary, cultural_note, vocabulary, grammar, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(song_id) DO UPDATE SET
			summary = excluded.summary,
			cultural_note = excluded.cultural_note,
			vocabulary = excluded.vocabulary,
			grammar = excluded.grammar,
			updated_at = excluded.updated_at
	`

	_, err = r.db.Exec(query,
		shared.GenerateID(),
		sequence,
		songID,
		analysis.Summary,
		analysis.CulturalNote,
		string(vocabulary),
		string(grammar),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}

	return nil
}

// GetBySong retrieves the cached analysis for a song, or sql.ErrNoRows
// when no analysis has been cached.
func (r *AnalysisRepository) GetBySong(songID string) (*models.AnalysisResponse, error) {
	query := `
		SELECT summary, cultural_note, vocabulary, grammar
		FROM analyses
		WHERE song_id = ?
	`

	var analysis models.AnalysisResponse
	var vocabulary, grammar string

	err := r.db.QueryRow(query, songID).Scan(&analysis.Summary, &analysis.CulturalNote, &vocabulary, &grammar)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(vocabulary), &analysis.Vocabulary); err != nil {
		return nil, fmt.Errorf("failed to decode vocabulary: %w", err)
	}
	if err := json.Unmarshal([]byte(grammar), &analysis.Grammar); err != nil {
		return nil, fmt.Errorf("failed to decode grammar: %w", err)
	}

	return &analysis, nil
}

// Delete removes the cached analysis for a song. Deleting an uncached
// song is not an error.
func (r *AnalysisRepository) Delete(songID string) error {
	if _, err := r.db.Exec("DELETE FROM analyses WHERE song_id = ?", songID); err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	return nil
}

// SongIDs returns the ids of all songs with a cached analysis, most
// recently updated first.
func (r *AnalysisRepository) SongIDs() ([]string, error) {
	rows, err := r.db.Query("SELECT song_id FROM analyses ORDER BY updated_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan analysis row: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

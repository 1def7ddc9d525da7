package repositories

import (
	"database/sql"
	"fmt"

	"github.com/windlearn/kazegaku/internal/models"
	"github.com/windlearn/kazegaku/internal/shared"
)

// QuizResultRepository records finished quiz attempts.
type QuizResultRepository struct {
	db *sql.DB
}

// NewQuizResultRepository creates a new QuizResultRepository with the given database connection
func NewQuizResultRepository(db *sql.DB) *QuizResultRepository {
	return &QuizResultRepository{db: db}
}

// Create inserts a finished quiz attempt with generated ID and sequence
func (r *QuizResultRepository) Create(result *models.QuizResult) error {
	if err := result.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "quiz_results")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	result.SetID(id)
	result.SetSequence(sequence)

	query := `
		INSERT INTO quiz_results (id, sequence, song_id, score, total, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		result.SongID(),
		result.Score(),
		result.Total(),
		result.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert quiz result: %w", err)
	}

	return nil
}

// Get retrieves a quiz result by ID
func (r *QuizResultRepository) Get(id string) (*models.QuizResult, error) {
	query := `
		SELECT id, sequence, song_id, score, total, created_at
		FROM quiz_results
		WHERE id = ?
	`

	return scanResult(r.db.QueryRow(query, id))
}

// List retrieves all quiz results, newest first. An empty songID
// returns results for every song.
func (r *QuizResultRepository) List(songID string) ([]*models.QuizResult, error) {
	query := `
		SELECT id, sequence, song_id, score, total, created_at
		FROM quiz_results
	`
	args := []any{}
	if songID != "" {
		query += " WHERE song_id = ?"
		args = append(args, songID)
	}
	query += " ORDER BY sequence DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list quiz results: %w", err)
	}
	defer rows.Close()

	var results []*models.QuizResult
	for rows.Next() {
		result, err := scanResultRows(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, rows.Err()
}

// Clear removes all recorded attempts, optionally limited to one song.
func (r *QuizResultRepository) Clear(songID string) error {
	query := "DELETE FROM quiz_results"
	args := []any{}
	if songID != "" {
		query += " WHERE song_id = ?"
		args = append(args, songID)
	}

	if _, err := r.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to clear quiz results: %w", err)
	}
	return nil
}

func scanResult(row *sql.Row) (*models.QuizResult, error) {
	var id, songID string
	var sequence, score, total int
	var createdAt sql.NullTime

	if err := row.Scan(&id, &sequence, &songID, &score, &total, &createdAt); err != nil {
		return nil, err
	}

	return buildResult(id, sequence, songID, score, total, createdAt), nil
}

func scanResultRows(rows *sql.Rows) (*models.QuizResult, error) {
	var id, songID string
	var sequence, score, total int
	var createdAt sql.NullTime

	if err := rows.Scan(&id, &sequence, &songID, &score, &total, &createdAt); err != nil {
		return nil, fmt.Errorf("failed to scan quiz result row: %w", err)
	}

	return buildResult(id, sequence, songID, score, total, createdAt), nil
}

func buildResult(id string, sequence int, songID string, score, total int, createdAt sql.NullTime) *models.QuizResult {
	result := models.NewQuizResult(sequence, songID, score, total)
	result.SetID(id)
	if createdAt.Valid {
		result.SetCreatedAt(createdAt.Time)
	}
	return result
}

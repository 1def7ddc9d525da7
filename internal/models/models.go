// package models defines the data model for the KazeGaku study application
package models

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty classifies a song for display and filtering purposes only.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
)

// Valid reports whether the difficulty is one of the two known labels.
func (d Difficulty) Valid() bool {
	return d == DifficultyBeginner || d == DifficultyIntermediate
}

// Song represents one catalog entry. Songs are loaded once at process
// start and never mutated.
type Song struct {
	ID          string     `toml:"id" validate:"required"`
	Title       string     `toml:"title" validate:"required"`
	RomajiTitle string     `toml:"romaji_title" validate:"required"`
	CoverImage  string     `toml:"cover_image"`
	YouTubeID   string     `toml:"youtube_id"`
	Lyrics      string     `toml:"lyrics" validate:"required"`
	Description string     `toml:"description"`
	Difficulty  Difficulty `toml:"difficulty" validate:"required,oneof=Beginner Intermediate"`
}

// Lines splits the raw lyric text into newline-separated lines,
// preserving blank lines between stanzas.
func (s Song) Lines() []string {
	return strings.Split(s.Lyrics, "\n")
}

// VideoURL returns the watch URL for the song's video, or "" if the
// song has no video identifier.
func (s Song) VideoURL() string {
	if s.YouTubeID == "" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + s.YouTubeID
}

// VocabularyWord is one key word extracted from a lyric analysis.
type VocabularyWord struct {
	Word    string `json:"word"`
	Reading string `json:"reading"`
	Meaning string `json:"meaning"`
	Context string `json:"context"`
}

// GrammarPoint is one grammar pattern extracted from a lyric analysis.
type GrammarPoint struct {
	Point       string `json:"point"`
	Explanation string `json:"explanation"`
	Example     string `json:"example"`
}

// AnalysisResponse is the structured result of analyzing a song's lyrics.
// All four fields are required by the response schema; a response that
// fails to parse as this shape is treated as "no analysis", never as a
// partial object.
type AnalysisResponse struct {
	Vocabulary   []VocabularyWord `json:"vocabulary"`
	Grammar      []GrammarPoint   `json:"grammar"`
	CulturalNote string           `json:"culturalNote"`
	Summary      string           `json:"summary"`
}

// QuizQuestion is one multiple-choice question in a generated quiz.
// CorrectIndex is the zero-based index into Options.
type QuizQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
}

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one turn in a tutor transcript.
type ChatMessage struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// StudyPack bundles everything assembled for one song: the catalog
// entry, its analysis, a generated quiz, and past attempt history.
// Packs are built for export to study-sheet files.
type StudyPack struct {
	Song     Song              `json:"song"`
	Analysis *AnalysisResponse `json:"analysis,omitempty"`
	Quiz     []QuizQuestion    `json:"quiz,omitempty"`
	History  []*QuizResult     `json:"-"`
}

// Model defines the base interface for all persistent models.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// QuizResult records one finished quiz attempt for a song.
type QuizResult struct {
	id        string
	sequence  int
	songID    string
	score     int
	total     int
	createdAt time.Time
}

// NewQuizResult creates a quiz result for a finished attempt.
func NewQuizResult(sequence int, songID string, score, total int) *QuizResult {
	return &QuizResult{
		sequence:  sequence,
		songID:    songID,
		score:     score,
		total:     total,
		createdAt: time.Now(),
	}
}

func (q *QuizResult) ID() string           { return q.id }
func (q *QuizResult) Sequence() int        { return q.sequence }
func (q *QuizResult) SongID() string       { return q.songID }
func (q *QuizResult) Score() int           { return q.score }
func (q *QuizResult) Total() int           { return q.total }
func (q *QuizResult) CreatedAt() time.Time { return q.createdAt }

func (q *QuizResult) SetID(id string)          { q.id = id }
func (q *QuizResult) SetSequence(seq int)      { q.sequence = seq }
func (q *QuizResult) SetCreatedAt(t time.Time) { q.createdAt = t }

// Validate checks that the result refers to a song and that the score
// is within 0..total.
func (q *QuizResult) Validate() error {
	if q.songID == "" {
		return fmt.Errorf("quiz result requires a song id")
	}
	if q.total < 0 {
		return fmt.Errorf("quiz result total must be non-negative, got %d", q.total)
	}
	if q.score < 0 || q.score > q.total {
		return fmt.Errorf("quiz result score %d out of range 0..%d", q.score, q.total)
	}
	return nil
}

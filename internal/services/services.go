// package services defines interface Gateway for interacting with hosted
// text-generation APIs
//
// Gemini (Generative Language API), OpenAI-compatible endpoints
package services

import (
	"context"

	"github.com/windlearn/kazegaku/internal/models"
)

// Gateway defines the four operations the application performs against a
// remote text-generation service. Implementations are stateless between
// calls; conversational continuity is achieved only by resending the
// full transcript each turn.
type Gateway interface {
	// AnalyzeLyrics extracts vocabulary, grammar, a cultural note, and a
	// summary for a song's lyrics. Returns an error if the remote call
	// fails or the response does not conform to the analysis schema;
	// callers treat an absent result as "no analysis available" and do
	// not retry automatically.
	AnalyzeLyrics(ctx context.Context, lyrics, title string) (*models.AnalysisResponse, error)

	// GenerateQuiz builds a fresh multiple-choice question set for the
	// song. Returns an error on transport failure; returns an empty set
	// (not an error) when the response cannot be parsed, so the UI can
	// show nothing rather than crash.
	GenerateQuiz(ctx context.Context, song models.Song) ([]models.QuizQuestion, error)

	// QuickTranslation translates a single lyric line. Never fails:
	// returns [FallbackTranslation] on any error.
	QuickTranslation(ctx context.Context, text string) string

	// AskTutor produces the next assistant message for the transcript,
	// optionally grounded in a context song. Never fails: returns
	// [FallbackTutorReply] on any error.
	AskTutor(ctx context.Context, history []models.ChatMessage, contextSong *models.Song) string

	// Name returns the name of the provider (e.g., "Gemini", "OpenAI")
	Name() string
}

// Fixed user-facing fallback strings substituted at the gateway
// boundary. Failures of the free-text operations never propagate.
const (
	FallbackTranslation = "無法取得翻譯。"
	FallbackTutorReply  = "抱歉，老師現在無法連線。"
)

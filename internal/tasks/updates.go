package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ResolveSong Phase = iota
	FetchAnalysis
	GenerateQuiz
	LoadHistory
	BuildPack
)

func (p Phase) String() string {
	switch p {
	case ResolveSong:
		return "resolve_song"
	case FetchAnalysis:
		return "fetch_analysis"
	case GenerateQuiz:
		return "generate_quiz"
	case LoadHistory:
		return "load_history"
	case BuildPack:
		return "build_pack"
	default:
		return ""
	}
}

func resolveSongUpdate(step, total int, query string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveSong,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Resolving song %q...", query),
	}
}

func fetchAnalysisUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchAnalysis,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching analysis for %s...", title),
	}
}

func generateQuizUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   GenerateQuiz,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Generating quiz for %s...", title),
	}
}

func loadHistoryUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   LoadHistory,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Loading quiz history for %s...", title),
	}
}

func buildPackUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   BuildPack,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Building pack: %s...", step, total, title),
	}
}

func packFailedUpdate(step, total int, title string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   BuildPack,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, title, err),
	}
}

func packReadyUpdate(title string, questions int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   BuildPack,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Pack ready: %s (%d questions)", title, questions),
	}
}

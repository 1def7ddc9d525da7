package session

import "github.com/windlearn/kazegaku/internal/models"

// QuizEngine walks a learner through a loaded question set, scoring
// answers and revealing explanations.
//
// Each question accepts exactly one selection: while the explanation is
// shown, further selections are no-ops, so the score can never
// double-increment. Restart resets progress but reuses the loaded set;
// a fresh set requires a new engine.
type QuizEngine struct {
	questions       []models.QuizQuestion
	index           int
	score           int
	selected        int
	showExplanation bool
	finished        bool
}

// NewQuizEngine creates an engine positioned at the first question.
// An empty question set is valid: the engine reports Empty and refuses
// progression, letting the UI show nothing rather than crash.
func NewQuizEngine(questions []models.QuizQuestion) *QuizEngine {
	return &QuizEngine{
		questions: questions,
		selected:  -1,
	}
}

// Empty reports whether the engine holds no questions.
func (q *QuizEngine) Empty() bool {
	return len(q.questions) == 0
}

// Len returns the number of questions in the set.
func (q *QuizEngine) Len() int {
	return len(q.questions)
}

// Index returns the zero-based index of the current question.
func (q *QuizEngine) Index() int {
	return q.index
}

// Score returns the running count of correct answers.
func (q *QuizEngine) Score() int {
	return q.score
}

// Finished reports whether the learner has advanced past the last question.
func (q *QuizEngine) Finished() bool {
	return q.finished
}

// ExplanationShown reports whether the current question has been
// answered and its explanation revealed.
func (q *QuizEngine) ExplanationShown() bool {
	return q.showExplanation
}

// Selected returns the chosen option index for the current question, or
// -1 if none has been chosen yet.
func (q *QuizEngine) Selected() int {
	return q.selected
}

// Current returns the current question, or false when the set is empty
// or the quiz is finished.
func (q *QuizEngine) Current() (models.QuizQuestion, bool) {
	if q.finished || q.index >= len(q.questions) {
		return models.QuizQuestion{}, false
	}
	return q.questions[q.index], true
}

// Select records an answer for the current question. The first
// selection per question is accepted, scores iff it matches the correct
// index, and reveals the explanation; subsequent selections are no-ops
// until Advance. Returns whether the selection was accepted.
func (q *QuizEngine) Select(option int) bool {
	current, ok := q.Current()
	if !ok || q.showExplanation {
		return false
	}
	if option < 0 || option >= len(current.Options) {
		return false
	}

	q.selected = option
	q.showExplanation = true
	if option == current.CorrectIndex {
		q.score++
	}
	return true
}

// Advance moves to the next question, clearing the selection and
// explanation, or finishes the quiz when the last question has been
// answered. Advancing before answering, or on an empty set, is a no-op.
func (q *QuizEngine) Advance() {
	if q.finished || !q.showExplanation {
		return
	}

	q.selected = -1
	q.showExplanation = false

	if q.index < len(q.questions)-1 {
		q.index++
	} else {
		q.finished = true
	}
}

// Restart resets index, score, and flags, returning to the first
// question of the already-loaded set without refetching.
func (q *QuizEngine) Restart() {
	q.index = 0
	q.score = 0
	q.selected = -1
	q.showExplanation = false
	q.finished = false
}

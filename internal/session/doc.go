// Package session implements the application's core state machines,
// free of any rendering concern.
//
// Each component owns its own state and is mutated only through its
// methods:
//
//  1. [NavState] / [Transition] : the four-view navigator as a pure
//     (state, event) → state function with two independent optional
//     song slots (selected song and chat-context song)
//  2. [Explorer] : per-song analysis plus the single line-translation
//     panel, guarded against out-of-order async resolution by dispatch
//     sequence numbers
//  3. [QuizEngine] : question walk-through with single-selection
//     scoring, explanation reveal, and restart
//  4. [ChatSession] : append-only tutor transcript with context-aware
//     greeting and in-flight send rejection
//
// The TUI layer drives these machines from bubbletea messages; the same
// machines back the one-shot CLI commands. Keeping them pure makes the
// transition tables and scoring rules deterministic to test.
package session

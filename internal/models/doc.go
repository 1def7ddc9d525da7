// Package models defines domain entities for the KazeGaku study application.
//
// The package contains two categories of types:
//
// 1. Session entities: immutable or session-owned values used by the UI and gateway
//   - [Song] : Catalog entry with lyrics and video reference
//   - [AnalysisResponse] : Structured lyric analysis (vocabulary, grammar, cultural note, summary)
//   - [QuizQuestion] : Generated multiple-choice question
//   - [ChatMessage] : One turn in a tutor transcript
//
// 2. Persistent entities: database-backed records with lifecycle management
//   - [QuizResult] : Finished quiz attempts with score and timestamps
//
// Persistent entities implement the [Model] interface providing ID generation,
// timestamps, and validation.
package models

// Package services implements the AI gateway boundary consumed by the
// TUI, CLI, and study-pack engine.
//
// The [Gateway] interface exposes exactly four operations: analyze
// lyrics, generate quiz, quick translation, and tutor chat. Each is a
// single request/response exchange with no streaming and no partial
// results. Failure policy is fixed per operation: the structured
// operations surface errors (or an empty question set) to the caller,
// while the free-text operations substitute fixed fallback strings and
// never fail.
//
// Two providers are available, selected by the gateway.provider config
// key: [GeminiService] speaks the Generative Language API with
// structured-output response schemas, and [OpenAIService] speaks the
// chat completions protocol in JSON mode.
package services

package session

import (
	"fmt"
	"strings"

	"github.com/windlearn/kazegaku/internal/models"
)

// ChatSession accumulates one tutor conversation: an append-only
// transcript seeded with a greeting that depends on whether a context
// song is present. Sessions are short-lived: leaving the chat discards
// the session and its transcript, so every entry starts a new one.
type ChatSession struct {
	contextSong *models.Song
	messages    []models.ChatMessage
	pending     bool
}

// NewChatSession starts a transcript seeded with the appropriate greeting.
func NewChatSession(contextSong *models.Song) *ChatSession {
	return &ChatSession{
		contextSong: contextSong,
		messages:    []models.ChatMessage{{Role: models.RoleAssistant, Text: greeting(contextSong)}},
	}
}

func greeting(contextSong *models.Song) string {
	if contextSong != nil {
		return fmt.Sprintf("你好！我們來聊聊《%s》這首歌吧。歌詞裡的用法、意境，或是想深入了解其中某個單字？盡管問我。", contextSong.Title)
	}
	return "你好！我是 KazeGaku 的專屬日文 Sensei。不論是歌詞裡的深意，還是日常文法，儘管問我吧。"
}

// Context returns the session's context song, or nil.
func (c *ChatSession) Context() *models.Song {
	return c.contextSong
}

// Send appends the user's input to the transcript and marks a tutor
// request as in flight. Empty (after trimming) input and input sent
// while a request is pending are rejected as no-ops. Returns the
// trimmed text and whether it was accepted.
func (c *ChatSession) Send(input string) (string, bool) {
	text := strings.TrimSpace(input)
	if text == "" || c.pending {
		return "", false
	}

	c.messages = append(c.messages, models.ChatMessage{Role: models.RoleUser, Text: text})
	c.pending = true
	return text, true
}

// Resolve appends the assistant's reply and clears the in-flight flag.
// The gateway substitutes its own fallback string on failure, so every
// accepted Send is eventually resolved with some reply.
func (c *ChatSession) Resolve(reply string) {
	if !c.pending {
		return
	}
	c.messages = append(c.messages, models.ChatMessage{Role: models.RoleAssistant, Text: reply})
	c.pending = false
}

// Pending reports whether a tutor request is in flight.
func (c *ChatSession) Pending() bool {
	return c.pending
}

// Messages returns a copy of the transcript so far.
func (c *ChatSession) Messages() []models.ChatMessage {
	out := make([]models.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/windlearn/kazegaku/internal/models"
)

func TestChatSession(t *testing.T) {
	t.Run("contextless session seeds generic greeting", func(t *testing.T) {
		chat := NewChatSession(nil)

		messages := chat.Messages()
		require.Len(t, messages, 1)
		assert.Equal(t, models.RoleAssistant, messages[0].Role)
		assert.Contains(t, messages[0].Text, "Sensei")
		assert.Nil(t, chat.Context())
	})

	t.Run("song session seeds greeting naming the song", func(t *testing.T) {
		chat := NewChatSession(song("grace"))

		messages := chat.Messages()
		require.Len(t, messages, 1)
		assert.Contains(t, messages[0].Text, "《grace》")
	})

	t.Run("send appends user message and marks pending", func(t *testing.T) {
		chat := NewChatSession(nil)

		text, ok := chat.Send("  「てにをは」怎麼用？  ")
		require.True(t, ok)
		assert.Equal(t, "「てにをは」怎麼用？", text)
		assert.True(t, chat.Pending())

		messages := chat.Messages()
		require.Len(t, messages, 2)
		assert.Equal(t, models.RoleUser, messages[1].Role)
		assert.Equal(t, "「てにをは」怎麼用？", messages[1].Text)
	})

	t.Run("blank input is rejected", func(t *testing.T) {
		chat := NewChatSession(nil)

		_, ok := chat.Send("   ")
		assert.False(t, ok)
		assert.False(t, chat.Pending())
		assert.Len(t, chat.Messages(), 1)
	})

	t.Run("send while pending is rejected", func(t *testing.T) {
		chat := NewChatSession(nil)

		_, ok := chat.Send("第一個問題")
		require.True(t, ok)

		_, ok = chat.Send("第二個問題")
		assert.False(t, ok)
		assert.Len(t, chat.Messages(), 2)
	})

	t.Run("resolve appends reply and clears pending", func(t *testing.T) {
		chat := NewChatSession(nil)
		_, ok := chat.Send("什麼是助詞？")
		require.True(t, ok)

		chat.Resolve("助詞是接在詞語後面表示文法關係的詞。")

		assert.False(t, chat.Pending())
		messages := chat.Messages()
		require.Len(t, messages, 3)
		assert.Equal(t, models.RoleAssistant, messages[2].Role)

		_, ok = chat.Send("下一個問題")
		assert.True(t, ok)
	})

	t.Run("resolve without pending send is a no-op", func(t *testing.T) {
		chat := NewChatSession(nil)

		chat.Resolve("遲到的回覆")

		assert.Len(t, chat.Messages(), 1)
	})

	t.Run("each session starts from a fresh greeting", func(t *testing.T) {
		chat := NewChatSession(song("hana"))
		_, ok := chat.Send("這首歌的主題是？")
		require.True(t, ok)
		chat.Resolve("主題是自我肯定。")
		require.Len(t, chat.Messages(), 3)

		chat = NewChatSession(song("hana"))

		messages := chat.Messages()
		require.Len(t, messages, 1)
		assert.Equal(t, models.RoleAssistant, messages[0].Role)
		assert.False(t, chat.Pending())
	})

	t.Run("messages returns a copy", func(t *testing.T) {
		chat := NewChatSession(nil)

		messages := chat.Messages()
		messages[0].Text = "改寫"

		assert.NotEqual(t, "改寫", chat.Messages()[0].Text)
	})
}

package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/windlearn/kazegaku/internal/models"
)

func TestExplorerAnalysis(t *testing.T) {
	explorer := NewExplorer(*song("grace"))

	_, ok := explorer.Analysis()
	assert.False(t, ok)

	explorer.BeginAnalysis()
	assert.True(t, explorer.AnalysisPending())

	analysis := &models.AnalysisResponse{Summary: "一首關於接納的歌。"}
	explorer.FinishAnalysis(analysis)

	assert.False(t, explorer.AnalysisPending())
	got, ok := explorer.Analysis()
	require.True(t, ok)
	assert.Equal(t, analysis, got)
}

func TestExplorerAnalysisFailure(t *testing.T) {
	explorer := NewExplorer(*song("grace"))

	explorer.BeginAnalysis()
	explorer.FinishAnalysis(nil)

	assert.False(t, explorer.AnalysisPending())
	_, ok := explorer.Analysis()
	assert.False(t, ok)
}

func TestExplorerTranslation(t *testing.T) {
	t.Run("request opens panel in pending state", func(t *testing.T) {
		explorer := NewExplorer(*song("hana"))

		seq, ok := explorer.RequestTranslation("咲かせて咲かせて")
		require.True(t, ok)

		line, text, pending, open := explorer.Panel()
		assert.True(t, open)
		assert.True(t, pending)
		assert.Equal(t, "咲かせて咲かせて", line)
		assert.Empty(t, text)

		require.True(t, explorer.ResolveTranslation(seq, "讓它綻放、讓它綻放"))
		_, text, pending, _ = explorer.Panel()
		assert.False(t, pending)
		assert.Equal(t, "讓它綻放、讓它綻放", text)
	})

	t.Run("blank line is not translatable", func(t *testing.T) {
		explorer := NewExplorer(*song("hana"))

		_, ok := explorer.RequestTranslation("   ")
		assert.False(t, ok)

		_, _, _, open := explorer.Panel()
		assert.False(t, open)
	})

	t.Run("stale resolution is discarded", func(t *testing.T) {
		explorer := NewExplorer(*song("hana"))

		first, ok := explorer.RequestTranslation("行目その一")
		require.True(t, ok)
		second, ok := explorer.RequestTranslation("行目その二")
		require.True(t, ok)

		// the slower first request lands after the second was dispatched
		assert.False(t, explorer.ResolveTranslation(first, "第一行"))

		line, text, pending, open := explorer.Panel()
		assert.True(t, open)
		assert.True(t, pending)
		assert.Equal(t, "行目その二", line)
		assert.Empty(t, text)

		require.True(t, explorer.ResolveTranslation(second, "第二行"))
		_, text, pending, _ = explorer.Panel()
		assert.False(t, pending)
		assert.Equal(t, "第二行", text)
	})

	t.Run("close panel invalidates in-flight request", func(t *testing.T) {
		explorer := NewExplorer(*song("hana"))

		seq, ok := explorer.RequestTranslation("まだ途中の行")
		require.True(t, ok)

		explorer.ClosePanel()

		_, _, pending, open := explorer.Panel()
		assert.False(t, open)
		assert.False(t, pending)
		assert.False(t, explorer.ResolveTranslation(seq, "遅れた翻訳"))
	})
}

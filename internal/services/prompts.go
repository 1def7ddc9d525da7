// Prompt templates and structured-output schemas shared by all Gateway
// implementations. Learner-facing text is Traditional Chinese; lyrics
// are passed through verbatim.
package services

import (
	"fmt"

	"github.com/windlearn/kazegaku/internal/models"
)

const baseSystemInstruction = `你是一位專業的日文老師，專長於解釋「母語者的自然用法」。
你的職責是回答任何關於日文的疑問（單字、文法、句子、發音、文化、學習方法、JLPT 策略）。

回答的核心原則：
1. **母語者的自然用法**：務必說明「在日本一般人在這種情況下會怎麼說？」，解釋語感、口語與書面語的差異。
2. **詞彙詳解**：
   - 定義與詞性。
   - 標準重音：請使用標號標示（如 [0], [1], [2]）並說明高低音。
   - 豐富例句：提供至少 2-3 個情境實用例句（包含假名、漢字及中文翻譯）。
   - 常用搭配 (Collocations)：列出常搭配的助詞、形容詞或動詞。
   - 使用語境 (Nuance)：詳細說明場合、對象、語氣或隱含意義。
   - 相關詞彙：提供近義、反義詞並比較細微差別。

3. **回答風格**：溫柔且富有耐心，如同藤井風的音樂一樣溫暖。請務必使用繁體中文回答。`

// tutorSystemInstruction returns the tutor persona, grounded in the
// context song's lyrics when one is present.
func tutorSystemInstruction(contextSong *models.Song) string {
	if contextSong == nil {
		return baseSystemInstruction
	}
	return fmt.Sprintf(`%s

當前學習情境：使用者正在學習藤井風的歌曲《%s》(%s)。
請盡可能結合這首歌的歌詞內容或背後的哲學（如：Help Ever, Hurt Never）來進行解答。
歌詞參考：
%s`, baseSystemInstruction, contextSong.Title, contextSong.RomajiTitle, contextSong.Lyrics)
}

func analysisPrompt(lyrics, title string) string {
	return fmt.Sprintf(`請分析藤井風歌曲《%s》的歌詞，為日文初學者提取重點。
1. 提取 4-6 個關鍵單字。
2. 提取 2-3 個基礎文法點。
3. 提供一段關於歌曲意境的中文摘要。
4. 提供一個文化或語境提示。

歌詞內容：
%s`, title, lyrics)
}

func quizPrompt(song models.Song) string {
	return fmt.Sprintf(`請基於歌曲《%s》的歌詞，設計 5 題適合日文初學者的選擇題，每題 4 個選項。
題目必須使用繁體中文。涵蓋單字意思、文法應用、發音或意境理解。
歌詞：
%s`, song.Title, song.Lyrics)
}

func translationPrompt(text string) string {
	return fmt.Sprintf(`請翻譯這段藤井風的歌詞並解釋其藝術語感（使用繁體中文）："%s"`, text)
}

// analysisSchema mirrors models.AnalysisResponse for structured output.
// All four top-level fields are required; a response missing any of
// them is rejected by the API rather than half-parsed by us.
func analysisSchema() map[string]any {
	return map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"vocabulary": map[string]any{
				"type": "ARRAY",
				"items": map[string]any{
					"type": "OBJECT",
					"properties": map[string]any{
						"word":    map[string]any{"type": "STRING"},
						"reading": map[string]any{"type": "STRING"},
						"meaning": map[string]any{"type": "STRING"},
						"context": map[string]any{"type": "STRING", "description": "在歌中的意思或用法"},
					},
					"required": []string{"word", "reading", "meaning", "context"},
				},
			},
			"grammar": map[string]any{
				"type": "ARRAY",
				"items": map[string]any{
					"type": "OBJECT",
					"properties": map[string]any{
						"point":       map[string]any{"type": "STRING"},
						"explanation": map[string]any{"type": "STRING", "description": "用繁體中文解釋"},
						"example":     map[string]any{"type": "STRING"},
					},
					"required": []string{"point", "explanation", "example"},
				},
			},
			"culturalNote": map[string]any{"type": "STRING", "description": "文化或背景補充（繁體中文）"},
			"summary":      map[string]any{"type": "STRING", "description": "歌曲哲學摘要（繁體中文）"},
		},
		"required": []string{"vocabulary", "grammar", "culturalNote", "summary"},
	}
}

// quizSchema mirrors a list of models.QuizQuestion for structured output.
func quizSchema() map[string]any {
	return map[string]any{
		"type": "ARRAY",
		"items": map[string]any{
			"type": "OBJECT",
			"properties": map[string]any{
				"question":     map[string]any{"type": "STRING"},
				"options":      map[string]any{"type": "ARRAY", "items": map[string]any{"type": "STRING"}},
				"correctIndex": map[string]any{"type": "INTEGER"},
				"explanation":  map[string]any{"type": "STRING", "description": "包含詳盡的教學解釋（繁體中文）"},
			},
			"required": []string{"question", "options", "correctIndex", "explanation"},
		},
	}
}

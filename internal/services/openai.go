// OpenAI-compatible implementation of [Gateway]
//
// Targets api.openai.com by default; base_url can point at any endpoint
// speaking the chat completions protocol.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/windlearn/kazegaku/internal/models"
	"github.com/windlearn/kazegaku/internal/shared"
	"golang.org/x/time/rate"
)

// OpenAIService implements the Gateway interface over the chat
// completions API. Structured operations use JSON mode with the
// expected shape described in the prompt.
type OpenAIService struct {
	client  *openai.Client
	model   string
	limiter *rate.Limiter
}

// NewOpenAIService creates an OpenAI-compatible gateway from credentials.
func NewOpenAIService(cfg shared.OpenAIConfig, requestsPerMinute int) (*OpenAIService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: openai api_key required", shared.ErrMissingCredentials)
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	svc := &OpenAIService{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}

	if requestsPerMinute > 0 {
		svc.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1)
	}

	return svc, nil
}

func (s *OpenAIService) Name() string {
	return "OpenAI"
}

// complete performs one chat completion exchange and returns the reply text.
func (s *OpenAIService) complete(ctx context.Context, messages []openai.ChatCompletionMessage, jsonMode bool) (string, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: %v", shared.ErrGatewayRequest, err)
		}
	}

	req := openai.ChatCompletionRequest{
		Model:    s.model,
		Messages: messages,
	}
	if jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrGatewayRequest, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", shared.ErrMalformedResponse)
	}

	return resp.Choices[0].Message.Content, nil
}

// AnalyzeLyrics requests a JSON-mode analysis of the lyrics.
func (s *OpenAIService) AnalyzeLyrics(ctx context.Context, lyrics, title string) (*models.AnalysisResponse, error) {
	shape := `回覆必須是符合以下形狀的 JSON 物件：
{"vocabulary":[{"word":"","reading":"","meaning":"","context":""}],"grammar":[{"point":"","explanation":"","example":""}],"culturalNote":"","summary":""}`

	text, err := s.complete(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: shape},
		{Role: openai.ChatMessageRoleUser, Content: analysisPrompt(lyrics, title)},
	}, true)
	if err != nil {
		return nil, err
	}

	var analysis models.AnalysisResponse
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedResponse, err)
	}

	return &analysis, nil
}

// GenerateQuiz requests a JSON-mode question set for the song.
// JSON mode requires a top-level object, so the questions are wrapped
// and unwrapped here. A response that fails to parse yields an empty
// set, not an error.
func (s *OpenAIService) GenerateQuiz(ctx context.Context, song models.Song) ([]models.QuizQuestion, error) {
	shape := `回覆必須是符合以下形狀的 JSON 物件：
{"questions":[{"question":"","options":["","","",""],"correctIndex":0,"explanation":""}]}`

	text, err := s.complete(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: shape},
		{Role: openai.ChatMessageRoleUser, Content: quizPrompt(song)},
	}, true)
	if err != nil {
		return nil, err
	}

	var wrapped struct {
		Questions []models.QuizQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(text), &wrapped); err != nil {
		return []models.QuizQuestion{}, nil
	}
	if wrapped.Questions == nil {
		return []models.QuizQuestion{}, nil
	}

	return wrapped.Questions, nil
}

// QuickTranslation translates one lyric line, substituting the fixed
// fallback string on any failure.
func (s *OpenAIService) QuickTranslation(ctx context.Context, text string) string {
	reply, err := s.complete(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: translationPrompt(text)},
	}, false)
	if err != nil || reply == "" {
		return FallbackTranslation
	}
	return reply
}

// AskTutor resends the full transcript with the tutor persona and
// returns the next assistant message, substituting the fixed apology
// string on any failure.
func (s *OpenAIService) AskTutor(ctx context.Context, history []models.ChatMessage, contextSong *models.Song) string {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: tutorSystemInstruction(contextSong),
	})
	for _, msg := range history {
		role := openai.ChatMessageRoleUser
		if msg.Role == models.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: msg.Text})
	}

	reply, err := s.complete(ctx, messages, false)
	if err != nil || reply == "" {
		return FallbackTutorReply
	}
	return reply
}

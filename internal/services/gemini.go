// Gemini implementation of [Gateway]
//
// Request/response types based on the Generative Language API
// generateContent method.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/windlearn/kazegaku/internal/models"
	"github.com/windlearn/kazegaku/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// geminiPart is one text fragment within a content block.
type geminiPart struct {
	Text string `json:"text"`
}

// geminiContent is one turn in a generateContent request or response.
type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

// generationConfig carries structured-output settings.
type generationConfig struct {
	ResponseMimeType string         `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
}

type generateRequest struct {
	Contents          []geminiContent   `json:"contents"`
	SystemInstruction *geminiContent    `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// GeminiService implements the Gateway interface against the Generative
// Language API. Structured operations use response schemas; free-text
// operations return the raw candidate text.
type GeminiService struct {
	apiKey     string
	model      string
	chatModel  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewGeminiService creates a Gemini gateway from credentials.
// An access token takes precedence over an API key and is sent as an
// OAuth bearer token. requestsPerMinute <= 0 disables throttling.
func NewGeminiService(cfg shared.GeminiConfig, requestsPerMinute int) (*GeminiService, error) {
	if cfg.APIKey == "" && cfg.AccessToken == "" {
		return nil, fmt.Errorf("%w: gemini api_key or access_token required", shared.ErrMissingCredentials)
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-3-flash-preview"
	}
	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = model
	}

	svc := &GeminiService{
		model:      model,
		chatModel:  chatModel,
		httpClient: http.DefaultClient,
	}

	if cfg.AccessToken != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken})
		svc.httpClient = oauth2.NewClient(context.Background(), src)
	} else {
		svc.apiKey = cfg.APIKey
	}

	if requestsPerMinute > 0 {
		svc.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1)
	}

	return svc, nil
}

func (s *GeminiService) Name() string {
	return "Gemini"
}

// generate performs one generateContent exchange and returns the first
// candidate's text.
func (s *GeminiService) generate(ctx context.Context, model string, reqBody generateRequest) (string, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: %v", shared.ErrGatewayRequest, err)
		}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	apiURL := fmt.Sprintf("%s/models/%s:generateContent", geminiBaseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("x-goog-api-key", s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrGatewayRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d", shared.ErrGatewayRequest, resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrMalformedResponse, err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no candidates", shared.ErrMalformedResponse)
	}

	var text strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	return text.String(), nil
}

// AnalyzeLyrics requests a schema-constrained analysis of the lyrics.
func (s *GeminiService) AnalyzeLyrics(ctx context.Context, lyrics, title string) (*models.AnalysisResponse, error) {
	req := generateRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: analysisPrompt(lyrics, title)}}},
		},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   analysisSchema(),
		},
	}

	text, err := s.generate(ctx, s.model, req)
	if err != nil {
		return nil, err
	}

	var analysis models.AnalysisResponse
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedResponse, err)
	}

	return &analysis, nil
}

// GenerateQuiz requests a schema-constrained question set for the song.
// A response that fails to parse yields an empty set, not an error.
func (s *GeminiService) GenerateQuiz(ctx context.Context, song models.Song) ([]models.QuizQuestion, error) {
	req := generateRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: quizPrompt(song)}}},
		},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   quizSchema(),
		},
	}

	text, err := s.generate(ctx, s.model, req)
	if err != nil {
		return nil, err
	}

	var questions []models.QuizQuestion
	if err := json.Unmarshal([]byte(text), &questions); err != nil {
		return []models.QuizQuestion{}, nil
	}

	return questions, nil
}

// QuickTranslation translates one lyric line, substituting the fixed
// fallback string on any failure.
func (s *GeminiService) QuickTranslation(ctx context.Context, text string) string {
	req := generateRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: translationPrompt(text)}}},
		},
	}

	reply, err := s.generate(ctx, s.model, req)
	if err != nil || reply == "" {
		return FallbackTranslation
	}
	return reply
}

// AskTutor resends the full transcript with the tutor persona and
// returns the next assistant message, substituting the fixed apology
// string on any failure.
func (s *GeminiService) AskTutor(ctx context.Context, history []models.ChatMessage, contextSong *models.Song) string {
	contents := make([]geminiContent, 0, len(history))
	for _, msg := range history {
		role := "user"
		if msg.Role == models.RoleAssistant {
			role = "model"
		}
		contents = append(contents, geminiContent{Role: role, Parts: []geminiPart{{Text: msg.Text}}})
	}

	req := generateRequest{
		Contents: contents,
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: tutorSystemInstruction(contextSong)}},
		},
	}

	reply, err := s.generate(ctx, s.chatModel, req)
	if err != nil || reply == "" {
		return FallbackTutorReply
	}
	return reply
}

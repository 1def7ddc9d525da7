package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/windlearn/kazegaku/internal/models"
	"github.com/windlearn/kazegaku/internal/shared"
)

// roundTripperFunc adapts a function to http.RoundTripper
type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// geminiReply builds a generateContent response with one candidate text
func geminiReply(text string) *http.Response {
	body := fmt.Sprintf(`{"candidates":[{"content":{"role":"model","parts":[{"text":%s}]}}]}`, strconv.Quote(text))
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{},
	}
}

func newTestGemini(t *testing.T, rt roundTripperFunc) *GeminiService {
	t.Helper()
	svc, err := NewGeminiService(shared.GeminiConfig{APIKey: "test-key"}, 0)
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	svc.httpClient = &http.Client{Transport: rt}
	return svc
}

func TestNewGeminiService(t *testing.T) {
	t.Run("requires credentials", func(t *testing.T) {
		_, err := NewGeminiService(shared.GeminiConfig{}, 0)
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("api key is sent as header", func(t *testing.T) {
		svc, err := NewGeminiService(shared.GeminiConfig{APIKey: "secret"}, 0)
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		var gotKey string
		svc.httpClient = &http.Client{Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
			gotKey = r.Header.Get("x-goog-api-key")
			return geminiReply("ok"), nil
		})}

		svc.QuickTranslation(context.Background(), "text")
		if gotKey != "secret" {
			t.Errorf("expected api key header, got %q", gotKey)
		}
	})

	t.Run("access token takes precedence over api key", func(t *testing.T) {
		svc, err := NewGeminiService(shared.GeminiConfig{APIKey: "key", AccessToken: "token"}, 0)
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}
		if svc.apiKey != "" {
			t.Error("expected api key to be unset when access token is provided")
		}
	})

	t.Run("default models", func(t *testing.T) {
		svc, err := NewGeminiService(shared.GeminiConfig{APIKey: "key"}, 0)
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}
		if svc.model == "" || svc.chatModel != svc.model {
			t.Errorf("expected chat model to default to model, got %q / %q", svc.model, svc.chatModel)
		}
	})

	t.Run("name", func(t *testing.T) {
		svc, _ := NewGeminiService(shared.GeminiConfig{APIKey: "key"}, 0)
		if svc.Name() != "Gemini" {
			t.Errorf("expected Gemini, got %s", svc.Name())
		}
	})
}

func TestGeminiAnalyzeLyrics(t *testing.T) {
	t.Run("parses schema response", func(t *testing.T) {
		analysis := models.AnalysisResponse{
			Summary:      "摘要",
			CulturalNote: "筆記",
			Vocabulary:   []models.VocabularyWord{{Word: "花", Reading: "はな", Meaning: "flower"}},
			Grammar:      []models.GrammarPoint{{Point: "〜てゆく", Explanation: "說明"}},
		}
		payload, _ := json.Marshal(analysis)

		var req generateRequest
		svc := newTestGemini(t, func(r *http.Request) (*http.Response, error) {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("failed to decode request: %v", err)
			}
			return geminiReply(string(payload)), nil
		})

		got, err := svc.AnalyzeLyrics(context.Background(), "歌詞", "花")
		if err != nil {
			t.Fatalf("failed to analyze: %v", err)
		}
		if got.Summary != "摘要" || len(got.Vocabulary) != 1 {
			t.Errorf("unexpected analysis: %+v", got)
		}

		if req.GenerationConfig == nil || req.GenerationConfig.ResponseMimeType != "application/json" {
			t.Error("expected structured output generation config")
		}
		if req.GenerationConfig.ResponseSchema == nil {
			t.Error("expected response schema")
		}
	})

	t.Run("malformed payload returns ErrMalformedResponse", func(t *testing.T) {
		svc := newTestGemini(t, func(r *http.Request) (*http.Response, error) {
			return geminiReply("not json"), nil
		})

		_, err := svc.AnalyzeLyrics(context.Background(), "歌詞", "花")
		if !errors.Is(err, shared.ErrMalformedResponse) {
			t.Errorf("expected ErrMalformedResponse, got %v", err)
		}
	})

	t.Run("http failure returns ErrGatewayRequest", func(t *testing.T) {
		svc := newTestGemini(t, func(r *http.Request) (*http.Response, error) {
			return nil, errors.New("network down")
		})

		_, err := svc.AnalyzeLyrics(context.Background(), "歌詞", "花")
		if !errors.Is(err, shared.ErrGatewayRequest) {
			t.Errorf("expected ErrGatewayRequest, got %v", err)
		}
	})

	t.Run("non-2xx status returns ErrGatewayRequest", func(t *testing.T) {
		svc := newTestGemini(t, func(r *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusTooManyRequests,
				Body:       io.NopCloser(strings.NewReader(`{"error":"quota"}`)),
			}, nil
		})

		_, err := svc.AnalyzeLyrics(context.Background(), "歌詞", "花")
		if !errors.Is(err, shared.ErrGatewayRequest) {
			t.Errorf("expected ErrGatewayRequest, got %v", err)
		}
	})
}

func TestGeminiGenerateQuiz(t *testing.T) {
	song := models.Song{ID: "hana", Title: "花", Lyrics: "歌詞"}

	t.Run("parses question array", func(t *testing.T) {
		questions := []models.QuizQuestion{
			{Question: "Q1", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 2, Explanation: "E1"},
		}
		payload, _ := json.Marshal(questions)

		svc := newTestGemini(t, func(r *http.Request) (*http.Response, error) {
			return geminiReply(string(payload)), nil
		})

		got, err := svc.GenerateQuiz(context.Background(), song)
		if err != nil {
			t.Fatalf("failed to generate quiz: %v", err)
		}
		if len(got) != 1 || got[0].CorrectIndex != 2 {
			t.Errorf("unexpected questions: %+v", got)
		}
	})

	t.Run("unparseable payload yields empty set without error", func(t *testing.T) {
		svc := newTestGemini(t, func(r *http.Request) (*http.Response, error) {
			return geminiReply("oops"), nil
		})

		got, err := svc.GenerateQuiz(context.Background(), song)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil set, got %v", got)
		}
	})

	t.Run("transport failure is an error", func(t *testing.T) {
		svc := newTestGemini(t, func(r *http.Request) (*http.Response, error) {
			return nil, errors.New("network down")
		})

		if _, err := svc.GenerateQuiz(context.Background(), song); err == nil {
			t.Error("expected error for transport failure")
		}
	})
}

func TestGeminiQuickTranslation(t *testing.T) {
	t.Run("returns candidate text", func(t *testing.T) {
		svc := newTestGemini(t, func(r *http.Request) (*http.Response, error) {
			return geminiReply("盛開吧"), nil
		})

		if got := svc.QuickTranslation(context.Background(), "咲け"); got != "盛開吧" {
			t.Errorf("expected translation, got %q", got)
		}
	})

	t.Run("falls back on failure", func(t *testing.T) {
		svc := newTestGemini(t, func(r *http.Request) (*http.Response, error) {
			return nil, errors.New("network down")
		})

		if got := svc.QuickTranslation(context.Background(), "咲け"); got != FallbackTranslation {
			t.Errorf("expected fallback, got %q", got)
		}
	})
}

func TestGeminiAskTutor(t *testing.T) {
	history := []models.ChatMessage{
		{Role: models.RoleAssistant, Text: "你好！"},
		{Role: models.RoleUser, Text: "「花」怎麼唸？"},
	}

	t.Run("maps assistant role to model and sends system instruction", func(t *testing.T) {
		var req generateRequest
		svc := newTestGemini(t, func(r *http.Request) (*http.Response, error) {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("failed to decode request: %v", err)
			}
			return geminiReply("唸作「はな」。"), nil
		})

		song := models.Song{ID: "hana", Title: "花", Lyrics: "歌詞"}
		reply := svc.AskTutor(context.Background(), history, &song)

		if reply != "唸作「はな」。" {
			t.Errorf("unexpected reply: %q", reply)
		}
		if len(req.Contents) != 2 {
			t.Fatalf("expected 2 turns, got %d", len(req.Contents))
		}
		if req.Contents[0].Role != "model" || req.Contents[1].Role != "user" {
			t.Errorf("unexpected roles: %s, %s", req.Contents[0].Role, req.Contents[1].Role)
		}
		if req.SystemInstruction == nil || !strings.Contains(req.SystemInstruction.Parts[0].Text, "花") {
			t.Error("expected song context in system instruction")
		}
	})

	t.Run("falls back on failure", func(t *testing.T) {
		svc := newTestGemini(t, func(r *http.Request) (*http.Response, error) {
			return nil, errors.New("network down")
		})

		if got := svc.AskTutor(context.Background(), history, nil); got != FallbackTutorReply {
			t.Errorf("expected fallback, got %q", got)
		}
	})
}

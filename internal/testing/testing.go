// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/windlearn/kazegaku/internal/models"
	"github.com/windlearn/kazegaku/internal/services"
)

// MockGateway is a configurable test double for [services.Gateway].
// Zero value returns empty-but-valid responses; set the response fields
// to script outcomes. Call counts are safe for concurrent use.
type MockGateway struct {
	mu sync.Mutex

	Analysis    *models.AnalysisResponse
	AnalysisErr error
	Quiz        []models.QuizQuestion
	QuizErr     error
	Translation string
	TutorReply  string

	AnalyzeCalls   int
	QuizCalls      int
	TranslateCalls int
	TutorCalls     int
	LastHistory    []models.ChatMessage
}

func (m *MockGateway) AnalyzeLyrics(ctx context.Context, lyrics, title string) (*models.AnalysisResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AnalyzeCalls++
	if m.AnalysisErr != nil {
		return nil, m.AnalysisErr
	}
	if m.Analysis != nil {
		return m.Analysis, nil
	}
	return &models.AnalysisResponse{}, nil
}

func (m *MockGateway) GenerateQuiz(ctx context.Context, song models.Song) ([]models.QuizQuestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QuizCalls++
	if m.QuizErr != nil {
		return nil, m.QuizErr
	}
	if m.Quiz != nil {
		return m.Quiz, nil
	}
	return []models.QuizQuestion{}, nil
}

func (m *MockGateway) QuickTranslation(ctx context.Context, text string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TranslateCalls++
	if m.Translation != "" {
		return m.Translation
	}
	return services.FallbackTranslation
}

func (m *MockGateway) AskTutor(ctx context.Context, history []models.ChatMessage, contextSong *models.Song) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TutorCalls++
	m.LastHistory = history
	if m.TutorReply != "" {
		return m.TutorReply
	}
	return services.FallbackTutorReply
}

func (m *MockGateway) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// SequenceRoundTripper returns queued responses in order, repeating the
// last one once the queue is drained.
type SequenceRoundTripper struct {
	mu        sync.Mutex
	responses []*http.Response
	Requests  []*http.Request
}

func NewSequenceRoundTripper(responses ...*http.Response) *SequenceRoundTripper {
	return &SequenceRoundTripper{responses: responses}
}

func (s *SequenceRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Requests = append(s.Requests, r)
	if len(s.responses) == 0 {
		return nil, errors.New("no responses queued")
	}
	resp := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	return resp, nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

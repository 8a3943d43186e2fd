package testutil

import (
	"context"
	"sync"

	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/api"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/model"
)

// MockTranscriber is a configurable api.Transcriber for tests. It records
// every call so tests can assert retry and no-retry behavior.
type MockTranscriber struct {
	mu sync.Mutex

	Response api.TranscriptionResult
	Err      error

	CallCount int
	Buffers   []model.AudioBuffer
	Hints     []string
}

// NewMockTranscriber returns a mock that succeeds with a fixed transcript.
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{
		Response: api.TranscriptionResult{
			Text:     "This is a mock transcription result.",
			Language: "en",
		},
	}
}

// Transcribe implements api.Transcriber.
func (m *MockTranscriber) Transcribe(ctx context.Context, buf model.AudioBuffer, languageHint string) (api.TranscriptionResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallCount++
	m.Buffers = append(m.Buffers, buf)
	m.Hints = append(m.Hints, languageHint)

	if m.Err != nil {
		return api.TranscriptionResult{}, m.Err
	}
	return m.Response, nil
}

// LastBuffer returns the buffer of the most recent call.
func (m *MockTranscriber) LastBuffer() model.AudioBuffer {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Buffers) == 0 {
		return model.AudioBuffer{}
	}
	return m.Buffers[len(m.Buffers)-1]
}

package testutil

import (
	"context"
	"sync"
)

// MockImprover is a configurable pipeline.Improver for tests. With no
// configured output it echoes the input back.
type MockImprover struct {
	mu sync.Mutex

	Improved string
	Err      error

	CallCount int
	Inputs    []string
}

func (m *MockImprover) Improve(ctx context.Context, text string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallCount++
	m.Inputs = append(m.Inputs, text)

	if m.Err != nil {
		return "", m.Err
	}
	if m.Improved == "" {
		return text, nil
	}
	return m.Improved, nil
}

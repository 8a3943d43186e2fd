package testutil

import (
	"context"

	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/model"
)

// FailingStore is a repository.TranscriptionStore whose every operation
// fails with Err. Used to exercise storage fallback and terminal persistence
// failures.
type FailingStore struct {
	Err    error
	Closed bool
}

func (s *FailingStore) Add(ctx context.Context, record model.TranscriptionRecord) (string, error) {
	return "", s.Err
}

func (s *FailingStore) GetAll(ctx context.Context) ([]model.TranscriptionRecord, error) {
	return nil, s.Err
}

func (s *FailingStore) Delete(ctx context.Context, id string) (bool, error) {
	return false, s.Err
}

func (s *FailingStore) ClearAll(ctx context.Context) (int, error) {
	return 0, s.Err
}

func (s *FailingStore) Search(ctx context.Context, query string) ([]model.TranscriptionRecord, error) {
	return nil, s.Err
}

func (s *FailingStore) Close() error {
	s.Closed = true
	return nil
}

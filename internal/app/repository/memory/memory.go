package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/model"
)

// Store is the non-durable fallback backend: a mutex-guarded in-process
// collection, newest first. Everything here is lost on restart.
type Store struct {
	mu      sync.RWMutex
	records []model.TranscriptionRecord
}

func NewStore() *Store {
	return &Store{records: make([]model.TranscriptionRecord, 0)}
}

func (s *Store) Add(ctx context.Context, record model.TranscriptionRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]model.TranscriptionRecord{record}, s.records...)
	return record.ID, nil
}

func (s *Store) GetAll(ctx context.Context) ([]model.TranscriptionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.TranscriptionRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ClearAll(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := len(s.records)
	s.records = s.records[:0]
	return count, nil
}

func (s *Store) Search(ctx context.Context, query string) ([]model.TranscriptionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(query)
	matched := lo.Filter(s.records, func(r model.TranscriptionRecord, _ int) bool {
		return strings.Contains(strings.ToLower(r.Name), needle) ||
			strings.Contains(strings.ToLower(r.Text), needle)
	})
	return matched, nil
}

func (s *Store) Close() error {
	return nil
}

package repository

import (
	"context"

	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/model"
)

// TranscriptionStore is the uniform CRUD surface over whichever backend is
// active. Implementations must be safe for concurrent use.
type TranscriptionStore interface {
	// Add persists a fully populated record and returns its id.
	Add(ctx context.Context, record model.TranscriptionRecord) (string, error)

	// GetAll returns every record, newest first.
	GetAll(ctx context.Context) ([]model.TranscriptionRecord, error)

	// Delete removes one record. Unknown ids return false, not an error.
	Delete(ctx context.Context, id string) (bool, error)

	// ClearAll removes every record and returns how many were removed.
	ClearAll(ctx context.Context) (int, error)

	// Search matches name or text case-insensitively by substring.
	Search(ctx context.Context, query string) ([]model.TranscriptionRecord, error)

	Close() error
}

package api

import (
	"context"

	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/model"
)

// TranscriptionResult carries the transcript text plus the language the
// service detected (or the caller's hint, echoed back).
type TranscriptionResult struct {
	Text     string
	Language string
}

// Transcriber defines a transcription interface for converting audio buffers
// to text. An empty languageHint asks the service to auto-detect.
type Transcriber interface {
	Transcribe(ctx context.Context, buf model.AudioBuffer, languageHint string) (TranscriptionResult, error)
}

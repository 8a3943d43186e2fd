package testutil

import (
	"context"

	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/model"
)

// MockPreprocessor is a configurable pipeline.Preprocessor for tests. Each
// stage either returns the configured buffer and stats or the configured
// error.
type MockPreprocessor struct {
	SilenceBuffer model.AudioBuffer
	SilenceStats  model.PreprocessingStats
	SilenceErr    error

	CompressBuffer model.AudioBuffer
	CompressStats  model.PreprocessingStats
	CompressErr    error

	SilenceCalls  int
	CompressCalls int
}

func (m *MockPreprocessor) RemoveSilence(ctx context.Context, buf model.AudioBuffer, opts model.PreprocessingOptions) (model.AudioBuffer, model.PreprocessingStats, error) {
	m.SilenceCalls++
	if m.SilenceErr != nil {
		return buf, model.PreprocessingStats{}, m.SilenceErr
	}
	return m.SilenceBuffer, m.SilenceStats, nil
}

func (m *MockPreprocessor) Compress(ctx context.Context, buf model.AudioBuffer, opts model.PreprocessingOptions) (model.AudioBuffer, model.PreprocessingStats, error) {
	m.CompressCalls++
	if m.CompressErr != nil {
		return buf, model.PreprocessingStats{}, m.CompressErr
	}
	return m.CompressBuffer, m.CompressStats, nil
}

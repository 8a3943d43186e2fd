package model

import (
	"path/filepath"
	"strings"
)

// AudioBuffer is an in-memory audio file plus its declared format. Buffers
// are immutable: each preprocessing stage produces a new buffer instead of
// mutating its input.
type AudioBuffer struct {
	Data []byte
	Ext  string // lowercase, no leading dot, e.g. "wav"
}

// NewAudioBuffer builds a buffer from raw bytes and the original filename.
func NewAudioBuffer(data []byte, filename string) AudioBuffer {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	return AudioBuffer{Data: data, Ext: ext}
}

func (b AudioBuffer) Size() int64 {
	return int64(len(b.Data))
}

// PreprocessingOptions configures the optional audio stages for one run.
type PreprocessingOptions struct {
	RemoveSilence        bool
	SilenceThresholdDBFS float64
	MinSilenceLenMs      int
	KeepSilenceMs        int

	Compress          bool
	TargetBitrateKbps int
	Channels          int
}

// DefaultPreprocessingOptions returns the speech-tuned defaults.
func DefaultPreprocessingOptions() PreprocessingOptions {
	return PreprocessingOptions{
		SilenceThresholdDBFS: -50,
		MinSilenceLenMs:      1000,
		KeepSilenceMs:        200,
		TargetBitrateKbps:    12,
		Channels:             1,
	}
}

// Normalize fills zero-valued tuning fields with defaults so callers may set
// only the flags they care about.
func (o PreprocessingOptions) Normalize() PreprocessingOptions {
	d := DefaultPreprocessingOptions()
	if o.SilenceThresholdDBFS == 0 {
		o.SilenceThresholdDBFS = d.SilenceThresholdDBFS
	}
	if o.MinSilenceLenMs <= 0 {
		o.MinSilenceLenMs = d.MinSilenceLenMs
	}
	if o.KeepSilenceMs < 0 {
		o.KeepSilenceMs = d.KeepSilenceMs
	}
	if o.TargetBitrateKbps <= 0 {
		o.TargetBitrateKbps = d.TargetBitrateKbps
	}
	if o.Channels <= 0 {
		o.Channels = d.Channels
	}
	return o
}

// PreprocessingStats records how much one or more stages shrank the input.
type PreprocessingStats struct {
	OriginalDurationMs int64 `json:"original_duration_ms"`
	FinalDurationMs    int64 `json:"final_duration_ms"`
	OriginalSizeBytes  int64 `json:"original_size_bytes"`
	FinalSizeBytes     int64 `json:"final_size_bytes"`
}

// Merge folds the stats of a later stage into s. The original figures stay
// pinned to the first stage that reported them; the final figures always
// track the latest stage.
func (s *PreprocessingStats) Merge(next PreprocessingStats) {
	if s.OriginalDurationMs == 0 {
		s.OriginalDurationMs = next.OriginalDurationMs
	}
	if s.OriginalSizeBytes == 0 {
		s.OriginalSizeBytes = next.OriginalSizeBytes
	}
	s.FinalDurationMs = next.FinalDurationMs
	s.FinalSizeBytes = next.FinalSizeBytes
}

// DurationReductionPercent reports how much shorter the output is, 0..100.
func (s PreprocessingStats) DurationReductionPercent() float64 {
	if s.OriginalDurationMs <= 0 {
		return 0
	}
	saved := s.OriginalDurationMs - s.FinalDurationMs
	if saved <= 0 {
		return 0
	}
	return float64(saved) / float64(s.OriginalDurationMs) * 100
}

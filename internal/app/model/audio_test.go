package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAudioBuffer(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantExt  string
	}{
		{name: "lowercase_extension", filename: "meeting.mp3", wantExt: "mp3"},
		{name: "uppercase_extension", filename: "MEETING.WAV", wantExt: "wav"},
		{name: "nested_path", filename: "recordings/2024/interview.m4a", wantExt: "m4a"},
		{name: "no_extension", filename: "audio", wantExt: ""},
		{name: "dotfile_style", filename: "clip.tar.ogg", wantExt: "ogg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := NewAudioBuffer([]byte("abc"), tt.filename)
			assert.Equal(t, tt.wantExt, buf.Ext)
			assert.Equal(t, int64(3), buf.Size())
		})
	}
}

func TestPreprocessingOptionsNormalize(t *testing.T) {
	t.Run("fills_defaults", func(t *testing.T) {
		opts := PreprocessingOptions{RemoveSilence: true}.Normalize()

		assert.Equal(t, -50.0, opts.SilenceThresholdDBFS)
		assert.Equal(t, 1000, opts.MinSilenceLenMs)
		assert.Equal(t, 200, opts.KeepSilenceMs)
		assert.Equal(t, 12, opts.TargetBitrateKbps)
		assert.Equal(t, 1, opts.Channels)
		assert.True(t, opts.RemoveSilence)
	})

	t.Run("keeps_explicit_values", func(t *testing.T) {
		opts := PreprocessingOptions{
			SilenceThresholdDBFS: -35,
			MinSilenceLenMs:      500,
			KeepSilenceMs:        100,
			TargetBitrateKbps:    24,
			Channels:             2,
		}.Normalize()

		assert.Equal(t, -35.0, opts.SilenceThresholdDBFS)
		assert.Equal(t, 500, opts.MinSilenceLenMs)
		assert.Equal(t, 100, opts.KeepSilenceMs)
		assert.Equal(t, 24, opts.TargetBitrateKbps)
		assert.Equal(t, 2, opts.Channels)
	})
}

func TestPreprocessingStatsMerge(t *testing.T) {
	var stats PreprocessingStats

	stats.Merge(PreprocessingStats{
		OriginalDurationMs: 600000,
		FinalDurationMs:    480000,
		OriginalSizeBytes:  10000,
		FinalSizeBytes:     8000,
	})
	stats.Merge(PreprocessingStats{
		OriginalDurationMs: 480000,
		FinalDurationMs:    480000,
		OriginalSizeBytes:  8000,
		FinalSizeBytes:     900,
	})

	// Originals stay pinned to the first stage, finals track the last.
	assert.Equal(t, int64(600000), stats.OriginalDurationMs)
	assert.Equal(t, int64(480000), stats.FinalDurationMs)
	assert.Equal(t, int64(10000), stats.OriginalSizeBytes)
	assert.Equal(t, int64(900), stats.FinalSizeBytes)
	assert.InDelta(t, 20.0, stats.DurationReductionPercent(), 0.01)
}

func TestDurationReductionPercent(t *testing.T) {
	tests := []struct {
		name  string
		stats PreprocessingStats
		want  float64
	}{
		{name: "zero_stats", stats: PreprocessingStats{}, want: 0},
		{name: "no_reduction", stats: PreprocessingStats{OriginalDurationMs: 1000, FinalDurationMs: 1000}, want: 0},
		{name: "grew", stats: PreprocessingStats{OriginalDurationMs: 1000, FinalDurationMs: 1200}, want: 0},
		{name: "half", stats: PreprocessingStats{OriginalDurationMs: 1000, FinalDurationMs: 500}, want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.stats.DurationReductionPercent(), 0.001)
		})
	}
}

package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/Teapot-Agency/whisper-trascription-app/internal/app/errors"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/model"
)

// Preprocessor runs the optional lossy stages on an uploaded buffer. Both
// stages shell out to ffmpeg/ffprobe; all temp files live in a per-call
// directory removed on every exit path.
type Preprocessor struct {
	logger *zap.Logger
}

func NewPreprocessor(logger *zap.Logger) *Preprocessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Preprocessor{logger: logger}
}

// RemoveSilence cuts detected silence runs out of the buffer, preserving
// KeepSilenceMs of silence at each junction. A buffer with no detected
// silence comes back unchanged with zero-delta stats.
func (p *Preprocessor) RemoveSilence(ctx context.Context, buf model.AudioBuffer, opts model.PreprocessingOptions) (model.AudioBuffer, model.PreprocessingStats, error) {
	opts = opts.Normalize()

	tmpDir, err := os.MkdirTemp("", "silence-*")
	if err != nil {
		return buf, model.PreprocessingStats{}, apperrors.Wrap(err, apperrors.KindPreprocessing, "create temp dir failed")
	}
	defer os.RemoveAll(tmpDir)

	inputPath := filepath.Join(tmpDir, "input."+bufferExt(buf))
	if err := os.WriteFile(inputPath, buf.Data, 0o600); err != nil {
		return buf, model.PreprocessingStats{}, apperrors.Wrap(err, apperrors.KindPreprocessing, "write temp input failed")
	}

	durationMs, err := probeDurationMs(ctx, inputPath)
	if err != nil {
		return buf, model.PreprocessingStats{}, apperrors.Wrap(err, apperrors.KindPreprocessing, "audio decode failed")
	}

	silences, err := p.detectSilence(ctx, inputPath, opts)
	if err != nil {
		return buf, model.PreprocessingStats{}, err
	}

	unchanged := model.PreprocessingStats{
		OriginalDurationMs: durationMs,
		FinalDurationMs:    durationMs,
		OriginalSizeBytes:  buf.Size(),
		FinalSizeBytes:     buf.Size(),
	}

	if len(silences) == 0 {
		p.logger.Debug("no silence detected, keeping original audio",
			zap.Int64("duration_ms", durationMs))
		return buf, unchanged, nil
	}

	segments := planKeepSegments(durationMs, silences, opts.KeepSilenceMs)
	if len(segments) == 0 || keptDurationMs(segments) >= durationMs {
		return buf, unchanged, nil
	}

	outputPath := filepath.Join(tmpDir, "trimmed.wav")
	if err := p.renderSegments(ctx, inputPath, outputPath, segments); err != nil {
		return buf, model.PreprocessingStats{}, err
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		return buf, model.PreprocessingStats{}, apperrors.Wrap(err, apperrors.KindPreprocessing, "read trimmed audio failed")
	}

	finalMs, err := probeDurationMs(ctx, outputPath)
	if err != nil {
		finalMs = keptDurationMs(segments)
	}

	p.logger.Info("silence removed",
		zap.Int64("original_ms", durationMs),
		zap.Int64("final_ms", finalMs),
		zap.Int("silent_segments", len(silences)))

	stats := model.PreprocessingStats{
		OriginalDurationMs: durationMs,
		FinalDurationMs:    finalMs,
		OriginalSizeBytes:  buf.Size(),
		FinalSizeBytes:     int64(len(data)),
	}
	return model.AudioBuffer{Data: data, Ext: "wav"}, stats, nil
}

// Compress re-encodes the buffer to low-bitrate mono Opus tuned for speech,
// stripping metadata and any non-audio streams.
func (p *Preprocessor) Compress(ctx context.Context, buf model.AudioBuffer, opts model.PreprocessingOptions) (model.AudioBuffer, model.PreprocessingStats, error) {
	opts = opts.Normalize()

	tmpDir, err := os.MkdirTemp("", "compress-*")
	if err != nil {
		return buf, model.PreprocessingStats{}, apperrors.Wrap(err, apperrors.KindPreprocessing, "create temp dir failed")
	}
	defer os.RemoveAll(tmpDir)

	inputPath := filepath.Join(tmpDir, "input."+bufferExt(buf))
	if err := os.WriteFile(inputPath, buf.Data, 0o600); err != nil {
		return buf, model.PreprocessingStats{}, apperrors.Wrap(err, apperrors.KindPreprocessing, "write temp input failed")
	}

	durationMs, err := probeDurationMs(ctx, inputPath)
	if err != nil {
		return buf, model.PreprocessingStats{}, apperrors.Wrap(err, apperrors.KindPreprocessing, "audio decode failed")
	}

	outputPath := filepath.Join(tmpDir, "compressed.ogg")
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y", "-i", inputPath,
		"-vn",
		"-map_metadata", "-1",
		"-ac", strconv.Itoa(opts.Channels),
		"-c:a", "libopus",
		"-b:a", fmt.Sprintf("%dk", opts.TargetBitrateKbps),
		"-application", "voip",
		outputPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return buf, model.PreprocessingStats{}, apperrors.Wrapf(err, apperrors.KindPreprocessing,
			"ffmpeg encode failed: %s", lastLine(stderr.String()))
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		return buf, model.PreprocessingStats{}, apperrors.Wrap(err, apperrors.KindPreprocessing, "read compressed audio failed")
	}

	finalMs, err := probeDurationMs(ctx, outputPath)
	if err != nil {
		finalMs = durationMs
	}

	p.logger.Info("audio compressed",
		zap.Int64("original_bytes", buf.Size()),
		zap.Int64("final_bytes", int64(len(data))),
		zap.Int("bitrate_kbps", opts.TargetBitrateKbps))

	stats := model.PreprocessingStats{
		OriginalDurationMs: durationMs,
		FinalDurationMs:    finalMs,
		OriginalSizeBytes:  buf.Size(),
		FinalSizeBytes:     int64(len(data)),
	}
	return model.AudioBuffer{Data: data, Ext: "ogg"}, stats, nil
}

// detectSilence runs the silencedetect filter and parses its stderr log.
func (p *Preprocessor) detectSilence(ctx context.Context, inputPath string, opts model.PreprocessingOptions) ([]silenceInterval, error) {
	filter := fmt.Sprintf("silencedetect=noise=%gdB:d=%g",
		opts.SilenceThresholdDBFS, float64(opts.MinSilenceLenMs)/1000)

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-hide_banner", "-nostats",
		"-i", inputPath,
		"-af", filter,
		"-f", "null", "-",
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.KindPreprocessing,
			"silence detection failed: %s", lastLine(stderr.String()))
	}
	return parseSilenceIntervals(stderr.String()), nil
}

// renderSegments cuts the planned segments out of the input and concatenates
// them into a single WAV file.
func (p *Preprocessor) renderSegments(ctx context.Context, inputPath, outputPath string, segments []segment) error {
	var filter strings.Builder
	for i, s := range segments {
		fmt.Fprintf(&filter, "[0:a]atrim=start=%.3f:end=%.3f,asetpts=PTS-STARTPTS[s%d];",
			float64(s.startMs)/1000, float64(s.endMs)/1000, i)
	}
	for i := range segments {
		fmt.Fprintf(&filter, "[s%d]", i)
	}
	fmt.Fprintf(&filter, "concat=n=%d:v=0:a=1[out]", len(segments))

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y", "-i", inputPath,
		"-filter_complex", filter.String(),
		"-map", "[out]",
		outputPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return apperrors.Wrapf(err, apperrors.KindPreprocessing,
			"ffmpeg trim failed: %s", lastLine(stderr.String()))
	}
	return nil
}

// probeDurationMs measures a file with ffprobe, in milliseconds.
func probeDurationMs(ctx context.Context, path string) (int64, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		path,
	)
	output, err := cmd.Output()
	if err != nil {
		return 0, err
	}

	var probe model.FFProbeOutput
	if err := json.Unmarshal(output, &probe); err != nil {
		return 0, err
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(probe.Format.Duration), 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable duration %q: %w", probe.Format.Duration, err)
	}
	return int64(math.Round(seconds * 1000)), nil
}

func bufferExt(buf model.AudioBuffer) string {
	if buf.Ext == "" {
		return "bin"
	}
	return buf.Ext
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[len(lines)-1])
}

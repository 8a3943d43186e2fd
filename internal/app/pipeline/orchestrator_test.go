package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Teapot-Agency/whisper-trascription-app/internal/app/errors"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/model"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/repository"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/repository/memory"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/testutil"
)

func inputBuffer() model.AudioBuffer {
	return model.AudioBuffer{Data: []byte("raw audio bytes"), Ext: "mp3"}
}

func newTestOrchestrator(pre *testutil.MockPreprocessor, tr *testutil.MockTranscriber, store repository.TranscriptionStore) *Orchestrator {
	if store == nil {
		store = memory.NewStore()
	}
	return NewOrchestrator(pre, tr, &testutil.MockImprover{}, store, nil)
}

func TestRunHappyPath(t *testing.T) {
	ctx := context.Background()
	pre := &testutil.MockPreprocessor{}
	tr := testutil.NewMockTranscriber()
	store := memory.NewStore()
	o := newTestOrchestrator(pre, tr, store)

	result, err := o.Run(ctx, inputBuffer(), model.PreprocessingOptions{}, Metadata{
		Name:     "Standup",
		Filename: "standup.mp3",
	})

	require.NoError(t, err)
	assert.Equal(t, StageCompleted, result.Stage)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, "Standup", result.Record.Name)
	assert.Equal(t, "standup.mp3", result.Record.Filename)
	assert.Equal(t, "This is a mock transcription result.", result.Record.Text)
	assert.Equal(t, "en", result.Record.Language)
	assert.NotEmpty(t, result.Record.Date)
	assert.False(t, result.Record.CreatedAt.IsZero())

	// No preprocessing requested, none performed.
	assert.Zero(t, pre.SilenceCalls)
	assert.Zero(t, pre.CompressCalls)

	records, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, result.Record.Text, records[0].Text)
}

func TestRunDefaultsRecordName(t *testing.T) {
	tr := testutil.NewMockTranscriber()
	o := newTestOrchestrator(&testutil.MockPreprocessor{}, tr, nil)

	result, err := o.Run(context.Background(), inputBuffer(), model.PreprocessingOptions{}, Metadata{
		Filename: "interview.wav",
	})

	require.NoError(t, err)
	assert.Contains(t, result.Record.Name, "interview.wav ")
	assert.Contains(t, result.Record.Name, time.Now().Format("2006-01-02"))
}

func TestRunPreprocessingOrder(t *testing.T) {
	processed := model.AudioBuffer{Data: []byte("tiny"), Ext: "ogg"}
	trimmed := model.AudioBuffer{Data: []byte("trimmed audio"), Ext: "wav"}
	pre := &testutil.MockPreprocessor{
		SilenceBuffer: trimmed,
		SilenceStats: model.PreprocessingStats{
			OriginalDurationMs: 600000,
			FinalDurationMs:    480000,
			OriginalSizeBytes:  15,
			FinalSizeBytes:     13,
		},
		CompressBuffer: processed,
		CompressStats: model.PreprocessingStats{
			OriginalDurationMs: 480000,
			FinalDurationMs:    480000,
			OriginalSizeBytes:  13,
			FinalSizeBytes:     4,
		},
	}
	tr := testutil.NewMockTranscriber()
	o := newTestOrchestrator(pre, tr, nil)

	opts := model.PreprocessingOptions{RemoveSilence: true, Compress: true}
	result, err := o.Run(context.Background(), inputBuffer(), opts, Metadata{Filename: "long.mp3"})

	require.NoError(t, err)
	assert.Equal(t, 1, pre.SilenceCalls)
	assert.Equal(t, 1, pre.CompressCalls)

	// The transcriber sees the fully preprocessed buffer.
	assert.Equal(t, processed, tr.LastBuffer())

	// Stats span the whole chain: first stage originals, last stage finals.
	assert.Equal(t, int64(600000), result.Stats.OriginalDurationMs)
	assert.Equal(t, int64(480000), result.Stats.FinalDurationMs)
	assert.Equal(t, int64(4), result.Stats.FinalSizeBytes)
	assert.InDelta(t, 20.0, result.Stats.DurationReductionPercent(), 0.01)
}

func TestRunPreprocessingFailureDegrades(t *testing.T) {
	pre := &testutil.MockPreprocessor{
		SilenceErr: apperrors.New(apperrors.KindPreprocessing, "ffmpeg exited with status 1"),
	}
	tr := testutil.NewMockTranscriber()
	store := memory.NewStore()
	o := newTestOrchestrator(pre, tr, store)

	opts := model.PreprocessingOptions{RemoveSilence: true}
	result, err := o.Run(context.Background(), inputBuffer(), opts, Metadata{Filename: "a.mp3"})

	require.NoError(t, err)
	assert.Equal(t, StageCompleted, result.Stage)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "silence removal failed, original audio used")

	// The unmodified upload went to the transcriber and was persisted.
	assert.Equal(t, inputBuffer(), tr.LastBuffer())
	records, err := store.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestRunBothStagesFailStillCompletes(t *testing.T) {
	pre := &testutil.MockPreprocessor{
		SilenceErr:  apperrors.New(apperrors.KindPreprocessing, "silencedetect failed"),
		CompressErr: apperrors.New(apperrors.KindPreprocessing, "libopus missing"),
	}
	tr := testutil.NewMockTranscriber()
	o := newTestOrchestrator(pre, tr, nil)

	opts := model.PreprocessingOptions{RemoveSilence: true, Compress: true}
	result, err := o.Run(context.Background(), inputBuffer(), opts, Metadata{Filename: "a.mp3"})

	require.NoError(t, err)
	assert.Equal(t, StageCompleted, result.Stage)
	assert.Len(t, result.Warnings, 2)
	assert.Equal(t, inputBuffer(), tr.LastBuffer())
}

func TestRunImprovesTranscriptWhenRequested(t *testing.T) {
	tr := testutil.NewMockTranscriber()
	improver := &testutil.MockImprover{Improved: "This is a mock transcription result, corrected."}
	store := memory.NewStore()
	o := NewOrchestrator(&testutil.MockPreprocessor{}, tr, improver, store, nil)

	result, err := o.Run(context.Background(), inputBuffer(), model.PreprocessingOptions{}, Metadata{
		Filename:          "a.mp3",
		ImproveTranscript: true,
	})

	require.NoError(t, err)
	assert.Equal(t, StageCompleted, result.Stage)
	assert.Equal(t, "This is a mock transcription result, corrected.", result.Record.Text)
	assert.Equal(t, 1, improver.CallCount)
	// The improver sees the raw transcript.
	require.Len(t, improver.Inputs, 1)
	assert.Equal(t, "This is a mock transcription result.", improver.Inputs[0])

	records, err := store.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "This is a mock transcription result, corrected.", records[0].Text)
}

func TestRunImprovementFailureKeepsRawTranscript(t *testing.T) {
	tr := testutil.NewMockTranscriber()
	improver := &testutil.MockImprover{Err: apperrors.New(apperrors.KindTransient, "improvement service rate limit exceeded")}
	store := memory.NewStore()
	o := NewOrchestrator(&testutil.MockPreprocessor{}, tr, improver, store, nil)

	result, err := o.Run(context.Background(), inputBuffer(), model.PreprocessingOptions{}, Metadata{
		Filename:          "a.mp3",
		ImproveTranscript: true,
	})

	require.NoError(t, err)
	assert.Equal(t, StageCompleted, result.Stage)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "transcript improvement failed, raw transcript used")
	assert.Equal(t, "This is a mock transcription result.", result.Record.Text)

	records, err := store.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "This is a mock transcription result.", records[0].Text)
}

func TestRunSkipsImproverByDefault(t *testing.T) {
	tr := testutil.NewMockTranscriber()
	improver := &testutil.MockImprover{Improved: "should never appear"}
	o := NewOrchestrator(&testutil.MockPreprocessor{}, tr, improver, memory.NewStore(), nil)

	result, err := o.Run(context.Background(), inputBuffer(), model.PreprocessingOptions{}, Metadata{Filename: "a.mp3"})

	require.NoError(t, err)
	assert.Zero(t, improver.CallCount)
	assert.Equal(t, "This is a mock transcription result.", result.Record.Text)
}

func TestRunTranscriptionFailureIsTerminal(t *testing.T) {
	tr := testutil.NewMockTranscriber()
	tr.Err = apperrors.New(apperrors.KindAuth, "OpenAI API key is invalid or missing")
	store := memory.NewStore()
	o := newTestOrchestrator(&testutil.MockPreprocessor{}, tr, store)

	result, err := o.Run(context.Background(), inputBuffer(), model.PreprocessingOptions{}, Metadata{Filename: "a.mp3"})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindAuth))
	assert.Equal(t, StageFailed, result.Stage)
	assert.Equal(t, StageTranscribing, result.FailedStage)
	assert.Equal(t, 1, tr.CallCount)

	// Nothing persisted on failure.
	records, getErr := store.GetAll(context.Background())
	require.NoError(t, getErr)
	assert.Empty(t, records)
}

func TestRunPersistenceFailureIsTerminal(t *testing.T) {
	tr := testutil.NewMockTranscriber()
	failing := &testutil.FailingStore{Err: apperrors.New(apperrors.KindStorage, "remote storage failed")}
	o := newTestOrchestrator(&testutil.MockPreprocessor{}, tr, failing)

	result, err := o.Run(context.Background(), inputBuffer(), model.PreprocessingOptions{}, Metadata{Filename: "a.mp3"})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindStorage))
	assert.Equal(t, StageFailed, result.Stage)
	assert.Equal(t, StagePersisting, result.FailedStage)
}

func TestRunSeedsSizeStatsWithoutPreprocessing(t *testing.T) {
	tr := testutil.NewMockTranscriber()
	o := newTestOrchestrator(&testutil.MockPreprocessor{}, tr, nil)

	buf := inputBuffer()
	result, err := o.Run(context.Background(), buf, model.PreprocessingOptions{}, Metadata{Filename: "a.mp3"})

	require.NoError(t, err)
	assert.Equal(t, buf.Size(), result.Stats.OriginalSizeBytes)
	assert.Equal(t, buf.Size(), result.Stats.FinalSizeBytes)
	assert.Zero(t, result.Stats.DurationReductionPercent())
}

func TestRunPassesLanguageHint(t *testing.T) {
	tr := testutil.NewMockTranscriber()
	o := newTestOrchestrator(&testutil.MockPreprocessor{}, tr, nil)

	_, err := o.Run(context.Background(), inputBuffer(), model.PreprocessingOptions{}, Metadata{
		Filename:     "a.mp3",
		LanguageHint: "cs",
	})

	require.NoError(t, err)
	require.Len(t, tr.Hints, 1)
	assert.Equal(t, "cs", tr.Hints[0])
}

func TestDefaultRecordName(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, "clip.mp3 2026-08-30 10:30:00", defaultRecordName("clip.mp3", now))
	assert.Equal(t, "Transcription 2026-08-30 10:30:00", defaultRecordName("", now))
	assert.Equal(t, "Transcription 2026-08-30 10:30:00", defaultRecordName("   ", now))
}

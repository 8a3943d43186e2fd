package pipeline

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/api"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/model"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/repository"
)

// Stage names the orchestrator's position in the run.
type Stage string

const (
	StageReceived      Stage = "Received"
	StagePreprocessing Stage = "Preprocessing"
	StageTranscribing  Stage = "Transcribing"
	StageImproving     Stage = "Improving"
	StagePersisting    Stage = "Persisting"
	StageCompleted     Stage = "Completed"
	StageFailed        Stage = "Failed"
)

// Preprocessor is the audio stage contract. Each stage returns a replacement
// buffer or an error; the orchestrator falls back to the stage's input on
// error instead of aborting the run.
type Preprocessor interface {
	RemoveSilence(ctx context.Context, buf model.AudioBuffer, opts model.PreprocessingOptions) (model.AudioBuffer, model.PreprocessingStats, error)
	Compress(ctx context.Context, buf model.AudioBuffer, opts model.PreprocessingOptions) (model.AudioBuffer, model.PreprocessingStats, error)
}

// Improver refines a raw transcript. Improvement is best effort: the
// orchestrator keeps the raw transcript and records a warning on error.
type Improver interface {
	Improve(ctx context.Context, text string) (string, error)
}

// Metadata is the caller-supplied description of one upload.
type Metadata struct {
	Name         string
	Filename     string
	LanguageHint string

	// ImproveTranscript runs the GPT correction pass on the raw transcript
	// before it is persisted.
	ImproveTranscript bool
}

// Result is what one pipeline run hands back to the caller.
type Result struct {
	Record   model.TranscriptionRecord `json:"record"`
	Stats    model.PreprocessingStats  `json:"stats"`
	Warnings []string                  `json:"warnings,omitempty"`

	// Stage is StageCompleted on success, StageFailed otherwise;
	// FailedStage then names where the run stopped.
	Stage       Stage `json:"stage"`
	FailedStage Stage `json:"failed_stage,omitempty"`
}

// Orchestrator sequences preprocessing, transcription and persistence for a
// single uploaded file. Runs are independent; concurrent runs share only the
// storage gateway.
type Orchestrator struct {
	preprocessor Preprocessor
	transcriber  api.Transcriber
	improver     Improver
	store        repository.TranscriptionStore
	logger       *zap.Logger
}

func NewOrchestrator(preprocessor Preprocessor, transcriber api.Transcriber, improver Improver, store repository.TranscriptionStore, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		preprocessor: preprocessor,
		transcriber:  transcriber,
		improver:     improver,
		store:        store,
		logger:       logger,
	}
}

// Run executes the full pipeline for one buffer. Preprocessing errors
// degrade to the pre-stage buffer with a warning; transcription and
// persistence errors terminate the run.
func (o *Orchestrator) Run(ctx context.Context, buf model.AudioBuffer, opts model.PreprocessingOptions, meta Metadata) (Result, error) {
	start := time.Now()
	opts = opts.Normalize()

	result := Result{Stage: StageReceived}
	result.Stats = model.PreprocessingStats{
		OriginalSizeBytes: buf.Size(),
		FinalSizeBytes:    buf.Size(),
	}

	name := strings.TrimSpace(meta.Name)
	if name == "" {
		name = defaultRecordName(meta.Filename, time.Now())
	}

	// Silence removal always precedes compression: compression is lossy
	// and should see the minimal signal.
	result.Stage = StagePreprocessing
	if opts.RemoveSilence {
		out, stats, err := o.preprocessor.RemoveSilence(ctx, buf, opts)
		if err != nil {
			o.warn(&result, StagePreprocessing, "silence removal", "original audio used", err)
		} else {
			buf = out
			result.Stats.Merge(stats)
		}
	}
	if opts.Compress {
		out, stats, err := o.preprocessor.Compress(ctx, buf, opts)
		if err != nil {
			o.warn(&result, StagePreprocessing, "compression", "original audio used", err)
		} else {
			buf = out
			result.Stats.Merge(stats)
		}
	}

	result.Stage = StageTranscribing
	transcription, err := o.transcriber.Transcribe(ctx, buf, meta.LanguageHint)
	if err != nil {
		return o.fail(result, StageTranscribing, start, err)
	}

	text := transcription.Text
	if meta.ImproveTranscript && o.improver != nil {
		result.Stage = StageImproving
		improved, err := o.improver.Improve(ctx, text)
		if err != nil {
			o.warn(&result, StageImproving, "transcript improvement", "raw transcript used", err)
		} else {
			text = improved
		}
	}

	result.Stage = StagePersisting
	now := time.Now().UTC()
	record := model.TranscriptionRecord{
		Name:      name,
		Filename:  meta.Filename,
		Date:      now.Format(model.DateLayout),
		Text:      text,
		Language:  transcription.Language,
		CreatedAt: now,
	}
	id, err := o.store.Add(ctx, record)
	if err != nil {
		return o.fail(result, StagePersisting, start, err)
	}
	record.ID = id

	result.Record = record
	result.Stage = StageCompleted
	observeRun("completed", time.Since(start))

	o.logger.Info("pipeline completed",
		zap.String("record_id", record.ID),
		zap.String("language", record.Language),
		zap.Float64("duration_reduction_pct", result.Stats.DurationReductionPercent()),
		zap.Int("warnings", len(result.Warnings)))
	return result, nil
}

func (o *Orchestrator) warn(result *Result, stage Stage, label, fallback string, err error) {
	o.logger.Warn("best-effort stage failed, continuing with its input",
		zap.String("stage", label), zap.Error(err))
	recordStageFailure(stage)
	result.Warnings = append(result.Warnings, label+" failed, "+fallback+": "+err.Error())
}

func (o *Orchestrator) fail(result Result, stage Stage, start time.Time, err error) (Result, error) {
	o.logger.Error("pipeline failed", zap.String("stage", string(stage)), zap.Error(err))
	recordStageFailure(stage)
	observeRun("failed", time.Since(start))
	result.Stage = StageFailed
	result.FailedStage = stage
	return result, err
}

func defaultRecordName(filename string, now time.Time) string {
	base := strings.TrimSpace(filename)
	if base == "" {
		base = "Transcription"
	}
	return base + " " + now.Format(model.DateLayout)
}

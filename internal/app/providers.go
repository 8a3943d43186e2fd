package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/api"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/api/improve"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/api/openai"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/api/whisper"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/audio"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/common"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/pipeline"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/repository"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/config"
)

// App bundles the constructed pipeline and its collaborators for the
// commands and the HTTP server.
type App struct {
	Logger       *zap.Logger
	Gateway      *repository.Gateway
	Orchestrator *pipeline.Orchestrator
}

func NewApp(logger *zap.Logger, gateway *repository.Gateway, orchestrator *pipeline.Orchestrator) *App {
	return &App{
		Logger:       logger,
		Gateway:      gateway,
		Orchestrator: orchestrator,
	}
}

// Close releases the storage backend.
func (a *App) Close() error {
	return a.Gateway.Close()
}

func provideLogger() *zap.Logger {
	return common.MustNewLogger(false)
}

// provideGateway probes the Supabase backend once; an empty DSN or a failed
// probe means local-fallback mode for the rest of the process.
func provideGateway(cfg *config.Config, logger *zap.Logger) *repository.Gateway {
	return repository.NewGateway(context.Background(), cfg.SupabaseDBURL, logger)
}

// provideTranscriber uses OpenAI's remote Whisper service, requires the
// OPENAI_API_KEY environment variable.
func provideTranscriber(cfg *config.Config, logger *zap.Logger) api.Transcriber {
	client := openai.NewClient(cfg.OpenAIAPIKey, "")
	return whisper.NewRemoteTranscriber(client, cfg.MaxUploadBytes, logger)
}

// provideImprover backs the optional transcript correction pass with the
// same OpenAI credential as transcription.
func provideImprover(cfg *config.Config, logger *zap.Logger) pipeline.Improver {
	client := openai.NewClient(cfg.OpenAIAPIKey, "")
	return improve.NewTranscriptImprover(client, logger)
}

func providePreprocessor(logger *zap.Logger) pipeline.Preprocessor {
	return audio.NewPreprocessor(logger)
}

func provideStore(gateway *repository.Gateway) repository.TranscriptionStore {
	return gateway
}

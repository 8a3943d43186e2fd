//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/pipeline"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/config"
)

// InitializeApp builds the pipeline and its collaborators from configuration.
func InitializeApp(cfg *config.Config) *App {
	wire.Build(
		provideLogger,
		provideGateway,
		provideTranscriber,
		provideImprover,
		providePreprocessor,
		provideStore,
		pipeline.NewOrchestrator,
		NewApp,
	)
	return &App{}
}

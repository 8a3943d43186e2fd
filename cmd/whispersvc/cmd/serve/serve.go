package serve

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/Teapot-Agency/whisper-trascription-app/internal/api/server"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/api/v1/handlers"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/app"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/config"
)

var listenAddr string

func init() {
	Cmd.Flags().StringVarP(&listenAddr, "listen", "l", "",
		"listen address, overrides LISTEN_ADDR (default :8080)")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the transcription HTTP API",
	Long: `Start the transcription HTTP API.

Uploads go to POST /api/v1/transcriptions as multipart forms; stored
transcripts are served from the same resource. Storage backend state is
exposed under /api/v1/storage.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.FromEnv()
		if err != nil {
			return err
		}
		if err := cfg.RequireOpenAIKey(); err != nil {
			return err
		}
		if listenAddr != "" {
			cfg.ListenAddr = listenAddr
		}

		application := app.InitializeApp(cfg)
		defer application.Close()

		transcriptions := handlers.NewTranscriptionHandler(
			application.Orchestrator, application.Gateway, cfg.MaxUploadBytes, cfg.TranscribeTimeout)
		storage := handlers.NewStorageHandler(application.Gateway)

		engine := server.New(application.Logger, transcriptions, storage)
		log.Printf("listening on %s\n", cfg.ListenAddr)
		return engine.Run(cfg.ListenAddr)
	},
}

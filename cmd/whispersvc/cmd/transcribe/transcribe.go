package transcribe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Teapot-Agency/whisper-trascription-app/internal/app"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/model"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/pipeline"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/config"
)

var (
	name          string
	language      string
	removeSilence bool
	compress      bool
	improve       bool
)

func init() {
	Cmd.Flags().StringVarP(&name, "name", "n", "",
		"display name for the stored transcription, defaults to filename plus timestamp")
	Cmd.Flags().StringVarP(&language, "language", "L", "",
		"language hint for the transcription service, empty means auto-detect")
	Cmd.Flags().BoolVar(&removeSilence, "remove-silence", false,
		"trim detected silence before transcription")
	Cmd.Flags().BoolVar(&compress, "compress", false,
		"re-encode to low-bitrate Opus before transcription")
	Cmd.Flags().BoolVar(&improve, "improve", false,
		"correct the transcript with GPT-4o-mini before storing it")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe <audio-file>",
	Short: "Run one audio file through the full pipeline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.FromEnv()
		if err != nil {
			return err
		}
		if err := cfg.RequireOpenAIKey(); err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read audio file: %w", err)
		}

		application := app.InitializeApp(cfg)
		defer application.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.TranscribeTimeout)
		defer cancel()

		opts := model.DefaultPreprocessingOptions()
		opts.RemoveSilence = removeSilence
		opts.Compress = compress

		filename := filepath.Base(args[0])
		result, err := application.Orchestrator.Run(ctx,
			model.NewAudioBuffer(data, filename),
			opts,
			pipeline.Metadata{Name: name, Filename: filename, LanguageHint: language, ImproveTranscript: improve},
		)
		if err != nil {
			return err
		}

		for _, warning := range result.Warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
		}
		if result.Stats.DurationReductionPercent() > 0 {
			fmt.Printf("duration reduced by %.1f%%\n", result.Stats.DurationReductionPercent())
		}
		fmt.Printf("[%s] %s\n\n%s\n", result.Record.Language, result.Record.ID, result.Record.Text)
		return nil
	},
}

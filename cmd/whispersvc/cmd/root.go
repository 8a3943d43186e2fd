package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Teapot-Agency/whisper-trascription-app/cmd/whispersvc/cmd/export"
	"github.com/Teapot-Agency/whisper-trascription-app/cmd/whispersvc/cmd/serve"
	"github.com/Teapot-Agency/whisper-trascription-app/cmd/whispersvc/cmd/transcribe"
	"github.com/Teapot-Agency/whisper-trascription-app/cmd/whispersvc/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "whispersvc",
	Short: "Upload audio, trim silence, compress and transcribe it with Whisper",
	Long: `whispersvc runs the audio transcription pipeline.

- Optionally removes silence and compresses uploads before transcription
- Sends audio to the OpenAI Whisper API
- Persists transcripts to Supabase Postgres, or in-process memory when no
  database is configured`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(version.Cmd)
}

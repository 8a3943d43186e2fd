package export

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Teapot-Agency/whisper-trascription-app/internal/app"
	appexport "github.com/Teapot-Agency/whisper-trascription-app/internal/app/export"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/config"
)

var (
	format     string
	outputPath string
)

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", "txt", "output format: txt or xlsx")
	Cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file, required for xlsx")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored transcriptions to txt or xlsx",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.FromEnv()
		if err != nil {
			return err
		}

		application := app.InitializeApp(cfg)
		defer application.Close()

		records, err := application.Gateway.GetAll(context.Background())
		if err != nil {
			return err
		}

		switch strings.ToLower(format) {
		case "txt":
			text := appexport.ToText(records)
			if outputPath == "" {
				fmt.Print(text)
				return nil
			}
			return os.WriteFile(outputPath, []byte(text), 0o644)
		case "xlsx":
			if outputPath == "" {
				return fmt.Errorf("--output is required for xlsx export")
			}
			return appexport.ToExcel(records, outputPath)
		default:
			return fmt.Errorf("unsupported format %q, expected txt or xlsx", format)
		}
	},
}

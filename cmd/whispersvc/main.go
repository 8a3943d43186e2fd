package main

import (
	"fmt"
	"os"

	"github.com/Teapot-Agency/whisper-trascription-app/cmd/whispersvc/cmd"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/config"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "configuration warning: %v\n", err)
	}

	cmd.Execute()
}

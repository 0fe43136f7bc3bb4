// Package main is the entry point for the mdconvert CLI, which runs the
// conversion engine locally without the HTTP server.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mdconvert [files...]",
	Short: "Convert documents to Markdown",
	Long: `mdconvert converts documents (PDF, Word, Excel, PowerPoint, OpenDocument,
EPUB, HTML, CSV, text, zip archives, images with OCR and audio with
transcription) into Markdown using the same engine as the HTTP service.

Markdown is written to stdout. With --json each file produces the same
envelope that POST /convert returns.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Same environment as the server
		_ = godotenv.Load()
	},
	RunE: runConvert,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

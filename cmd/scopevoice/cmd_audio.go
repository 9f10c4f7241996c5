package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// audioCmd transcribes one audio file and interprets the transcript.
var audioCmd = &cobra.Command{
	Use:   "audio [file]",
	Short: "Transcribe an audio file and interpret the transcript",
	Long: `Uploads the audio file for transcription, then runs the transcript
through the parsing pipeline.

Example:
  scopevoice audio recordings/utterance.wav`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		res, err := app.pipe.ProcessAudioFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Transcription: %q\n", res.Text)
		renderResult(os.Stdout, res)
		return nil
	},
}

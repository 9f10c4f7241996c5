package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// parseCmd interprets a single typed utterance.
var parseCmd = &cobra.Command{
	Use:   "parse [utterance]",
	Short: "Interpret one utterance and print the validated command",
	Long: `Runs one utterance through the full pipeline: semantic tier, pattern
tier, validation.

Example:
  scopevoice parse "move up a little"
  scopevoice parse nudge left`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		text := strings.Join(args, " ")
		res := app.pipe.ProcessText(cmd.Context(), text)
		fmt.Fprintf(os.Stdout, "%q\n", text)
		renderResult(os.Stdout, res)
		return nil
	},
}

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// replCmd runs the interactive text loop.
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive session: type utterances, see decisions",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		fmt.Println("scopevoice - type a command, or 'quit' to exit.")
		fmt.Println()

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				fmt.Println()
				return scanner.Err()
			}
			text := strings.TrimSpace(scanner.Text())
			if text == "" {
				continue
			}
			if text == "quit" || text == "exit" {
				return nil
			}
			res := app.pipe.ProcessText(cmd.Context(), text)
			renderResult(os.Stdout, res)
			fmt.Println()
		}
	},
}

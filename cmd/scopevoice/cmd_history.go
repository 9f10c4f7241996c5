package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scopevoice/internal/config"
	"scopevoice/internal/schema"
	"scopevoice/internal/store"
)

var historyLimit int

// historyCmd lists recent decisions from the audit store.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent command decisions from the audit log",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		history, err := store.Open(cfg.Store.Path, logger)
		if err != nil {
			return err
		}
		defer history.Close()

		decisions, err := history.Recent(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		if len(decisions) == 0 {
			fmt.Println("no decisions recorded yet")
			return nil
		}

		for _, d := range decisions {
			verdict := acceptedStyle.Render("accepted")
			if !d.Accepted {
				verdict = rejectedStyle.Render("withheld")
			}
			detail := ""
			if d.Magnitude != schema.MagnitudeNone {
				detail = fmt.Sprintf(" %s/%.1fmm", d.Magnitude, d.ValueMM)
			}
			fmt.Fprintf(os.Stdout, "%s  %-14s%s conf=%.2f src=%-13s %s  %q\n",
				d.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				d.Action, detail, d.Confidence, d.Source, verdict, d.RawText)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of decisions to show")
}

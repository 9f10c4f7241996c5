package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"scopevoice/internal/pipeline"
	"scopevoice/internal/schema"
)

// evalCase pairs an utterance with the expected interpretation. An empty
// action means "not a robot command": the pipeline should land on the safe
// default or a sub-threshold confidence.
type evalCase struct {
	text          string
	wantAction    schema.Action
	wantMagnitude schema.Magnitude
}

var evalCases = []evalCase{
	{"move up", schema.ActionMoveUp, schema.MagnitudeMid},
	{"move up a little", schema.ActionMoveUp, schema.MagnitudeSmall},
	{"go up a lot", schema.ActionMoveUp, schema.MagnitudeBig},
	{"move down", schema.ActionMoveDown, schema.MagnitudeMid},
	{"nudge left", schema.ActionMoveLeft, schema.MagnitudeSmall},
	{"go right", schema.ActionMoveRight, schema.MagnitudeMid},
	{"advance slightly", schema.ActionMoveForward, schema.MagnitudeSmall},
	{"pull back", schema.ActionRetract, schema.MagnitudeMid},
	{"retract", schema.ActionRetract, schema.MagnitudeMid},
	{"rotate left", schema.ActionRotateLeft, schema.MagnitudeMid},
	{"twist right a bit", schema.ActionRotateRight, schema.MagnitudeSmall},
	{"stop", schema.ActionStop, schema.MagnitudeNone},
	{"don't move", schema.ActionStop, schema.MagnitudeNone},
	{"stop going left", schema.ActionStop, schema.MagnitudeNone},
	{"how are you today", "", schema.MagnitudeNone},
	{"what's the weather like", "", schema.MagnitudeNone},
}

var evalConcurrency int

// evalCmd replays the expectation suite through the live pipeline.
var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Run the built-in utterance suite against the live pipeline",
	Long: `Processes every utterance in the built-in expectation suite and
reports mismatches. With an LLM provider configured this exercises the
semantic tier; without one it measures the deterministic tier alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		type outcome struct {
			evalCase
			res  pipeline.Result
			pass bool
		}

		outcomes := make([]outcome, len(evalCases))
		var mu sync.Mutex

		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(evalConcurrency)
		for i, ec := range evalCases {
			g.Go(func() error {
				res := app.pipe.ProcessText(ctx, ec.text)
				mu.Lock()
				outcomes[i] = outcome{evalCase: ec, res: res, pass: evalPass(ec, res)}
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		passed := 0
		for _, o := range outcomes {
			mark := acceptedStyle.Render("PASS")
			if !o.pass {
				mark = rejectedStyle.Render("FAIL")
			} else {
				passed++
			}
			fmt.Fprintf(os.Stdout, "%s  %-28q -> %-13s %s conf=%.2f src=%s\n",
				mark, o.text, o.res.Command.Action, o.res.Command.Magnitude,
				o.res.Command.Confidence, o.res.Source)
		}
		fmt.Fprintf(os.Stdout, "\n%d/%d passed\n", passed, len(outcomes))
		if passed < len(outcomes) {
			return fmt.Errorf("%d case(s) failed", len(outcomes)-passed)
		}
		return nil
	},
}

// evalPass checks one outcome. Non-command cases pass when the pipeline
// either exhausted both tiers or kept the confidence below the fallback bar.
func evalPass(ec evalCase, res pipeline.Result) bool {
	if ec.wantAction == "" {
		return res.Source == pipeline.SourceFailed || res.Command.Confidence < 0.5
	}
	return res.Command.Action == ec.wantAction && res.Command.Magnitude == ec.wantMagnitude
}

func init() {
	evalCmd.Flags().IntVar(&evalConcurrency, "concurrency", 4, "parallel pipeline invocations")
}

package main

import (
	"strings"
	"testing"
	"time"

	"scopevoice/internal/pipeline"
	"scopevoice/internal/schema"
)

func TestEvalPass(t *testing.T) {
	mustCmd := func(spec schema.Spec) schema.Command {
		cmd, err := schema.New(spec)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		return cmd
	}

	tests := []struct {
		name string
		ec   evalCase
		res  pipeline.Result
		want bool
	}{
		{
			name: "exact match passes",
			ec:   evalCase{"nudge left", schema.ActionMoveLeft, schema.MagnitudeSmall},
			res: pipeline.Result{Command: mustCmd(schema.Spec{
				Action: schema.ActionMoveLeft, Magnitude: schema.MagnitudeSmall,
				Confidence: 0.6, RawText: "nudge left",
			})},
			want: true,
		},
		{
			name: "wrong magnitude fails",
			ec:   evalCase{"nudge left", schema.ActionMoveLeft, schema.MagnitudeSmall},
			res: pipeline.Result{Command: mustCmd(schema.Spec{
				Action: schema.ActionMoveLeft, Confidence: 0.6, RawText: "nudge left",
			})},
			want: false,
		},
		{
			name: "non-command passes on exhausted tiers",
			ec:   evalCase{"how are you", "", schema.MagnitudeNone},
			res: pipeline.Result{
				Source:  pipeline.SourceFailed,
				Command: mustCmd(schema.Spec{Action: schema.ActionStop, Confidence: 0, RawText: "how are you"}),
			},
			want: true,
		},
		{
			name: "non-command passes on low confidence",
			ec:   evalCase{"how are you", "", schema.MagnitudeNone},
			res: pipeline.Result{
				Source: pipeline.SourceSemantic,
				Command: mustCmd(schema.Spec{
					Action: schema.ActionStop, Confidence: 0.2, RawText: "how are you",
				}),
			},
			want: true,
		},
		{
			name: "non-command fails when confidently classified",
			ec:   evalCase{"how are you", "", schema.MagnitudeNone},
			res: pipeline.Result{
				Source: pipeline.SourceSemantic,
				Command: mustCmd(schema.Spec{
					Action: schema.ActionMoveUp, Confidence: 0.9, RawText: "how are you",
				}),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := evalPass(tt.ec, tt.res); got != tt.want {
				t.Errorf("evalPass = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderResult(t *testing.T) {
	cmd, err := schema.New(schema.Spec{
		Action: schema.ActionMoveUp, Magnitude: schema.MagnitudeBig,
		Confidence: 0.6, RawText: "go way up",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res := pipeline.Result{
		Command:      cmd,
		Source:       pipeline.SourceDeterministic,
		Accepted:     false,
		Reason:       "confidence 0.60 < 0.70",
		ParseLatency: 3 * time.Millisecond,
	}

	var sb strings.Builder
	renderResult(&sb, res)
	out := sb.String()

	for _, want := range []string{"MOVE_UP", "BIG", "6.0mm", "0.60", "deterministic", "withheld", "0.60 < 0.70"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderResult_StopOmitsMagnitude(t *testing.T) {
	stop, err := schema.NewStop("stop", 1.0)
	if err != nil {
		t.Fatalf("NewStop: %v", err)
	}
	var sb strings.Builder
	renderResult(&sb, pipeline.Result{Command: stop, Source: pipeline.SourceDeterministic, Accepted: true, Reason: "ok"})
	if strings.Contains(sb.String(), "Magnitude") {
		t.Errorf("stop output should omit magnitude:\n%s", sb.String())
	}
}

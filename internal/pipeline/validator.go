// Package pipeline composes the parsing tiers, confidence validation, and
// the downstream handoff into one guaranteed-to-terminate flow: an utterance
// goes in, a schema-valid command plus provenance comes out, always.
package pipeline

import (
	"fmt"

	"scopevoice/internal/schema"
)

// DefaultConfidenceThreshold is the minimum confidence at which a non-stop
// command is considered safe to execute.
const DefaultConfidenceThreshold = 0.7

// Validator decides whether a parsed command is safe to execute. Stateless;
// the threshold is fixed at construction and safe to share across
// goroutines.
type Validator struct {
	threshold float64
}

// NewValidator creates a validator with the given confidence threshold.
func NewValidator(threshold float64) Validator {
	return Validator{threshold: threshold}
}

// Validate applies the acceptance policy.
//
// STOP commands always pass: refusing to execute a stop is the unsafe
// failure mode, while refusing a movement is always safe. Everything else
// must meet the threshold.
func (v Validator) Validate(cmd schema.Command) (bool, string) {
	if cmd.IsStop() {
		return true, "ok"
	}
	if cmd.Confidence < v.threshold {
		return false, fmt.Sprintf("confidence %.2f < %.2f", cmd.Confidence, v.threshold)
	}
	return true, "ok"
}

// Threshold returns the configured acceptance threshold.
func (v Validator) Threshold() float64 { return v.threshold }

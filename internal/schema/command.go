package schema

import (
	"encoding/json"
	"fmt"
)

// Command is a single validated robot command. It is produced exactly once,
// by a parsing tier or by the fallback's safe default, and is read-only
// afterwards: construct through New and treat the value as frozen.
//
// Invariants held by every constructed Command:
//  1. Confidence is in [0,1].
//  2. A STOP command has no magnitude and no displacement, regardless of
//     what the producer supplied.
//  3. A non-stop command always has a magnitude (MID when unspecified).
//  4. ValueMM carries the fixed lookup displacement for the magnitude unless
//     the producer supplied an explicit override.
type Command struct {
	Action     Action
	Magnitude  Magnitude
	Frame      string
	Confidence float64
	ValueMM    float64 // millimeters; 0 means none (STOP only)
	RawText    string
}

// Spec is the raw material for a Command. Zero-value fields take the
// documented defaults during construction.
type Spec struct {
	Action     Action
	Magnitude  Magnitude
	Confidence float64
	ValueMM    float64 // optional explicit displacement override
	RawText    string
}

// New builds a Command from a Spec, enforcing the schema invariants.
// Confidence outside [0,1] or an out-of-vocabulary action fails construction;
// values are never clamped.
func New(spec Spec) (Command, error) {
	if spec.Confidence < 0 || spec.Confidence > 1 {
		return Command{}, fmt.Errorf("%w: %v", ErrConfidenceRange, spec.Confidence)
	}
	if _, err := ParseAction(string(spec.Action)); err != nil {
		return Command{}, err
	}
	if _, err := ParseMagnitude(string(spec.Magnitude)); err != nil {
		return Command{}, err
	}

	cmd := Command{
		Action:     spec.Action,
		Magnitude:  spec.Magnitude,
		Frame:      FrameCamera,
		Confidence: spec.Confidence,
		ValueMM:    spec.ValueMM,
		RawText:    spec.RawText,
	}

	// STOP normalization runs unconditionally; a magnitude supplied by the
	// producer is discarded, not rejected.
	if cmd.Action == ActionStop {
		cmd.Magnitude = MagnitudeNone
		cmd.ValueMM = 0
		return cmd, nil
	}

	if cmd.Magnitude == MagnitudeNone {
		cmd.Magnitude = MagnitudeMid
	}
	if cmd.ValueMM == 0 {
		cmd.ValueMM = cmd.Magnitude.Millimeters()
	}
	return cmd, nil
}

// NewStop builds a STOP command carrying the given confidence. Used for
// stop-pattern matches and for the fallback's synthesized safe default.
func NewStop(rawText string, confidence float64) (Command, error) {
	return New(Spec{Action: ActionStop, Confidence: confidence, RawText: rawText})
}

// IsStop reports whether this is a stop directive.
func (c Command) IsStop() bool { return c.Action == ActionStop }

// wireCommand is the JSON shape exchanged with the semantic parser
// collaborator: action and confidence are required, magnitude may be null,
// frame is the fixed literal.
type wireCommand struct {
	Action     string  `json:"action"`
	Magnitude  *string `json:"magnitude"`
	Confidence float64 `json:"confidence"`
	Frame      string  `json:"frame"`
	ValueMM    float64 `json:"value_mm,omitempty"`
}

// Decode parses the collaborator wire shape into a Command, attaching the
// verbatim utterance for audit. Everything funnels through New, so wire input
// cannot bypass the construction invariants.
func Decode(data []byte, rawText string) (Command, error) {
	var w wireCommand
	if err := json.Unmarshal(data, &w); err != nil {
		return Command{}, fmt.Errorf("malformed command payload: %w", err)
	}
	action, err := ParseAction(w.Action)
	if err != nil {
		return Command{}, err
	}
	magnitude := MagnitudeNone
	if w.Magnitude != nil {
		magnitude, err = ParseMagnitude(*w.Magnitude)
		if err != nil {
			return Command{}, err
		}
	}
	return New(Spec{
		Action:     action,
		Magnitude:  magnitude,
		Confidence: w.Confidence,
		ValueMM:    w.ValueMM,
		RawText:    rawText,
	})
}

// MarshalJSON emits the collaborator wire shape plus raw_text for logs.
func (c Command) MarshalJSON() ([]byte, error) {
	var magnitude *string
	if c.Magnitude != MagnitudeNone {
		s := string(c.Magnitude)
		magnitude = &s
	}
	return json.Marshal(struct {
		Action     string   `json:"action"`
		Magnitude  *string  `json:"magnitude"`
		Confidence float64  `json:"confidence"`
		Frame      string   `json:"frame"`
		ValueMM    *float64 `json:"value_mm"`
		RawText    string   `json:"raw_text"`
	}{
		Action:     string(c.Action),
		Magnitude:  magnitude,
		Confidence: c.Confidence,
		Frame:      c.Frame,
		ValueMM:    valuePtr(c),
		RawText:    c.RawText,
	})
}

func valuePtr(c Command) *float64 {
	if c.Action == ActionStop {
		return nil
	}
	v := c.ValueMM
	return &v
}

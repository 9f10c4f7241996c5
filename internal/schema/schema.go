// Package schema defines the canonical robot command vocabulary shared by
// every parsing tier and every downstream consumer. The vocabulary is closed:
// an Action or Magnitude outside the sets below cannot be constructed, only
// rejected at the boundary.
package schema

import (
	"errors"
	"fmt"
)

// Action is a discrete motion, rotation, or stop directive for the endoscope.
type Action string

const (
	ActionMoveForward Action = "MOVE_FORWARD"
	ActionRetract     Action = "RETRACT"
	ActionMoveLeft    Action = "MOVE_LEFT"
	ActionMoveRight   Action = "MOVE_RIGHT"
	ActionMoveUp      Action = "MOVE_UP"
	ActionMoveDown    Action = "MOVE_DOWN"
	ActionRotateLeft  Action = "ROTATE_LEFT"
	ActionRotateRight Action = "ROTATE_RIGHT"
	ActionStop        Action = "STOP"
)

// Actions lists every valid action literal in declaration order.
func Actions() []Action {
	return []Action{
		ActionMoveForward, ActionRetract,
		ActionMoveLeft, ActionMoveRight,
		ActionMoveUp, ActionMoveDown,
		ActionRotateLeft, ActionRotateRight,
		ActionStop,
	}
}

// Magnitude is a categorical movement size. The zero value means "no
// magnitude" and is only legal on STOP commands after normalization.
type Magnitude string

const (
	MagnitudeNone  Magnitude = ""
	MagnitudeSmall Magnitude = "SMALL"
	MagnitudeMid   Magnitude = "MID"
	MagnitudeBig   Magnitude = "BIG"
)

// Millimeters returns the fixed displacement bound to this magnitude.
// The mapping is a closed lookup: SMALL=2.0, MID=4.0, BIG=6.0.
func (m Magnitude) Millimeters() float64 {
	switch m {
	case MagnitudeSmall:
		return 2.0
	case MagnitudeMid:
		return 4.0
	case MagnitudeBig:
		return 6.0
	}
	return 0
}

// FrameCamera is the only supported coordinate frame. The field exists on
// Command so additional frames can be added without a wire format change.
const FrameCamera = "CAMERA"

// Schema violations. Construction rejects bad input outright; nothing is
// clamped or coerced into a nearby valid value.
var (
	ErrConfidenceRange  = errors.New("confidence outside [0,1]")
	ErrUnknownAction    = errors.New("unknown action")
	ErrUnknownMagnitude = errors.New("unknown magnitude")
)

// ParseAction maps a wire literal to an Action.
func ParseAction(s string) (Action, error) {
	for _, a := range Actions() {
		if s == string(a) {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// ParseMagnitude maps a wire literal to a Magnitude. The empty string parses
// to MagnitudeNone, matching a JSON null on the wire.
func ParseMagnitude(s string) (Magnitude, error) {
	switch Magnitude(s) {
	case MagnitudeNone, MagnitudeSmall, MagnitudeMid, MagnitudeBig:
		return Magnitude(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMagnitude, s)
}

// Package parser implements the deterministic pattern tier: an instant,
// offline mapping from transcribed text to a robot command. It holds no
// state, touches no network, and never fails — when nothing matches it
// simply has no opinion.
//
// Matching runs through fixed, non-reorderable tiers:
//
//	1. stop cues        — safety critical, always checked first
//	2. rotation cues    — before bare left/right
//	3. direction cues   — fixed family order, first family with a match wins
//
// The tier order is a safety property, not an implementation detail:
// "stop going left" must resolve to STOP, never MOVE_LEFT.
package parser

import (
	"regexp"
	"strings"

	"scopevoice/internal/schema"
)

// Confidence carried by every pattern match. Deliberately below the
// validator's default threshold: a pattern match is a fallback candidate,
// not an execution-safe result on its own.
const Confidence = 0.6

var (
	stopRE = regexp.MustCompile(`\b(stop|halt|freeze|hold|don'?t\s+move)\b`)

	rotateLeftRE  = regexp.MustCompile(`\b(rotate\s+left|twist\s+left|turn\s+left|counter[- ]?clockwise)\b`)
	rotateRightRE = regexp.MustCompile(`\b(rotate\s+right|twist\s+right|turn\s+right|clockwise)\b`)

	// Family order is load-bearing for multi-directional utterances: the
	// first family in this list with any match wins, even if a later
	// family's cue appears earlier in the sentence.
	directionPatterns = []struct {
		re     *regexp.Regexp
		action schema.Action
	}{
		{regexp.MustCompile(`\b(up|raise|higher)\b`), schema.ActionMoveUp},
		{regexp.MustCompile(`\b(down|lower)\b`), schema.ActionMoveDown},
		{regexp.MustCompile(`\b(left)\b`), schema.ActionMoveLeft},
		{regexp.MustCompile(`\b(right)\b`), schema.ActionMoveRight},
		{regexp.MustCompile(`\b(forward|advance|push|deeper)\b`), schema.ActionMoveForward},
		{regexp.MustCompile(`\b(back|retract|pull|withdraw)\b`), schema.ActionRetract},
	}

	smallRE = regexp.MustCompile(`\b(a\s+little|slightly|tiny|nudge|bit|smidge)\b`)
	bigRE   = regexp.MustCompile(`\b(a\s+lot|big|far|much|significantly|way)\b`)
)

// Parser is the deterministic pattern tier. Stateless; safe for concurrent
// use from any number of goroutines.
type Parser struct{}

// New returns a deterministic pattern parser.
func New() *Parser { return &Parser{} }

// Parse maps text to a command. The boolean is false when no pattern
// matched; that is a normal outcome, not an error.
func (p *Parser) Parse(text string) (schema.Command, bool) {
	lower := strings.ToLower(text)

	if stopRE.MatchString(lower) {
		cmd, err := schema.NewStop(text, Confidence)
		if err != nil {
			return schema.Command{}, false
		}
		return cmd, true
	}

	if rotateLeftRE.MatchString(lower) {
		return p.build(schema.ActionRotateLeft, lower, text)
	}
	if rotateRightRE.MatchString(lower) {
		return p.build(schema.ActionRotateRight, lower, text)
	}

	for _, dp := range directionPatterns {
		if dp.re.MatchString(lower) {
			return p.build(dp.action, lower, text)
		}
	}

	return schema.Command{}, false
}

func (p *Parser) build(action schema.Action, lower, raw string) (schema.Command, bool) {
	cmd, err := schema.New(schema.Spec{
		Action:     action,
		Magnitude:  magnitudeOf(lower),
		Confidence: Confidence,
		RawText:    raw,
	})
	if err != nil {
		return schema.Command{}, false
	}
	return cmd, true
}

// magnitudeOf scans the whole utterance independently of which action
// matched. Small cues are checked before big cues; neither means MID.
func magnitudeOf(lower string) schema.Magnitude {
	if smallRE.MatchString(lower) {
		return schema.MagnitudeSmall
	}
	if bigRE.MatchString(lower) {
		return schema.MagnitudeBig
	}
	return schema.MagnitudeMid
}

package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"scopevoice/internal/schema"
)

// DefaultFallbackThreshold is the minimum confidence at which a semantic
// tier result is accepted without consulting the deterministic tier. It is
// intentionally lower than, and independent from, the validator threshold: a
// command can be selected here and still be withheld from execution later.
const DefaultFallbackThreshold = 0.5

// Source tags which tier produced a command.
type Source string

const (
	SourceSemantic      Source = "semantic"
	SourceDeterministic Source = "deterministic"
	SourceFailed        Source = "failed"
)

// SemanticParser is the LLM-backed tier contract. May be slow, may fail.
type SemanticParser interface {
	Parse(ctx context.Context, text string) (schema.Command, error)
}

// PatternParser is the deterministic tier contract. Never fails, only
// declines.
type PatternParser interface {
	Parse(text string) (schema.Command, bool)
}

// Fallback orders the tiers and guarantees a well-formed command for every
// input. It never returns an error and performs no retries; the semantic
// tier owns its own retry policy.
type Fallback struct {
	semantic  SemanticParser // may be nil when no provider is configured
	pattern   PatternParser
	threshold float64
	timeout   time.Duration
	logger    *zap.Logger
}

// NewFallback creates the orchestrator. threshold is the fallback-acceptance
// threshold; timeout bounds the semantic round-trip (0 means rely on the
// caller's context).
func NewFallback(semantic SemanticParser, pattern PatternParser, threshold float64, timeout time.Duration, logger *zap.Logger) *Fallback {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fallback{
		semantic:  semantic,
		pattern:   pattern,
		threshold: threshold,
		timeout:   timeout,
		logger:    logger,
	}
}

// ParseWithFallback classifies one utterance. Tier order is strict and
// short-circuiting: semantic, deterministic, synthesized safe STOP. A
// semantic timeout is treated identically to any other semantic failure.
func (f *Fallback) ParseWithFallback(ctx context.Context, text string) (schema.Command, Source) {
	if f.semantic != nil {
		semCtx := ctx
		if f.timeout > 0 {
			var cancel context.CancelFunc
			semCtx, cancel = context.WithTimeout(ctx, f.timeout)
			defer cancel()
		}

		cmd, err := f.semantic.Parse(semCtx, text)
		switch {
		case err != nil:
			f.logger.Warn("semantic tier failed, trying patterns",
				zap.String("text", text), zap.Error(err))
		case cmd.Confidence >= f.threshold:
			f.logger.Info("semantic tier accepted",
				zap.String("text", text),
				zap.String("action", string(cmd.Action)),
				zap.Float64("confidence", cmd.Confidence))
			return cmd, SourceSemantic
		default:
			f.logger.Warn("semantic confidence below fallback threshold, trying patterns",
				zap.String("text", text),
				zap.Float64("confidence", cmd.Confidence),
				zap.Float64("threshold", f.threshold))
		}
	}

	if cmd, ok := f.pattern.Parse(text); ok {
		f.logger.Info("deterministic tier matched",
			zap.String("text", text),
			zap.String("action", string(cmd.Action)))
		return cmd, SourceDeterministic
	}

	// Total exhaustion. The universal safe default keeps the never-fails
	// contract: a zero-confidence STOP the validator will still accept.
	f.logger.Error("all parsing tiers exhausted, returning safe STOP",
		zap.String("text", text))
	cmd, _ := schema.NewStop(text, 0.0)
	return cmd, SourceFailed
}

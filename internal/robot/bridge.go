// Package robot holds the downstream execution boundary. The pipeline hands
// every decision to a Bridge; what actually drives the instrument lives
// behind that interface and outside this repository.
package robot

import (
	"context"

	"go.uber.org/zap"

	"scopevoice/internal/schema"
)

// Bridge receives every pipeline decision, accepted or withheld.
type Bridge interface {
	Dispatch(ctx context.Context, cmd schema.Command, accepted bool, reason string) error
}

// LogBridge records decisions without driving hardware. Withheld movement
// commands are logged and dropped; the real transport would do the same.
type LogBridge struct {
	logger *zap.Logger
}

// NewLogBridge creates a logging-only bridge.
func NewLogBridge(logger *zap.Logger) *LogBridge {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogBridge{logger: logger}
}

// Dispatch logs the decision. Never fails.
func (b *LogBridge) Dispatch(ctx context.Context, cmd schema.Command, accepted bool, reason string) error {
	fields := []zap.Field{
		zap.String("action", string(cmd.Action)),
		zap.Float64("confidence", cmd.Confidence),
		zap.Bool("accepted", accepted),
	}
	if cmd.Magnitude != schema.MagnitudeNone {
		fields = append(fields,
			zap.String("magnitude", string(cmd.Magnitude)),
			zap.Float64("value_mm", cmd.ValueMM))
	}
	if !accepted {
		fields = append(fields, zap.String("reason", reason))
		b.logger.Warn("command withheld from execution", fields...)
		return nil
	}
	b.logger.Info("command dispatched", fields...)
	return nil
}

// NopBridge discards everything. Useful in tests.
type NopBridge struct{}

// Dispatch does nothing.
func (NopBridge) Dispatch(ctx context.Context, cmd schema.Command, accepted bool, reason string) error {
	return nil
}

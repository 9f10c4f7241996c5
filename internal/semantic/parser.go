package semantic

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"scopevoice/internal/schema"
)

// Parser turns an utterance into a Command by prompting an LLM for the wire
// shape and decoding the reply through the schema constructor. Every failure
// mode — transport, timeout, missing JSON, schema violation — surfaces as an
// error; the caller treats them all the same and falls back.
type Parser struct {
	client Client
	logger *zap.Logger
}

// NewParser creates a semantic parser over the given provider client.
func NewParser(client Client, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{client: client, logger: logger}
}

// Parse interprets one utterance. The context bounds the LLM round-trip;
// retry policy, if any, lives in the provider client, never here.
func (p *Parser) Parse(ctx context.Context, text string) (schema.Command, error) {
	start := time.Now()

	response, err := p.client.CompleteWithSystem(ctx, systemPrompt, userPrompt(text))
	if err != nil {
		p.logger.Warn("semantic parse failed",
			zap.String("text", text),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return schema.Command{}, fmt.Errorf("semantic: complete: %w", err)
	}

	payload := extractJSON(response)
	if payload == "" {
		p.logger.Warn("semantic response had no JSON object",
			zap.String("text", text),
			zap.String("response", response))
		return schema.Command{}, fmt.Errorf("semantic: no JSON object in response")
	}

	cmd, err := schema.Decode([]byte(payload), text)
	if err != nil {
		p.logger.Warn("semantic response rejected by schema",
			zap.String("text", text),
			zap.Error(err))
		return schema.Command{}, fmt.Errorf("semantic: %w", err)
	}

	p.logger.Debug("semantic parse succeeded",
		zap.String("text", text),
		zap.String("action", string(cmd.Action)),
		zap.Float64("confidence", cmd.Confidence),
		zap.Duration("elapsed", time.Since(start)))
	return cmd, nil
}

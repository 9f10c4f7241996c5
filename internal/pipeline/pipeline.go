package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"scopevoice/internal/schema"
)

// Transcriber converts captured audio into text. Implemented by the stt
// package; internals (model, endpoint) are its own concern.
type Transcriber interface {
	TranscribeFile(ctx context.Context, path string) (string, error)
}

// Bridge is the downstream execution consumer. It receives every decision,
// accepted or not, and chooses what to drive.
type Bridge interface {
	Dispatch(ctx context.Context, cmd schema.Command, accepted bool, reason string) error
}

// Recorder persists decisions for audit. Implemented by the history store.
type Recorder interface {
	RecordResult(ctx context.Context, sessionID string, res Result) error
}

// Result is the outcome of processing one utterance.
type Result struct {
	RequestID    string
	Text         string
	Command      schema.Command
	Source       Source
	Accepted     bool
	Reason       string
	STTLatency   time.Duration
	ParseLatency time.Duration
}

// Options carries the optional collaborators around the core parse+validate
// flow. Any of them may be nil.
type Options struct {
	Transcriber Transcriber
	Bridge      Bridge
	Recorder    Recorder
	Logger      *zap.Logger
}

// Pipeline is the end-to-end flow: audio or text in, validated command out.
// Safe for concurrent use; every invocation is independent.
type Pipeline struct {
	fallback    *Fallback
	validator   Validator
	transcriber Transcriber
	bridge      Bridge
	recorder    Recorder
	logger      *zap.Logger
	sessionID   string
}

// New assembles a pipeline around the fallback orchestrator and validator.
func New(fallback *Fallback, validator Validator, opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		fallback:    fallback,
		validator:   validator,
		transcriber: opts.Transcriber,
		bridge:      opts.Bridge,
		recorder:    opts.Recorder,
		logger:      logger,
		sessionID:   uuid.NewString(),
	}
}

// SessionID identifies this pipeline instance in the audit trail.
func (p *Pipeline) SessionID() string { return p.sessionID }

// ProcessText classifies one utterance and hands the decision downstream.
// It never fails to produce a Result; collaborator errors degrade to log
// entries.
func (p *Pipeline) ProcessText(ctx context.Context, text string) Result {
	return p.process(ctx, text, 0)
}

// ProcessAudioFile transcribes an audio file and classifies the transcript.
func (p *Pipeline) ProcessAudioFile(ctx context.Context, path string) (Result, error) {
	if p.transcriber == nil {
		return Result{}, fmt.Errorf("no transcriber configured")
	}
	start := time.Now()
	text, err := p.transcriber.TranscribeFile(ctx, path)
	if err != nil {
		return Result{}, fmt.Errorf("transcribe %s: %w", path, err)
	}
	return p.process(ctx, text, time.Since(start)), nil
}

func (p *Pipeline) process(ctx context.Context, text string, sttLatency time.Duration) Result {
	requestID := uuid.NewString()
	start := time.Now()
	cmd, source := p.fallback.ParseWithFallback(ctx, text)
	parseLatency := time.Since(start)

	accepted, reason := p.validator.Validate(cmd)

	res := Result{
		RequestID:    requestID,
		Text:         text,
		Command:      cmd,
		Source:       source,
		Accepted:     accepted,
		Reason:       reason,
		STTLatency:   sttLatency,
		ParseLatency: parseLatency,
	}

	p.logger.Info("utterance processed",
		zap.String("request_id", requestID),
		zap.String("text", text),
		zap.String("action", string(cmd.Action)),
		zap.String("source", string(source)),
		zap.Bool("accepted", accepted),
		zap.Duration("parse_latency", parseLatency))

	if p.bridge != nil {
		if err := p.bridge.Dispatch(ctx, cmd, accepted, reason); err != nil {
			p.logger.Error("bridge dispatch failed",
				zap.String("request_id", requestID), zap.Error(err))
		}
	}
	if p.recorder != nil {
		if err := p.recorder.RecordResult(ctx, p.sessionID, res); err != nil {
			p.logger.Error("audit record failed",
				zap.String("request_id", requestID), zap.Error(err))
		}
	}
	return res
}

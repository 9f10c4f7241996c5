package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"scopevoice/internal/config"
	"scopevoice/internal/parser"
	"scopevoice/internal/pipeline"
	"scopevoice/internal/robot"
	"scopevoice/internal/semantic"
	"scopevoice/internal/store"
	"scopevoice/internal/stt"
)

// app bundles the assembled pipeline and its closeable collaborators.
type app struct {
	cfg     config.Config
	pipe    *pipeline.Pipeline
	history *store.History
}

// newApp loads configuration and wires the full pipeline. The semantic tier
// is optional: without a provider key the deterministic tier still carries
// the never-fails contract.
func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	var semParser pipeline.SemanticParser
	if cfg.LLM.Provider != "" && cfg.LLM.APIKey != "" {
		client, err := semantic.NewClient(semantic.ClientOptions{
			Provider: semantic.Provider(cfg.LLM.Provider),
			APIKey:   cfg.LLM.APIKey,
			Model:    cfg.LLM.Model,
			BaseURL:  cfg.LLM.BaseURL,
			Timeout:  cfg.LLMTimeout(),
		})
		if err != nil {
			return nil, fmt.Errorf("build semantic client: %w", err)
		}
		semParser = semantic.NewParser(client, logger)
	} else {
		logger.Warn("no LLM provider configured; semantic tier disabled")
	}

	var transcriber pipeline.Transcriber
	if key := whisperKey(cfg); key != "" {
		transcriber = stt.NewWhisperClient(stt.WhisperConfig{
			APIKey:  key,
			Model:   cfg.STT.Model,
			Timeout: cfg.STTTimeout(),
		})
	}

	history, err := store.Open(cfg.Store.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}

	fallback := pipeline.NewFallback(
		semParser,
		parser.New(),
		cfg.Pipeline.FallbackThreshold,
		cfg.ParseTimeout(),
		logger,
	)
	validator := pipeline.NewValidator(cfg.Pipeline.ConfidenceThreshold)

	pipe := pipeline.New(fallback, validator, pipeline.Options{
		Transcriber: transcriber,
		Bridge:      robot.NewLogBridge(logger),
		Recorder:    history,
		Logger:      logger,
	})

	logger.Info("pipeline assembled",
		zap.String("provider", cfg.LLM.Provider),
		zap.Float64("confidence_threshold", cfg.Pipeline.ConfidenceThreshold),
		zap.Float64("fallback_threshold", cfg.Pipeline.FallbackThreshold),
		zap.String("session_id", pipe.SessionID()))

	return &app{cfg: cfg, pipe: pipe, history: history}, nil
}

// whisperKey resolves the transcription credential. Whisper rides on the
// OpenAI key regardless of which provider backs the semantic tier.
func whisperKey(cfg config.Config) string {
	if cfg.LLM.Provider == "openai" && cfg.LLM.APIKey != "" {
		return cfg.LLM.APIKey
	}
	return os.Getenv("OPENAI_API_KEY")
}

func (a *app) Close() {
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			logger.Warn("close history store", zap.Error(err))
		}
	}
}

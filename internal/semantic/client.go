// Package semantic implements the LLM-backed parsing tier. An LLM reads the
// transcribed utterance and emits the command wire shape as JSON; the schema
// package decides whether that JSON is acceptable. The tier can be slow and
// can fail; callers treat every failure identically and fall back.
package semantic

import "context"

// Client is the contract every LLM provider implements.
type Client interface {
	// Complete sends a bare prompt and returns the completion text.
	Complete(ctx context.Context, prompt string) (string, error)

	// CompleteWithSystem sends a prompt under a system instruction.
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Provider identifies an LLM backend.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

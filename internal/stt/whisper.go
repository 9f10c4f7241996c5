// Package stt transcribes captured audio into text for the parsing
// pipeline. Audio capture hardware stays outside this package; it only deals
// in files handed to it.
package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// WhisperConfig holds configuration for the Whisper transcription client.
type WhisperConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// DefaultWhisperConfig returns sensible defaults.
func DefaultWhisperConfig(apiKey string) WhisperConfig {
	return WhisperConfig{
		APIKey:  apiKey,
		BaseURL: "https://api.openai.com/v1",
		Model:   "whisper-1",
		Timeout: 60 * time.Second,
	}
}

// WhisperClient transcribes audio files through the OpenAI transcription
// endpoint.
type WhisperClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewWhisperClient creates a transcription client.
func NewWhisperClient(config WhisperConfig) *WhisperClient {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.openai.com/v1"
	}
	if config.Model == "" {
		config.Model = "whisper-1"
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	return &WhisperClient{
		apiKey:  config.APIKey,
		baseURL: config.BaseURL,
		model:   config.Model,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// TranscribeFile uploads an audio file and returns its transcript.
func (c *WhisperClient) TranscribeFile(ctx context.Context, path string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("whisper: API key not configured")
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("whisper: open audio: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("whisper: build form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("whisper: copy audio: %w", err)
	}
	if err := writer.WriteField("model", c.model); err != nil {
		return "", fmt.Errorf("whisper: build form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("whisper: build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", &body)
	if err != nil {
		return "", fmt.Errorf("whisper: build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("whisper: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("whisper: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("whisper: status %d: %s", resp.StatusCode, data)
	}

	var parsed transcriptionResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("whisper: decode response: %w", err)
	}
	return parsed.Text, nil
}

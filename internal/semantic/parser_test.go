package semantic

import (
	"context"
	"errors"
	"strings"
	"testing"

	"scopevoice/internal/schema"
)

// mockClient lets tests script the provider's behavior.
type mockClient struct {
	completeFunc func(ctx context.Context, system, user string) (string, error)
}

func (m *mockClient) Complete(ctx context.Context, prompt string) (string, error) {
	return m.completeFunc(ctx, "", prompt)
}

func (m *mockClient) CompleteWithSystem(ctx context.Context, system, user string) (string, error) {
	return m.completeFunc(ctx, system, user)
}

func TestParser_Parse(t *testing.T) {
	tests := []struct {
		name       string
		response   string
		respErr    error
		wantAction schema.Action
		wantErr    bool
	}{
		{
			name:       "clean JSON",
			response:   `{"action":"MOVE_UP","magnitude":"SMALL","confidence":0.95,"frame":"CAMERA"}`,
			wantAction: schema.ActionMoveUp,
		},
		{
			name:       "fenced JSON",
			response:   "```json\n{\"action\":\"RETRACT\",\"magnitude\":null,\"confidence\":0.8,\"frame\":\"CAMERA\"}\n```",
			wantAction: schema.ActionRetract,
		},
		{
			name:       "JSON with prose wrapper",
			response:   `Here is the parsed command: {"action":"STOP","magnitude":null,"confidence":1.0,"frame":"CAMERA"} as requested.`,
			wantAction: schema.ActionStop,
		},
		{
			name:    "transport error",
			respErr: errors.New("connection refused"),
			wantErr: true,
		},
		{
			name:     "no JSON at all",
			response: "I cannot parse that.",
			wantErr:  true,
		},
		{
			name:     "schema violation",
			response: `{"action":"FLY","magnitude":null,"confidence":0.9,"frame":"CAMERA"}`,
			wantErr:  true,
		},
		{
			name:     "confidence out of range",
			response: `{"action":"MOVE_UP","magnitude":null,"confidence":2.0,"frame":"CAMERA"}`,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockClient{
				completeFunc: func(ctx context.Context, system, user string) (string, error) {
					return tt.response, tt.respErr
				},
			}
			cmd, err := NewParser(client, nil).Parse(context.Background(), "whatever was said")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("want error, got %+v", cmd)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if cmd.Action != tt.wantAction {
				t.Errorf("action = %s, want %s", cmd.Action, tt.wantAction)
			}
			if cmd.RawText != "whatever was said" {
				t.Errorf("raw text = %q, want verbatim utterance", cmd.RawText)
			}
		})
	}
}

func TestParser_PromptCarriesUtterance(t *testing.T) {
	var gotSystem, gotUser string
	client := &mockClient{
		completeFunc: func(ctx context.Context, system, user string) (string, error) {
			gotSystem, gotUser = system, user
			return `{"action":"MOVE_LEFT","magnitude":null,"confidence":0.9,"frame":"CAMERA"}`, nil
		},
	}
	if _, err := NewParser(client, nil).Parse(context.Background(), "nudge left"); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !strings.Contains(gotUser, "nudge left") {
		t.Errorf("user prompt %q missing utterance", gotUser)
	}
	if !strings.Contains(gotSystem, "MOVE_FORWARD") || !strings.Contains(gotSystem, "STOP") {
		t.Error("system prompt missing action vocabulary")
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"nested object", `{"a":{"b":2}}`, `{"a":{"b":2}}`},
		{"prose around", `sure: {"a":1} done`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"braces inside strings", `{"a":"}{"}`, `{"a":"}{"}`},
		{"unbalanced", `{"a":1`, ""},
		{"no object", "nope", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.TrimSpace(extractJSON(tt.in))
			if got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

package pipeline

import (
	"strings"
	"testing"

	"scopevoice/internal/schema"
)

func TestValidator_StopAlwaysPasses(t *testing.T) {
	v := NewValidator(DefaultConfidenceThreshold)

	// Even a zero-confidence stop validates: refusing a stop is the unsafe
	// failure mode.
	stop, err := schema.NewStop("stop", 0.0)
	if err != nil {
		t.Fatalf("NewStop: %v", err)
	}
	ok, reason := v.Validate(stop)
	if !ok || reason != "ok" {
		t.Errorf("Validate(stop, 0.0) = (%v, %q), want (true, \"ok\")", ok, reason)
	}
}

func TestValidator_ThresholdPolicy(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		threshold  float64
		wantOK     bool
	}{
		{"well above", 0.95, 0.7, true},
		{"exactly at threshold", 0.7, 0.7, true},
		{"just below", 0.69, 0.7, false},
		{"pattern tier confidence rejected", 0.6, 0.7, false},
		{"custom low threshold accepts pattern tier", 0.6, 0.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := schema.New(schema.Spec{
				Action:     schema.ActionMoveUp,
				Confidence: tt.confidence,
				RawText:    "move up",
			})
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			ok, reason := NewValidator(tt.threshold).Validate(cmd)
			if ok != tt.wantOK {
				t.Errorf("Validate = (%v, %q), want accepted=%v", ok, reason, tt.wantOK)
			}
			if ok && reason != "ok" {
				t.Errorf("accepted reason = %q, want \"ok\"", reason)
			}
		})
	}
}

func TestValidator_ReasonStatesBothConfidences(t *testing.T) {
	cmd, err := schema.New(schema.Spec{
		Action:     schema.ActionMoveLeft,
		Confidence: 0.69,
		RawText:    "left",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ok, reason := NewValidator(0.7).Validate(cmd)
	if ok {
		t.Fatal("0.69 under a 0.70 threshold must be rejected")
	}
	if !strings.Contains(reason, "0.69") || !strings.Contains(reason, "0.70") {
		t.Errorf("reason = %q, want both measured and required confidence to two decimals", reason)
	}
}

package pipeline

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/goleak"

	"scopevoice/internal/parser"
	"scopevoice/internal/schema"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type captureBridge struct {
	cmd      schema.Command
	accepted bool
	reason   string
	calls    int
	err      error
}

func (b *captureBridge) Dispatch(ctx context.Context, cmd schema.Command, accepted bool, reason string) error {
	b.cmd, b.accepted, b.reason = cmd, accepted, reason
	b.calls++
	return b.err
}

type captureRecorder struct {
	sessionID string
	results   []Result
	err       error
}

func (r *captureRecorder) RecordResult(ctx context.Context, sessionID string, res Result) error {
	r.sessionID = sessionID
	r.results = append(r.results, res)
	return r.err
}

type stubTranscriber struct {
	text string
	err  error
}

func (s *stubTranscriber) TranscribeFile(ctx context.Context, path string) (string, error) {
	return s.text, s.err
}

func newTestPipeline(opts Options) *Pipeline {
	fb := NewFallback(nil, parser.New(), DefaultFallbackThreshold, 0, nil)
	return New(fb, NewValidator(DefaultConfidenceThreshold), opts)
}

func TestPipeline_ProcessText(t *testing.T) {
	bridge := &captureBridge{}
	recorder := &captureRecorder{}
	p := newTestPipeline(Options{Bridge: bridge, Recorder: recorder})

	res := p.ProcessText(context.Background(), "nudge left")

	if res.Command.Action != schema.ActionMoveLeft {
		t.Errorf("action = %s, want MOVE_LEFT", res.Command.Action)
	}
	if res.Source != SourceDeterministic {
		t.Errorf("source = %s, want deterministic", res.Source)
	}
	// Pattern tier confidence 0.6 sits below the 0.7 validation bar.
	if res.Accepted {
		t.Error("deterministic result must not be accepted at default threshold")
	}
	if res.RequestID == "" {
		t.Error("missing request id")
	}

	if bridge.calls != 1 {
		t.Fatalf("bridge calls = %d, want 1 (decisions are dispatched even when withheld)", bridge.calls)
	}
	if bridge.accepted != res.Accepted || bridge.reason != res.Reason {
		t.Error("bridge received a different decision than the result")
	}

	if len(recorder.results) != 1 {
		t.Fatalf("recorded %d results, want 1", len(recorder.results))
	}
	if recorder.sessionID != p.SessionID() {
		t.Errorf("recorded session %q, want %q", recorder.sessionID, p.SessionID())
	}
}

func TestPipeline_NeverFailsOnUnparseableInput(t *testing.T) {
	p := newTestPipeline(Options{})
	res := p.ProcessText(context.Background(), "what a lovely morning")
	if res.Source != SourceFailed {
		t.Fatalf("source = %s, want failed", res.Source)
	}
	if res.Command.Action != schema.ActionStop || res.Command.Confidence != 0 {
		t.Errorf("safe default = %+v, want zero-confidence STOP", res.Command)
	}
	// The safe default is a stop, so the validator accepts it.
	if !res.Accepted {
		t.Error("synthesized STOP must validate")
	}
}

func TestPipeline_CollaboratorErrorsDoNotSurface(t *testing.T) {
	bridge := &captureBridge{err: errors.New("dds link down")}
	recorder := &captureRecorder{err: errors.New("disk full")}
	p := newTestPipeline(Options{Bridge: bridge, Recorder: recorder})

	res := p.ProcessText(context.Background(), "stop")
	if res.Command.Action != schema.ActionStop || !res.Accepted {
		t.Errorf("result = %+v, want accepted STOP despite collaborator errors", res)
	}
}

func TestPipeline_ProcessAudioFile(t *testing.T) {
	p := newTestPipeline(Options{Transcriber: &stubTranscriber{text: "go way up"}})

	res, err := p.ProcessAudioFile(context.Background(), "utterance.wav")
	if err != nil {
		t.Fatalf("ProcessAudioFile: %v", err)
	}
	if res.Command.Action != schema.ActionMoveUp || res.Command.Magnitude != schema.MagnitudeBig {
		t.Errorf("command = %+v, want (MOVE_UP, BIG)", res.Command)
	}
	if res.Text != "go way up" {
		t.Errorf("text = %q", res.Text)
	}
}

func TestPipeline_ProcessAudioFileErrors(t *testing.T) {
	t.Run("no transcriber", func(t *testing.T) {
		p := newTestPipeline(Options{})
		if _, err := p.ProcessAudioFile(context.Background(), "x.wav"); err == nil {
			t.Fatal("want error without a transcriber")
		}
	})
	t.Run("transcription failure", func(t *testing.T) {
		p := newTestPipeline(Options{Transcriber: &stubTranscriber{err: errors.New("bad wav")}})
		if _, err := p.ProcessAudioFile(context.Background(), "x.wav"); err == nil {
			t.Fatal("want transcription error to surface")
		}
	})
}

// Package store persists the decision history: one row per processed
// utterance, keeping the verbatim text and the full outcome for audit. The
// parsing pipeline works without it; the store only ever observes.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"scopevoice/internal/pipeline"
	"scopevoice/internal/schema"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS decisions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	request_id TEXT NOT NULL,
	raw_text TEXT NOT NULL,
	action TEXT NOT NULL,
	magnitude TEXT,
	value_mm REAL,
	confidence REAL NOT NULL,
	source TEXT NOT NULL,
	accepted INTEGER NOT NULL,
	reason TEXT NOT NULL,
	stt_latency_ms REAL NOT NULL,
	parse_latency_ms REAL NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_decisions_session ON decisions(session_id);
CREATE INDEX IF NOT EXISTS idx_decisions_created ON decisions(created_at);
`

// Decision is one persisted pipeline outcome.
type Decision struct {
	ID           int64
	SessionID    string
	RequestID    string
	RawText      string
	Action       schema.Action
	Magnitude    schema.Magnitude
	ValueMM      float64
	Confidence   float64
	Source       pipeline.Source
	Accepted     bool
	Reason       string
	STTLatency   time.Duration
	ParseLatency time.Duration
	CreatedAt    time.Time
}

// History is the SQLite-backed decision log.
type History struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open initializes the history database at the given path, creating the
// directory and schema as needed.
func Open(path string, logger *zap.Logger) (*History, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logger.Debug("set busy_timeout failed", zap.Error(err))
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logger.Debug("set journal_mode failed", zap.Error(err))
	}

	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history schema: %w", err)
	}

	return &History{db: db, logger: logger}, nil
}

// RecordResult persists one pipeline result. Implements pipeline.Recorder.
func (h *History) RecordResult(ctx context.Context, sessionID string, res pipeline.Result) error {
	cmd := res.Command
	var magnitude any
	if cmd.Magnitude != schema.MagnitudeNone {
		magnitude = string(cmd.Magnitude)
	}
	var valueMM any
	if !cmd.IsStop() {
		valueMM = cmd.ValueMM
	}

	_, err := h.db.ExecContext(ctx, `
		INSERT INTO decisions (
			session_id, request_id, raw_text, action, magnitude, value_mm,
			confidence, source, accepted, reason,
			stt_latency_ms, parse_latency_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID, res.RequestID, res.Text, string(cmd.Action), magnitude, valueMM,
		cmd.Confidence, string(res.Source), res.Accepted, res.Reason,
		float64(res.STTLatency)/float64(time.Millisecond),
		float64(res.ParseLatency)/float64(time.Millisecond),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record decision: %w", err)
	}
	return nil
}

// Recent returns the latest n decisions, newest first.
func (h *History) Recent(ctx context.Context, n int) ([]Decision, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT id, session_id, request_id, raw_text, action, magnitude, value_mm,
		       confidence, source, accepted, reason,
		       stt_latency_ms, parse_latency_ms, created_at
		FROM decisions ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query decisions: %w", err)
	}
	defer rows.Close()

	var out []Decision
	for rows.Next() {
		var (
			d          Decision
			magnitude  sql.NullString
			valueMM    sql.NullFloat64
			sttMs      float64
			parseMs    float64
			createdRaw string
		)
		if err := rows.Scan(
			&d.ID, &d.SessionID, &d.RequestID, &d.RawText, (*string)(&d.Action),
			&magnitude, &valueMM, &d.Confidence, (*string)(&d.Source),
			&d.Accepted, &d.Reason, &sttMs, &parseMs, &createdRaw,
		); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		if magnitude.Valid {
			d.Magnitude = schema.Magnitude(magnitude.String)
		}
		if valueMM.Valid {
			d.ValueMM = valueMM.Float64
		}
		d.STTLatency = time.Duration(sttMs * float64(time.Millisecond))
		d.ParseLatency = time.Duration(parseMs * float64(time.Millisecond))
		if ts, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
			d.CreatedAt = ts
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (h *History) Close() error {
	return h.db.Close()
}

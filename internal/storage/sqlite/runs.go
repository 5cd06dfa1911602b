package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ProcessingRun records one pipeline invocation: its configuration snapshot,
// schema variant, and event counts. Runs make outputs reproducible — the
// exact configuration that produced a set of events can always be recovered.
type ProcessingRun struct {
	RunID           string
	ConfigJSON      string
	RealData        bool
	StartedAt       time.Time
	FinishedAt      *time.Time
	EventsProcessed int64
}

// BeginRun registers a new processing run and makes it the target of
// subsequent WriteEvent calls. configJSON is the serialized job
// configuration.
func (s *Store) BeginRun(configJSON []byte, realData bool) (string, error) {
	runID := uuid.New().String()
	_, err := s.db.Exec(`
		INSERT INTO processing_runs (run_id, config_json, real_data, started_at, events_processed)
		VALUES (?, ?, ?, ?, 0)`,
		runID, string(configJSON), realData, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("registering processing run: %w", err)
	}
	s.runID = runID
	return runID, nil
}

// FinishRun closes out a processing run with its final event count.
func (s *Store) FinishRun(runID string, eventsProcessed int64, finished time.Time) error {
	_, err := s.db.Exec(`
		UPDATE processing_runs
		SET finished_at = ?, events_processed = ?
		WHERE run_id = ?`,
		finished.UTC(), eventsProcessed, runID)
	if err != nil {
		return fmt.Errorf("finishing processing run %s: %w", runID, err)
	}
	return nil
}

// GetRun loads one processing run by ID.
func (s *Store) GetRun(runID string) (*ProcessingRun, error) {
	row := s.db.QueryRow(`
		SELECT run_id, config_json, real_data, started_at, finished_at, events_processed
		FROM processing_runs WHERE run_id = ?`, runID)

	var run ProcessingRun
	var finished *time.Time
	if err := row.Scan(&run.RunID, &run.ConfigJSON, &run.RealData,
		&run.StartedAt, &finished, &run.EventsProcessed); err != nil {
		return nil, fmt.Errorf("loading processing run %s: %w", runID, err)
	}
	run.FinishedAt = finished
	return &run, nil
}

func encodeAltWeights(weights []float32) (string, error) {
	if len(weights) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(weights)
	if err != nil {
		return "", fmt.Errorf("encoding alternative weights: %w", err)
	}
	return string(data), nil
}

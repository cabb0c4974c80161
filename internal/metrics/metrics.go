// Package metrics collects statistics for a pipeline run and renders them
// as JSON or a human-readable summary.
package metrics

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// RunMetrics collects statistics for a full pipeline run.
type RunMetrics struct {
	StartedAt   time.Time      `json:"started_at"`
	FinishedAt  time.Time      `json:"finished_at,omitempty"`
	Duration    time.Duration  `json:"duration_ms,omitempty"`
	Stages      []StageMetrics `json:"stages"`
	FailedStage string         `json:"failed_stage,omitempty"`
	Errors      []string       `json:"errors,omitempty"`
}

// StageMetrics records one stage invocation.
type StageMetrics struct {
	Name     string        `json:"name"`
	Model    string        `json:"model"`
	Duration time.Duration `json:"duration_ms"`
	Failed   bool          `json:"failed,omitempty"`
}

// New starts tracking a pipeline run.
func New() *RunMetrics {
	return &RunMetrics{StartedAt: time.Now()}
}

// AddStage records one stage invocation.
func (m *RunMetrics) AddStage(name, model string, duration time.Duration, err error) {
	sm := StageMetrics{Name: name, Model: model, Duration: duration}
	if err != nil {
		sm.Failed = true
		m.FailedStage = name
		m.Errors = append(m.Errors, fmt.Sprintf("%s: %v", name, err))
	}
	m.Stages = append(m.Stages, sm)
}

// Finish stamps the run end time.
func (m *RunMetrics) Finish() {
	m.FinishedAt = time.Now()
	m.Duration = m.FinishedAt.Sub(m.StartedAt)
}

// JSON renders the metrics as indented JSON.
func (m *RunMetrics) JSON() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// PrintSummary writes a human-readable run summary.
func (m *RunMetrics) PrintSummary(w io.Writer) {
	fmt.Fprintf(w, "\n=== Run Summary ===\n")
	for _, s := range m.Stages {
		status := "ok"
		if s.Failed {
			status = "FAILED"
		}
		fmt.Fprintf(w, "  %-16s %-12s %8s  [%s]\n", s.Name, s.Model, s.Duration.Round(time.Millisecond), status)
	}
	fmt.Fprintf(w, "  total: %s\n", m.Duration.Round(time.Millisecond))
	for _, e := range m.Errors {
		fmt.Fprintf(w, "  error: %s\n", e)
	}
}

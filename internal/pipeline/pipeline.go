// Package pipeline runs an ordered list of agents over a shared
// conversation. The stage order is fixed at construction; there is no
// branching, no loops, and no retries — the first stage failure aborts
// the run.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/musekit/muse/internal/agent"
	"github.com/musekit/muse/internal/chat"
	"github.com/musekit/muse/internal/metrics"
	"github.com/musekit/muse/internal/observability"
)

// Observer is notified after each stage's message is appended, so callers
// can stream incremental output before the run completes.
type Observer func(stage string, msg chat.Message)

// StageError attributes a failure to the stage that produced it.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Runner executes agents in a fixed sequence.
type Runner struct {
	stages   []*agent.Agent
	observer Observer
	metrics  *metrics.RunMetrics
}

// Option configures a Runner.
type Option func(*Runner)

// WithObserver streams each appended message to fn as the run progresses.
func WithObserver(fn Observer) Option {
	return func(r *Runner) { r.observer = fn }
}

// WithMetrics records per-stage timings into m.
func WithMetrics(m *metrics.RunMetrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// New creates a runner over the given stage order.
func New(stages []*agent.Agent, opts ...Option) *Runner {
	r := &Runner{stages: stages}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Stages returns the stage names in execution order.
func (r *Runner) Stages() []string {
	out := make([]string, len(r.stages))
	for i, s := range r.stages {
		out[i] = s.Name()
	}
	return out
}

// Run seeds a conversation with the initial message and invokes each stage
// in order, appending one message per stage. On failure the conversation as
// appended so far is returned alongside a StageError naming the failed
// stage; later stages are never invoked.
func (r *Runner) Run(ctx context.Context, initial chat.Message) (*chat.Conversation, error) {
	conv := chat.New()
	conv.Append(initial)

	for _, stage := range r.stages {
		if err := ctx.Err(); err != nil {
			return conv, &StageError{Stage: stage.Name(), Err: err}
		}

		stageCtx, span := observability.StartStageSpan(ctx, stage.Name(), stage.Model())
		start := time.Now()

		msg, err := stage.Respond(stageCtx, conv)

		if r.metrics != nil {
			r.metrics.AddStage(stage.Name(), stage.Model(), time.Since(start), err)
		}
		if err != nil {
			observability.RecordError(span, err)
			span.End()
			return conv, &StageError{Stage: stage.Name(), Err: err}
		}
		span.End()

		appended := conv.Append(msg)
		if r.observer != nil {
			r.observer(stage.Name(), appended)
		}
	}

	return conv, nil
}

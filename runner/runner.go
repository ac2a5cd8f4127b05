// Package runner orchestrates layered runs: it drives the decide/act
// loop of a safety-layered agent, refreshes the model when the layers
// escalate, and records everything in a ledger.
package runner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/felixgeelhaar/layerkit/domain/agent"
	"github.com/felixgeelhaar/layerkit/domain/ledger"
	"github.com/felixgeelhaar/layerkit/infrastructure/logging"
	"github.com/felixgeelhaar/layerkit/infrastructure/resilience"
	"github.com/felixgeelhaar/layerkit/infrastructure/statemachine"
	"github.com/felixgeelhaar/layerkit/infrastructure/telemetry"
)

const tracerName = "github.com/felixgeelhaar/layerkit/runner"

// Errors
var (
	// ErrNilAgent indicates no agent was configured.
	ErrNilAgent = errors.New("runner: agent is required")
	// ErrNoModelSource indicates the layers escalated but no source can
	// supply a fresh model.
	ErrNoModelSource = errors.New("runner: no model source configured")
	// ErrRunFailed indicates the run ended in the failed phase.
	ErrRunFailed = errors.New("runner: run failed")
)

// GoalFunc reports whether the model satisfies the run's goal.
type GoalFunc[M any] func(model M) bool

// Runner drives a layered agent until its goal is reached, a budget is
// spent, or the run stalls.
type Runner[M any, A comparable, D any] struct {
	agent      *agent.Layered[M, A, D]
	source     ModelSource[M]
	goal       GoalFunc[M]
	refresher  *resilience.Refresher[M]
	store      ledger.Store
	metrics    telemetry.Metrics
	tracer     trace.Tracer
	maxSteps   int
	stallLimit int
}

// Config contains configuration for the runner.
type Config[M any, A comparable, D any] struct {
	// Agent is the safety-layered agent to drive.
	Agent *agent.Layered[M, A, D]

	// Source supplies fresh models on escalation. Optional; without a
	// source any escalation stalls the run.
	Source ModelSource[M]

	// Goal ends the run successfully once it holds for the current
	// model. Optional; without a goal the run continues until a budget
	// is spent.
	Goal GoalFunc[M]

	// Store persists the run ledger. Optional.
	Store ledger.Store

	// Metrics records run metrics. Defaults to a no-op provider.
	Metrics telemetry.Metrics

	// MaxSteps bounds the number of applied actions (0 uses the
	// default of 100).
	MaxSteps int

	// StallLimit bounds consecutive model refreshes that leave the
	// agent undecided (0 uses the default of 3).
	StallLimit int

	// Refresh configures retry behavior for model fetches.
	Refresh resilience.RefresherConfig
}

// Result describes how a run ended.
type Result struct {
	// RunID identifies the run.
	RunID string
	// Phase is the terminal phase of the run.
	Phase statemachine.Phase
	// Steps is the number of applied actions.
	Steps int
	// Outcome describes why the run ended.
	Outcome string
	// Ledger holds the full record of the run.
	Ledger *ledger.Ledger
}

// Completed reports whether the run reached its goal.
func (r *Result) Completed() bool {
	return r.Phase == statemachine.PhaseCompleted
}

// New creates a runner with the given configuration.
func New[M any, A comparable, D any](config Config[M, A, D]) (*Runner[M, A, D], error) {
	if config.Agent == nil {
		return nil, ErrNilAgent
	}

	r := &Runner[M, A, D]{
		agent:      config.Agent,
		source:     config.Source,
		goal:       config.Goal,
		store:      config.Store,
		metrics:    config.Metrics,
		tracer:     otel.Tracer(tracerName),
		maxSteps:   config.MaxSteps,
		stallLimit: config.StallLimit,
	}

	// Set defaults
	if r.metrics == nil {
		r.metrics = &telemetry.NoopMetricsProvider{}
	}
	if r.maxSteps == 0 {
		r.maxSteps = 100
	}
	if r.stallLimit == 0 {
		r.stallLimit = 3
	}

	if config.Source != nil {
		refresher, err := resilience.NewRefresher(config.Source.Fetch, config.Refresh)
		if err != nil {
			return nil, err
		}
		r.refresher = refresher
	}

	return r, nil
}

// Run drives the agent until a terminal phase is reached. The returned
// result is non-nil even when the run fails.
func (r *Runner[M, A, D]) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	runLedger := ledger.New(runID)
	depth := r.agent.Depth()

	ctx, span := r.tracer.Start(ctx, "layerkit.run", trace.WithAttributes(
		attribute.String("run.id", runID),
		attribute.Int("run.depth", depth),
	))
	defer span.End()

	r.metrics.IncrementActiveRuns(ctx)
	defer r.metrics.DecrementActiveRuns(ctx)

	machine, err := statemachine.NewRunMachine()
	if err != nil {
		return nil, fmt.Errorf("failed to create state machine: %w", err)
	}
	machineCtx := statemachine.NewContext(r.maxSteps, r.stallLimit)
	interp := statemachine.NewInterpreter(machine, machineCtx)

	logging.Info().
		Add(logging.RunID(runID)).
		Add(logging.Depth(depth)).
		Msg("run started")

	interp.Start()
	defer interp.Stop()

	mutationLimit := 0
	if succ := r.agent.Successor(); succ != nil {
		mutationLimit = succ.MutationLimit()
	}
	runLedger.Append(ledger.NewEntry(ledger.EntryRunStarted, runID, 0, ledger.RunStartedDetails{
		Depth:         depth,
		MutationLimit: mutationLimit,
		MaxSteps:      r.maxSteps,
	}))

	var runErr error
	for !interp.IsTerminal() {
		select {
		case <-ctx.Done():
			interp.Fail("context cancelled")
			runLedger.Append(ledger.NewEntry(ledger.EntryRunFailed, runID, machineCtx.Step, nil))
			runErr = ctx.Err()
		default:
			runErr = r.step(ctx, runID, interp, machineCtx, runLedger)
		}
		if runErr != nil {
			break
		}
	}

	result := &Result{
		RunID:   runID,
		Phase:   interp.Phase(),
		Steps:   machineCtx.Step,
		Outcome: machineCtx.Outcome,
		Ledger:  runLedger,
	}

	r.finish(ctx, result, runLedger, span, runErr)
	return result, runErr
}

// step advances the run by one phase transition.
func (r *Runner[M, A, D]) step(ctx context.Context, runID string, interp *statemachine.Interpreter, machineCtx *statemachine.Context, runLedger *ledger.Ledger) error {
	// The goal may already hold, before any action is taken.
	if r.goal != nil && r.goal(r.agent.Z().Model()) {
		interp.Goal("goal reached")
		runLedger.Append(ledger.NewEntry(ledger.EntryRunCompleted, runID, machineCtx.Step, ledger.RunCompletedDetails{
			Steps:   machineCtx.Step,
			Outcome: machineCtx.Outcome,
		}))
		return nil
	}

	start := time.Now()
	decision := r.agent.Decide()
	duration := time.Since(start)

	depth := r.agent.Depth()
	r.metrics.RecordDecision(ctx, runID, depth, decision.IsAction(), duration)

	details := ledger.DecisionDetails{
		DecisionType: string(decision.Type),
		Depth:        depth,
		Duration:     duration,
	}
	if decision.IsAction() {
		details.Action, _ = json.Marshal(decision.Action)
	}
	runLedger.Append(ledger.NewEntry(ledger.EntryDecision, runID, machineCtx.Step, details))

	logging.Debug().
		Add(logging.RunID(runID)).
		Add(logging.Step(machineCtx.Step)).
		Add(logging.Decision(decision.Type)).
		Add(logging.Duration(duration)).
		Msg("decision made")

	if decision.IsAction() {
		return r.applyAction(ctx, runID, decision.Action, interp, machineCtx, runLedger)
	}
	return r.refreshModel(ctx, runID, interp, machineCtx, runLedger)
}

// applyAction commits and applies an agreed action.
func (r *Runner[M, A, D]) applyAction(ctx context.Context, runID string, action A, interp *statemachine.Interpreter, machineCtx *statemachine.Context, runLedger *ledger.Ledger) error {
	if !interp.Commit() {
		// Step budget spent.
		interp.Budget("step budget exhausted")
		runLedger.Append(ledger.NewEntry(ledger.EntryRunStalled, runID, machineCtx.Step, ledger.RunCompletedDetails{
			Steps:   machineCtx.Step,
			Outcome: machineCtx.Outcome,
		}))
		return nil
	}

	r.agent.Act(action)
	r.metrics.RecordAction(ctx, runID, r.agent.Depth())

	actionJSON, _ := json.Marshal(action)
	runLedger.Append(ledger.NewEntry(ledger.EntryActionApplied, runID, machineCtx.Step, ledger.ActionDetails{
		Action: actionJSON,
	}))

	if r.goal != nil && r.goal(r.agent.Z().Model()) {
		interp.Goal("goal reached")
		runLedger.Append(ledger.NewEntry(ledger.EntryRunCompleted, runID, machineCtx.Step, ledger.RunCompletedDetails{
			Steps:   machineCtx.Step,
			Outcome: machineCtx.Outcome,
		}))
		return nil
	}

	interp.Acted()
	return nil
}

// refreshModel handles an escalation by fetching a fresh model.
func (r *Runner[M, A, D]) refreshModel(ctx context.Context, runID string, interp *statemachine.Interpreter, machineCtx *statemachine.Context, runLedger *ledger.Ledger) error {
	runLedger.Append(ledger.NewEntry(ledger.EntryModelRequested, runID, machineCtx.Step, nil))

	if r.refresher == nil {
		interp.Stall("escalated with no model source")
		runLedger.Append(ledger.NewEntry(ledger.EntryRunStalled, runID, machineCtx.Step, ledger.RunCompletedDetails{
			Steps:   machineCtx.Step,
			Outcome: machineCtx.Outcome,
		}))
		return nil
	}

	if !interp.RequestModel() {
		// Stall limit reached.
		interp.Stall("no decision after repeated refreshes")
		runLedger.Append(ledger.NewEntry(ledger.EntryRunStalled, runID, machineCtx.Step, ledger.RunCompletedDetails{
			Steps:   machineCtx.Step,
			Outcome: machineCtx.Outcome,
		}))
		return nil
	}

	model, attempts, err := r.refresher.FetchWithAttempts(ctx)
	if err != nil {
		interp.Fail("model refresh failed")
		runLedger.Append(ledger.NewEntry(ledger.EntryRunFailed, runID, machineCtx.Step, nil))

		logging.Error().
			Add(logging.RunID(runID)).
			Add(logging.Attempts(attempts)).
			Add(logging.ErrorField(err)).
			Msg("model refresh failed")

		return fmt.Errorf("%w: %v", ErrRunFailed, err)
	}

	r.agent.UpdateModel(model)
	r.metrics.RecordModelUpdate(ctx, runID, attempts)
	runLedger.Append(ledger.NewEntry(ledger.EntryModelUpdated, runID, machineCtx.Step, ledger.ModelUpdateDetails{
		Attempts: attempts,
		Source:   "source",
	}))

	logging.Info().
		Add(logging.RunID(runID)).
		Add(logging.Step(machineCtx.Step)).
		Add(logging.Attempts(attempts)).
		Msg("model updated")

	interp.Refreshed()
	return nil
}

// finish records the terminal phase, flushes the ledger, and closes
// out telemetry.
func (r *Runner[M, A, D]) finish(ctx context.Context, result *Result, runLedger *ledger.Ledger, span trace.Span, runErr error) {
	span.SetAttributes(
		attribute.String("run.phase", string(result.Phase)),
		attribute.Int("run.steps", result.Steps),
	)
	if runErr != nil {
		span.RecordError(runErr)
		span.SetStatus(codes.Error, result.Outcome)
	} else {
		span.SetStatus(codes.Ok, result.Outcome)
	}

	event := logging.Info()
	if runErr != nil {
		event = logging.Error()
	}
	event.
		Add(logging.RunID(result.RunID)).
		Add(logging.Step(result.Steps)).
		Add(logging.Outcome(result.Outcome)).
		Add(logging.Str("phase", string(result.Phase))).
		Add(logging.ErrorField(runErr)).
		Msg("run finished")

	if r.store != nil {
		// The run context may already be cancelled; the ledger flush
		// should still happen.
		flushCtx := ctx
		if flushCtx.Err() != nil {
			flushCtx = context.WithoutCancel(ctx)
		}
		if err := r.store.Append(flushCtx, runLedger.Entries()...); err != nil {
			logging.Warn().
				Add(logging.RunID(result.RunID)).
				Add(logging.ErrorField(err)).
				Msg("failed to persist run ledger")
		}
	}
}

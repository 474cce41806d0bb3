// Package executor applies validated rename plans to the filesystem.
package executor

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/Nomadcxx/anirename/internal/logging"
	"github.com/Nomadcxx/anirename/internal/planner"
)

// OpResult records the outcome of a single operation
type OpResult struct {
	Operation  planner.Operation
	Applied    bool
	Skipped    bool
	SkipReason string
	Error      error
}

// Report summarizes an apply run
type Report struct {
	RunID    string
	DryRun   bool
	Applied  int
	Skipped  int
	Failed   int
	Results  []OpResult
	LogPath  string
	Duration time.Duration
}

// Executor applies plan operations in order. Failures are isolated per
// operation; there is no rollback.
type Executor struct {
	dryRun   bool
	opLogDir string
	log      *logging.Logger
}

// New creates an Executor
func New(log *logging.Logger, options ...func(*Executor)) *Executor {
	if log == nil {
		log = logging.Nop()
	}
	ex := &Executor{log: log}
	for _, opt := range options {
		opt(ex)
	}
	return ex
}

// WithDryRun reports what would happen without touching the filesystem
func WithDryRun(dryRun bool) func(*Executor) {
	return func(e *Executor) {
		e.dryRun = dryRun
	}
}

// WithOperationLogDir enables per-run operation logs in the given directory
func WithOperationLogDir(dir string) func(*Executor) {
	return func(e *Executor) {
		e.opLogDir = dir
	}
}

// Apply revalidates the plan and applies its operations one by one. A
// failed operation is recorded and execution continues with the next
// one. The returned report covers every operation that was attempted.
func (e *Executor) Apply(ctx context.Context, plan *planner.Plan) (*Report, error) {
	if err := planner.Validate(plan.Operations); err != nil {
		return nil, fmt.Errorf("refusing to apply invalid plan: %w", err)
	}

	report := &Report{
		RunID:  uuid.New().String(),
		DryRun: e.dryRun,
	}
	start := time.Now()

	for _, op := range plan.Operations {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("apply interrupted: %w", err)
		}

		result := e.applyOne(op)
		report.Results = append(report.Results, result)
		switch {
		case result.Error != nil:
			report.Failed++
		case result.Applied:
			report.Applied++
		default:
			report.Skipped++
		}
	}
	report.Duration = time.Since(start)

	if !e.dryRun && e.opLogDir != "" {
		path, err := writeOperationLog(e.opLogDir, report.RunID, plan.Root, report.Results)
		if err != nil {
			e.log.Warn("executor", "failed to write operation log", logging.F("error", err))
		} else if path != "" {
			report.LogPath = path
		}
	}

	e.log.Info("executor", "apply finished",
		logging.F("run_id", report.RunID),
		logging.F("applied", report.Applied),
		logging.F("skipped", report.Skipped),
		logging.F("failed", report.Failed),
		logging.F("dry_run", report.DryRun))

	return report, nil
}

func (e *Executor) applyOne(op planner.Operation) OpResult {
	result := OpResult{Operation: op}

	if op.Kind == planner.KindSkip {
		result.Skipped = true
		result.SkipReason = "already correct"
		return result
	}

	target := op.TargetPath()
	if target == op.Source {
		result.Skipped = true
		result.SkipReason = "source and target identical"
		return result
	}

	if e.dryRun {
		result.Applied = true
		e.log.Debug("executor", "dry run",
			logging.F("source", op.Source),
			logging.F("target", target))
		return result
	}

	if err := os.MkdirAll(op.TargetDir, 0755); err != nil {
		result.Error = fmt.Errorf("failed to create target directory: %w", err)
		e.log.Error("executor", "mkdir failed", result.Error, logging.F("dir", op.TargetDir))
		return result
	}

	// Never overwrite. A file that appeared at the target after planning
	// wins; the source is left alone for the next run.
	if _, err := os.Lstat(target); err == nil {
		result.Skipped = true
		result.SkipReason = "target already exists"
		e.log.Warn("executor", "target already exists, skipping",
			logging.F("source", op.Source),
			logging.F("target", target))
		return result
	}

	if err := os.Rename(op.Source, target); err != nil {
		result.Error = fmt.Errorf("rename failed: %w", err)
		e.log.Error("executor", "rename failed", err,
			logging.F("source", op.Source),
			logging.F("target", target))
		return result
	}

	result.Applied = true
	e.log.Debug("executor", "renamed",
		logging.F("source", op.Source),
		logging.F("target", target))
	return result
}

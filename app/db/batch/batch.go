// Package batch runs the per-document steps of the maintenance scripts.
// Items run one after another; a failing item is recorded and the run moves
// on to the next one.
package batch

import (
	"context"
	"errors"

	"github.com/Rakhulsr/go-furniture/app/services"
	"go.uber.org/zap"
)

type Item struct {
	Name string
	Run  func(ctx context.Context) error
}

type Failure struct {
	Name string
	Err  error
}

type Report struct {
	Succeeded []string
	Conflicts []string
	Failed    []Failure
}

// HasFailures reports whether any item failed. Conflicts are not failures.
func (r *Report) HasFailures() bool {
	return len(r.Failed) > 0
}

func (r *Report) FailedNames() []string {
	names := make([]string, 0, len(r.Failed))
	for _, f := range r.Failed {
		names = append(names, f.Name)
	}
	return names
}

// Merge appends the outcomes of other to r.
func (r *Report) Merge(other *Report) {
	r.Succeeded = append(r.Succeeded, other.Succeeded...)
	r.Conflicts = append(r.Conflicts, other.Conflicts...)
	r.Failed = append(r.Failed, other.Failed...)
}

// Run executes items in order. A cancelled context stops the run; the
// remaining items are reported as failed with the context error.
func Run(ctx context.Context, logger *zap.Logger, items []Item) *Report {
	report := &Report{}
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			report.Failed = append(report.Failed, Failure{Name: item.Name, Err: err})
			continue
		}

		err := item.Run(ctx)
		switch {
		case err == nil:
			logger.Info("done", zap.String("item", item.Name))
			report.Succeeded = append(report.Succeeded, item.Name)
		case errors.Is(err, services.ErrConflict):
			logger.Warn("already exists, skipped", zap.String("item", item.Name))
			report.Conflicts = append(report.Conflicts, item.Name)
		default:
			logger.Error("failed", zap.String("item", item.Name), zap.Error(err))
			report.Failed = append(report.Failed, Failure{Name: item.Name, Err: err})
		}
	}
	return report
}

// Log writes the one-line summary printed at the end of every script.
func (r *Report) Log(logger *zap.Logger, script string) {
	fields := []zap.Field{
		zap.String("script", script),
		zap.Int("succeeded", len(r.Succeeded)),
		zap.Int("conflicts", len(r.Conflicts)),
		zap.Int("failed", len(r.Failed)),
	}
	if r.HasFailures() {
		logger.Warn("finished with failures", append(fields, zap.Strings("failedItems", r.FailedNames()))...)
		return
	}
	logger.Info("finished", fields...)
}

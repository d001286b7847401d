// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package bench runs collections of problems concurrently. Each problem
// instance uses its own BDD, so there is no sharing between goroutines.
package bench

import (
	"context"
	"fmt"
	"io"

	"github.com/bitmark-inc/logger"
	"github.com/dalzilio/cedd/internal/config"
	"github.com/dalzilio/cedd/internal/metrics"
	"github.com/dalzilio/cedd/internal/problems"
	"github.com/dalzilio/cedd/internal/store"
	"github.com/dalzilio/cedd/internal/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

// Task is a problem instance.
type Task struct {
	Name string
	Size int
}

func (t Task) String() string {
	return fmt.Sprintf("%s(%d)", t.Name, t.Size)
}

// Tasks returns the cartesian product of names and sizes, with the names
// checked against the problems registry.
func Tasks(names []string, sizes []int) ([]Task, error) {
	res := make([]Task, 0, len(names)*len(sizes))
	for _, name := range names {
		if _, err := problems.Lookup(name); err != nil {
			return nil, err
		}
		for _, size := range sizes {
			res = append(res, Task{Name: name, Size: size})
		}
	}
	return res, nil
}

// Outcome is the result of a Task. Err is non-nil if the computation failed,
// for instance because we ran out of nodes.
type Outcome struct {
	Task
	Result problems.Result
	Err    error
}

// Ok returns true if the task ended without error and with the expected number
// of solutions.
func (o Outcome) Ok() bool {
	return o.Err == nil && o.Result.Ok()
}

// Runner defines the resources shared by a collection of runs. Only Jobs is
// mandatory, the other fields are optional.
type Runner struct {
	Engine    config.EngineConfig
	Jobs      int
	Log       *logger.L
	Store     *store.Store
	Collector *metrics.Collector
}

// Run solves the tasks with at most r.Jobs computations in parallel. The
// outcomes are in the same order than tasks. We return an error only when the
// context is cancelled or when we cannot save a result.
func (r *Runner) Run(ctx context.Context, tasks []Task) ([]Outcome, error) {
	res := make([]Outcome, len(tasks))
	g, ctx := errgroup.WithContext(ctx)
	jobs := r.Jobs
	if jobs < 1 {
		jobs = 1
	}
	g.SetLimit(jobs)
	for i, t := range tasks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res[i] = r.solve(ctx, t)
			if r.Store != nil {
				if err := r.Store.Save(ctx, store.NewRun(res[i].Result, res[i].Err)); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, errors.Wrap(err, "benchmark interrupted")
	}
	return res, nil
}

func (r *Runner) solve(ctx context.Context, t Task) Outcome {
	_, span := telemetry.Start(ctx, t.Name, t.Size)
	defer span.End()
	if r.Log != nil {
		r.Log.Infof("start %s", t)
	}
	p, err := problems.Lookup(t.Name)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Outcome{Task: t, Err: err}
	}
	out := Outcome{Task: t}
	out.Result, out.Err = p(t.Size, r.Engine.Options(r.Log)...)
	out.Result.Name, out.Result.Size = t.Name, t.Size
	span.SetAttributes(
		attribute.Int64("cedd.nodes", int64(out.Result.Nodes)),
		attribute.Int("cedd.gc", out.Result.Stats.GCCount),
	)
	switch {
	case out.Err != nil:
		span.RecordError(out.Err)
		span.SetStatus(codes.Error, out.Err.Error())
		if r.Log != nil {
			r.Log.Errorf("%s failed: %s", t, out.Err)
		}
	case !out.Result.Ok():
		span.SetStatus(codes.Error, "unexpected number of solutions")
		if r.Log != nil {
			r.Log.Warnf("%s: found %s solutions, expected %s", t, out.Result.Count, out.Result.Expected)
		}
	default:
		span.SetAttributes(attribute.String("cedd.solutions", out.Result.Count.String()))
		if r.Log != nil {
			r.Log.Infof("%s: %s solutions in %s", t, out.Result.Count, out.Result.Duration)
		}
	}
	if r.Collector != nil && out.Err == nil {
		r.Collector.Observe(out.Result)
	}
	return out
}

// Print writes a summary of the outcomes to w, one line per task, followed by
// the statistics of the BDD when verbose is true.
func Print(w io.Writer, outcomes []Outcome, verbose bool) {
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			fmt.Fprintf(w, "%-16s FAILED  %s\n", o.Task, o.Err)
		case !o.Result.Ok():
			fmt.Fprintf(w, "%-16s WRONG   %s solutions (expected %s)\n", o.Task, o.Result.Count, o.Result.Expected)
		default:
			fmt.Fprintf(w, "%-16s OK      %s solutions, %d nodes, %s\n", o.Task, o.Result.Count, o.Result.Nodes, o.Result.Duration)
		}
		if verbose {
			fmt.Fprintf(w, "%s\n\n", o.Result.Stats)
		}
	}
}

// Failures returns the number of outcomes that are not Ok.
func Failures(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if !o.Ok() {
			n++
		}
	}
	return n
}

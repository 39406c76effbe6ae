package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"thumbcrop/models"
	"thumbcrop/pool"
	"thumbcrop/trace"
)

var errNotStarted = errors.New("task was not started")

type Converter interface {
	Convert(ctx context.Context, task *models.Task) models.Result
}

type Settings struct {
	Workers int
	Quiet   bool
	Stdout  io.Writer
	Stderr  io.Writer
}

// Dispatcher fans a batch of input files out to a worker pool and reports
// each result as it completes.
type Dispatcher struct {
	converter Converter
	options   models.Options
	settings  Settings
	logger    *zap.Logger
}

func NewDispatcher(converter Converter, options models.Options, settings Settings, logger *zap.Logger) *Dispatcher {
	if settings.Stdout == nil {
		settings.Stdout = io.Discard
	}
	if settings.Stderr == nil {
		settings.Stderr = io.Discard
	}
	return &Dispatcher{
		converter: converter,
		options:   options,
		settings:  settings,
		logger:    logger,
	}
}

type job struct {
	index int
	path  string
}

type completion struct {
	index  int
	result models.Result
}

// Run processes every file and returns once all of them have a result.
// Results are reported in completion order. A failed file never stops the
// others.
func (d *Dispatcher) Run(ctx context.Context, files []string) models.Summary {
	ctx = trace.WithTraceID(ctx, trace.GetTraceID(ctx))
	traceID := trace.GetTraceID(ctx)
	logger := d.logger.With(zap.String("trace_id", traceID))
	start := time.Now()

	workers := pool.NewWorkerPool[job](d.settings.Workers)
	logger.Info("Dispatching batch",
		zap.Int("files", len(files)),
		zap.Int("workers", workers.Size()),
	)

	completions := make(chan completion)
	go func() {
		defer close(completions)
		for i, path := range files {
			workers.Submit(ctx, job{index: i, path: path}, func(ctx context.Context, j job) {
				task := &models.Task{
					TraceID:   traceID,
					InputPath: j.path,
					Options:   d.options,
				}
				completions <- completion{index: j.index, result: d.converter.Convert(ctx, task)}
			})
		}
		workers.Wait()
	}()

	var summary models.Summary
	done := make([]bool, len(files))
	for c := range completions {
		done[c.index] = true
		d.report(logger, c.result, &summary)
	}

	// Jobs dropped by the pool after cancellation still count as failures.
	for i, ok := range done {
		if ok {
			continue
		}
		err := ctx.Err()
		if err == nil {
			err = errNotStarted
		}
		d.report(logger, models.Failure(files[i], err), &summary)
	}

	logger.Info("Batch completed",
		zap.Int("total", summary.Total),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Duration("duration", time.Since(start)),
	)

	return summary
}

func (d *Dispatcher) report(logger *zap.Logger, result models.Result, summary *models.Summary) {
	summary.Add(result)
	logger.Debug("Task finished",
		zap.String("input", result.InputPath),
		zap.String("status", string(result.Status())),
	)
	if result.Failed() {
		fmt.Fprintf(d.settings.Stderr, "error: %s: %v\n", result.InputPath, result.Err)
		return
	}
	if !d.settings.Quiet {
		fmt.Fprintf(d.settings.Stdout, "%s -> %s\n", result.InputPath, result.OutputPath)
	}
}

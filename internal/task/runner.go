package task

import (
	"context"
	"fmt"
	"os"
	"time"

	"pdf-ocr-converter/internal/domain"
)

// Runner executes one conversion per task on its own goroutine, recording
// every state change in the registry. The submitting request returns as
// soon as Start has spawned the goroutine.
type Runner struct {
	registry domain.TaskRegistry
	conv     domain.Converter
	logger   domain.Logger
}

// NewRunner creates a task runner bound to a registry and a converter.
func NewRunner(registry domain.TaskRegistry, conv domain.Converter, logger domain.Logger) *Runner {
	return &Runner{
		registry: registry,
		conv:     conv,
		logger:   logger,
	}
}

// Start launches the conversion for the given task id in the background.
// Unknown ids are logged and dropped; the HTTP layer only calls Start with
// ids it just created.
func (r *Runner) Start(id string) {
	go r.run(id)
}

func (r *Runner) run(id string) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("Conversion panicked", fmt.Errorf("panic: %v", rec), "task_id", id)
			r.fail(id, fmt.Sprintf("internal error: %v", rec))
		}
	}()

	t, err := r.registry.Get(id)
	if err != nil {
		r.logger.Error("Runner started for unknown task", err, "task_id", id)
		return
	}

	if _, err := r.registry.Update(id, func(t *domain.Task) {
		t.Status = domain.TaskStatusProcessing
		t.Progress = 0
	}); err != nil {
		r.logger.Error("Failed to mark task processing", err, "task_id", id)
		return
	}

	r.logger.Info("Conversion started", "task_id", id, "file", t.Filename, "lang", t.Params.Lang, "dpi", t.Params.DPI)

	// The uploaded file is owned by the task; remove it once the run is
	// over regardless of the outcome.
	defer func() {
		if err := os.Remove(t.InputPath); err != nil && !os.IsNotExist(err) {
			r.logger.Warn("Failed to remove uploaded file", "task_id", id, "path", t.InputPath, "error", err)
		}
	}()

	onPage := func(done, total int) {
		_, _ = r.registry.Update(id, func(t *domain.Task) {
			t.Progress = pageProgress(done, total)
		})
	}

	start := time.Now()
	err = r.conv.Convert(context.Background(), t.InputPath, t.OutputPath, t.Params, onPage)
	if err != nil {
		r.logger.Error("Conversion failed", err, "task_id", id, "file", t.Filename)
		r.fail(id, err.Error())
		return
	}

	completed, err := r.registry.Update(id, func(t *domain.Task) {
		now := time.Now()
		t.Status = domain.TaskStatusCompleted
		t.Progress = 100
		t.Error = ""
		t.CompletedAt = &now
	})
	if err != nil {
		r.logger.Error("Failed to mark task completed", err, "task_id", id)
		return
	}

	r.logger.Info("Conversion completed", "task_id", id, "file", completed.Filename, "elapsed", time.Since(start).Round(time.Millisecond))
}

func (r *Runner) fail(id, reason string) {
	now := time.Now()
	_, _ = r.registry.Update(id, func(t *domain.Task) {
		t.Status = domain.TaskStatusFailed
		t.Error = reason
		t.OutputPath = ""
		t.CompletedAt = &now
	})
}

// pageProgress maps pages-done onto a 5..95 percentage. 100 is reserved
// for the fully assembled document, and a freshly claimed task reads as 5
// so clients can tell processing has begun.
func pageProgress(done, total int) int {
	if total <= 0 {
		return 5
	}
	p := 5 + done*90/total
	if p > 95 {
		p = 95
	}
	return p
}

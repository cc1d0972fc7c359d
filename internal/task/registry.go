// Package task implements the conversion task registry and runner: the
// shared state and the background execution behind the async HTTP API.
package task

import (
	"sync"
	"time"

	"pdf-ocr-converter/internal/domain"

	"github.com/google/uuid"
)

// Registry is the in-memory, process-wide store of conversion tasks.
// It is constructed once at startup and injected wherever tasks are
// created, advanced, or polled. Mutation happens only inside Update's
// critical section, so readers always observe a fully applied state.
type Registry struct {
	mu    sync.RWMutex
	tasks map[string]*domain.Task
}

// NewRegistry creates an empty task registry.
func NewRegistry() *Registry {
	return &Registry{
		tasks: make(map[string]*domain.Task),
	}
}

// Create allocates a fresh task id and inserts a queued task. The task is
// visible to Get immediately, before any runner has picked it up. The
// caller persists the uploaded file under the new id and records the
// input/output paths with Update before starting the runner.
func (r *Registry) Create(filename string, params domain.ConversionParams) *domain.Task {
	t := &domain.Task{
		ID:        uuid.NewString(),
		Status:    domain.TaskStatusQueued,
		Progress:  0,
		Filename:  filename,
		Params:    params,
		CreatedAt: time.Now(),
	}

	r.mu.Lock()
	r.tasks[t.ID] = t
	r.mu.Unlock()

	return snapshot(t)
}

// Get returns a snapshot of the task, or domain.ErrTaskNotFound for ids
// that were never issued or already cleaned up.
func (r *Registry) Get(id string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return snapshot(t), nil
}

// Update applies a mutation to the stored task under the registry lock and
// returns a snapshot of the result. Tasks already in a terminal state are
// immutable; updating one returns domain.ErrTaskTerminal.
func (r *Registry) Update(id string, apply func(*domain.Task)) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	if t.Status.IsTerminal() {
		return nil, domain.ErrTaskTerminal
	}

	apply(t)
	return snapshot(t), nil
}

// Delete removes a task record, e.g. after its files have been cleaned up.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	delete(r.tasks, id)
	r.mu.Unlock()
}

// Len reports how many tasks the registry currently tracks.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tasks)
}

// snapshot copies a task so callers never share memory with the registry.
func snapshot(t *domain.Task) *domain.Task {
	c := *t
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		c.CompletedAt = &at
	}
	return &c
}

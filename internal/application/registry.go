package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/quantastica/qps-client/internal/domain"
	"github.com/quantastica/qps-client/internal/ports"
)

// Backend is one execution target: it knows how to detect itself, report its
// status and run a job.
type Backend interface {
	ID() domain.BackendID
	Detect(ctx context.Context, run ports.Runner) error
	FetchStatus(ctx context.Context) (domain.BackendInfo, error)
	RunJob(ctx context.Context, req domain.JobRequest) (string, error)
}

// Registry maps backend ids to implementations, preserving registration order.
type Registry struct {
	mu       sync.RWMutex
	backends map[domain.BackendID]Backend
	order    []domain.BackendID
}

func NewRegistry() *Registry {
	return &Registry{backends: map[domain.BackendID]Backend{}}
}

// Register adds or replaces a backend under its id.
func (r *Registry) Register(backend Backend) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := backend.ID()
	if _, ok := r.backends[id]; !ok {
		r.order = append(r.order, id)
	}
	r.backends[id] = backend
}

func (r *Registry) Get(id domain.BackendID) (Backend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if backend, ok := r.backends[id]; ok {
		return backend, nil
	}
	return nil, fmt.Errorf("%w: %q not registered", domain.ErrUnknownBackend, id)
}

// IDs returns the registered ids in registration order.
func (r *Registry) IDs() []domain.BackendID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]domain.BackendID(nil), r.order...)
}

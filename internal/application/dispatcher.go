package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/quantastica/qps-client/internal/domain"
	"github.com/quantastica/qps-client/internal/ports"
)

// Dispatcher owns the live backend status map. It routes inbound events to
// backends and reports status and job outcomes to the sink.
type Dispatcher struct {
	registry *Registry
	sink     ports.StatusSink
	clock    ports.Clock
	logger   *slog.Logger
	newID    func() string

	mu       sync.Mutex
	status   map[domain.BackendID]domain.BackendStatus
	inFlight map[domain.BackendID]int

	jobs      sync.WaitGroup
	noneFound sync.Once
}

func NewDispatcher(registry *Registry, sink ports.StatusSink, clock ports.Clock, logger *slog.Logger) *Dispatcher {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Dispatcher{
		registry: registry,
		sink:     sink,
		clock:    clock,
		logger:   logger,
		newID:    uuid.NewString,
		status:   map[domain.BackendID]domain.BackendStatus{},
		inFlight: map[domain.BackendID]int{},
	}
}

// Discover marks backends available. An explicit list is trusted as is;
// otherwise the detector probes the machine. Returns the available ids.
func (d *Dispatcher) Discover(ctx context.Context, detector *Detector, explicit []domain.BackendID) ([]domain.BackendID, error) {
	found := explicit
	if len(explicit) == 0 {
		detected, err := detector.Detect(ctx)
		if err != nil {
			return nil, fmt.Errorf("detect backends: %w", err)
		}
		found = detected
	}

	available := make(map[domain.BackendID]bool, len(found))
	for _, id := range found {
		available[id] = true
	}

	d.mu.Lock()
	for _, id := range d.registry.IDs() {
		if d.status[id] == domain.StatusBusy {
			continue
		}
		if available[id] {
			d.status[id] = domain.StatusAvailable
		} else {
			d.status[id] = domain.StatusUnavailable
		}
	}
	d.mu.Unlock()

	if len(found) == 0 {
		d.noneFound.Do(func() {
			d.logger.Info("no backends found")
		})
		return nil, nil
	}

	d.logger.Info("backends available", "backends", found)
	return append([]domain.BackendID(nil), found...), nil
}

// Snapshot returns a copy of the current status map.
func (d *Dispatcher) Snapshot() map[domain.BackendID]domain.BackendStatus {
	d.mu.Lock()
	defer d.mu.Unlock()

	snapshot := make(map[domain.BackendID]domain.BackendStatus, len(d.status))
	for id, status := range d.status {
		snapshot[id] = status
	}
	return snapshot
}

// CollectStatus fetches status from every usable backend concurrently. A
// failed fetch is logged and its entry left out.
func (d *Dispatcher) CollectStatus(ctx context.Context) domain.BackendsInfo {
	targets := d.usable()
	info := make(domain.BackendsInfo, len(targets))
	if len(targets) == 0 {
		return info
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, id := range targets {
		backend, err := d.registry.Get(id)
		if err != nil {
			d.logger.Warn("status fetch skipped", "backend", id, "error", err)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()

			backendInfo, err := backend.FetchStatus(ctx)
			if errors.Is(err, errNoStatusReport) {
				d.logger.Debug("status fetch skipped", "backend", id)
				return
			}
			if err != nil {
				d.logger.Warn("status fetch failed", "backend", id, "error", err)
				return
			}
			if d.isBusy(id) {
				backendInfo.Status = domain.StatusBusy
			}

			mu.Lock()
			info[id] = backendInfo
			mu.Unlock()
		}()
	}
	wg.Wait()

	return info
}

// RefreshStatus collects status and publishes it. Nothing is published when
// no backend is usable.
func (d *Dispatcher) RefreshStatus(ctx context.Context) error {
	if len(d.usable()) == 0 {
		return nil
	}

	info := d.CollectStatus(ctx)
	if err := d.sink.UpdateBackends(ctx, info); err != nil {
		return fmt.Errorf("publish backends: %w", err)
	}
	return nil
}

// Handle routes one inbound event.
func (d *Dispatcher) Handle(ctx context.Context, event domain.Event) error {
	switch event.Command {
	case CommandGetBackends:
		return d.RefreshStatus(ctx)
	case CommandRunQVM, CommandRunQiskit, CommandRunToaster:
		req, err := DecodeJobRequest(event)
		if err != nil {
			d.reject(ctx, req, err)
			return err
		}
		return d.Submit(ctx, req)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownCommand, event.Command)
	}
}

// Submit publishes the busy outcome, then runs the job in the background.
// Every submitted job ends with exactly one success or error outcome.
func (d *Dispatcher) Submit(ctx context.Context, req domain.JobRequest) error {
	if req.ID == "" {
		req.ID = d.newID()
	}

	backend, err := d.acquire(req.Backend)
	if err != nil {
		d.reject(ctx, req, err)
		return err
	}

	// Both outcomes of an accepted job are published even after cancellation.
	publishCtx := context.WithoutCancel(ctx)
	d.publish(publishCtx, outcome(req, domain.PhaseBusy, req.BusyMessage()))

	d.jobs.Add(1)
	go func() {
		defer d.jobs.Done()

		started := d.clock.Now()
		output, err := backend.RunJob(ctx, req)
		d.release(req.Backend)

		logger := d.logger.With("backend", req.Backend, "job", req.ID, "elapsed", d.clock.Now().Sub(started))
		if err != nil {
			logger.Warn("job failed", "error", err)
			d.publish(publishCtx, outcome(req, domain.PhaseError, err.Error()))
			return
		}

		logger.Info("job finished")
		d.publish(publishCtx, outcome(req, domain.PhaseSuccess, output))
	}()

	return nil
}

// Wait blocks until every submitted job has published its terminal outcome.
func (d *Dispatcher) Wait() {
	d.jobs.Wait()
}

func (d *Dispatcher) reject(ctx context.Context, req domain.JobRequest, err error) {
	if req.ID == "" {
		req.ID = d.newID()
	}
	d.logger.Warn("job rejected", "backend", req.Backend, "job", req.ID, "error", err)

	publishCtx := context.WithoutCancel(ctx)
	d.publish(publishCtx, outcome(req, domain.PhaseBusy, req.BusyMessage()))
	d.publish(publishCtx, outcome(req, domain.PhaseError, err.Error()))
}

func (d *Dispatcher) acquire(id domain.BackendID) (Backend, error) {
	backend, err := d.registry.Get(id)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	switch d.status[id] {
	case domain.StatusAvailable, domain.StatusBusy:
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrBackendUnavailable, id)
	}

	d.inFlight[id]++
	d.status[id] = domain.StatusBusy
	return backend, nil
}

func (d *Dispatcher) release(id domain.BackendID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.inFlight[id]--
	if d.inFlight[id] <= 0 {
		delete(d.inFlight, id)
		d.status[id] = domain.StatusAvailable
	}
}

func (d *Dispatcher) usable() []domain.BackendID {
	d.mu.Lock()
	defer d.mu.Unlock()

	var ids []domain.BackendID
	for _, id := range d.registry.IDs() {
		switch d.status[id] {
		case domain.StatusAvailable, domain.StatusBusy:
			ids = append(ids, id)
		}
	}
	return ids
}

func (d *Dispatcher) isBusy(id domain.BackendID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.status[id] == domain.StatusBusy
}

func (d *Dispatcher) publish(ctx context.Context, result domain.JobOutcome) {
	if err := d.sink.UpdateBackendsOutput(ctx, result); err != nil && !errors.Is(err, context.Canceled) {
		d.logger.Warn("publish job outcome failed", "backend", result.Backend, "phase", result.Phase, "error", err)
	}
}

func outcome(req domain.JobRequest, phase domain.JobPhase, text string) domain.JobOutcome {
	return domain.JobOutcome{JobID: req.ID, Backend: req.Backend, Phase: phase, Text: text}
}

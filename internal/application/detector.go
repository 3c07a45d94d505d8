package application

import (
	"context"
	"log/slog"

	"github.com/quantastica/qps-client/internal/domain"
	"github.com/quantastica/qps-client/internal/ports"
)

// Detector probes the local machine for usable backends.
type Detector struct {
	registry *Registry
	runner   ports.Runner
	logger   *slog.Logger
}

func NewDetector(registry *Registry, runner ports.Runner, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Detector{registry: registry, runner: runner, logger: logger}
}

// Detect runs every backend probe in registry order and returns the ids whose
// probe succeeded. A failed probe only excludes its own backend.
func (d *Detector) Detect(ctx context.Context) ([]domain.BackendID, error) {
	cache := newProbeCache(d.runner)

	var found []domain.BackendID
	for _, id := range d.registry.IDs() {
		if err := ctx.Err(); err != nil {
			return found, err
		}

		backend, err := d.registry.Get(id)
		if err != nil {
			return found, err
		}

		if err := backend.Detect(ctx, cache); err != nil {
			d.logger.Debug("backend not present", "backend", id, "error", err)
			continue
		}

		d.logger.Debug("backend detected", "backend", id)
		found = append(found, id)
	}

	return found, nil
}

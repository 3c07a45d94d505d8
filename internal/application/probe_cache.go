package application

import (
	"context"
	"sync"

	"github.com/quantastica/qps-client/internal/ports"
)

type probeKey struct {
	commandLine string
	input       string
}

type probeResult struct {
	output string
	err    error
}

// probeCache runs each distinct probe once per detection pass, so backends
// sharing a runtime import probe do not spawn it twice.
type probeCache struct {
	next    ports.Runner
	mu      sync.Mutex
	results map[probeKey]probeResult
}

var _ ports.Runner = (*probeCache)(nil)

func newProbeCache(next ports.Runner) *probeCache {
	return &probeCache{next: next, results: map[probeKey]probeResult{}}
}

func (c *probeCache) Run(ctx context.Context, commandLine string, input string) (string, error) {
	key := probeKey{commandLine: commandLine, input: input}

	c.mu.Lock()
	defer c.mu.Unlock()

	if result, ok := c.results[key]; ok {
		return result.output, result.err
	}

	output, err := c.next.Run(ctx, commandLine, input)
	if ctx.Err() == nil {
		c.results[key] = probeResult{output: output, err: err}
	}

	return output, err
}

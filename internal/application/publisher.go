package application

import (
	"context"
	"fmt"

	"github.com/quantastica/qps-client/internal/domain"
	"github.com/quantastica/qps-client/internal/ports"
)

const (
	MethodUpdateBackends       = "updateBackends"
	MethodUpdateBackendsOutput = "updateBackendsOutput"
)

// Publisher reports status through remote procedure calls.
type Publisher struct {
	caller ports.Caller
}

var _ ports.StatusSink = (*Publisher)(nil)

func NewPublisher(caller ports.Caller) *Publisher {
	return &Publisher{caller: caller}
}

func (p *Publisher) UpdateBackends(ctx context.Context, info domain.BackendsInfo) error {
	if err := p.caller.Call(ctx, MethodUpdateBackends, info); err != nil {
		return fmt.Errorf("call %s: %w", MethodUpdateBackends, err)
	}
	return nil
}

func (p *Publisher) UpdateBackendsOutput(ctx context.Context, outcome domain.JobOutcome) error {
	if err := p.caller.Call(ctx, MethodUpdateBackendsOutput, string(outcome.Backend), outcome.Text, string(outcome.Phase)); err != nil {
		return fmt.Errorf("call %s: %w", MethodUpdateBackendsOutput, err)
	}
	return nil
}

package ports

import (
	"context"

	"github.com/quantastica/qps-client/internal/domain"
)

// Caller invokes a remote procedure on the studio side.
type Caller interface {
	Call(ctx context.Context, method string, args ...any) error
}

// EventSource yields inbound transport messages. It returns io.EOF when the
// stream is closed.
type EventSource interface {
	Receive(ctx context.Context) (domain.Event, error)
}

// StatusSink is where backend status and job output are reported.
type StatusSink interface {
	UpdateBackends(ctx context.Context, info domain.BackendsInfo) error
	UpdateBackendsOutput(ctx context.Context, outcome domain.JobOutcome) error
}

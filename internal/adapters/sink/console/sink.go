// Package console reports backend status and job outcomes to a terminal.
package console

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/quantastica/qps-client/internal/adapters/render/status"
	"github.com/quantastica/qps-client/internal/domain"
	"github.com/quantastica/qps-client/internal/ports"
)

// Sink writes job results to out and progress and errors to diag, so results
// can be piped on their own.
type Sink struct {
	mu    sync.Mutex
	out   io.Writer
	diag  io.Writer
	clock ports.Clock

	busyStyle  lipgloss.Style
	errorStyle lipgloss.Style
	tagStyle   lipgloss.Style
}

var _ ports.StatusSink = (*Sink)(nil)

func New(out, diag io.Writer, clock ports.Clock) *Sink {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Sink{
		out:        out,
		diag:       diag,
		clock:      clock,
		busyStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
		errorStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		tagStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	}
}

func (s *Sink) UpdateBackends(ctx context.Context, info domain.BackendsInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	statuses := make(map[domain.BackendID]domain.BackendStatus, len(info))
	for id, backendInfo := range info {
		statuses[id] = backendInfo.Status
	}

	rendered, err := status.Render(status.Report{Statuses: statuses, Info: info}, status.RenderOptions{Now: s.clock.Now()})
	if err != nil {
		return fmt.Errorf("render backends: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = fmt.Fprintln(s.out, rendered)
	return err
}

func (s *Sink) UpdateBackendsOutput(ctx context.Context, outcome domain.JobOutcome) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tag := s.tagStyle.Render(string(outcome.Backend) + ":")
	var err error
	switch outcome.Phase {
	case domain.PhaseBusy:
		_, err = fmt.Fprintln(s.diag, tag, s.busyStyle.Render(outcome.Text))
	case domain.PhaseError:
		_, err = fmt.Fprintln(s.diag, tag, s.errorStyle.Render("error:"), strings.TrimRight(outcome.Text, "\n"))
	default:
		_, err = io.WriteString(s.out, ensureNewline(outcome.Text))
	}
	return err
}

func ensureNewline(text string) string {
	if text == "" || strings.HasSuffix(text, "\n") {
		return text
	}
	return text + "\n"
}

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/quantastica/qps-client/internal/adapters/sink/console"
	"github.com/quantastica/qps-client/internal/domain"
	"github.com/quantastica/qps-client/internal/ports"
)

var errJobFailed = errors.New("job failed")

type runOptions struct {
	backend     string
	circuitPath string
	lattice     string
	asQVM       bool
	provider    string
	backendName string
}

func newRunCmd(app *app) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run --backend <id> --circuit <file|->",
		Short: "Run one circuit on a local backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			backend, err := domain.ParseBackendID(opts.backend)
			if err != nil {
				return err
			}

			circuit, err := readCircuit(cmd.InOrStdin(), opts.circuitPath)
			if err != nil {
				return err
			}

			sink := &failureTracker{StatusSink: console.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), app.clock)}
			eng, err := app.newEngine(cmd.Context(), sink)
			if err != nil {
				return err
			}

			if _, err := eng.dispatcher.Discover(cmd.Context(), eng.detector, []domain.BackendID{backend}); err != nil {
				return err
			}

			err = eng.dispatcher.Submit(cmd.Context(), domain.JobRequest{
				Command:       "run",
				Backend:       backend,
				Circuit:       circuit,
				TargetLattice: strings.TrimSpace(opts.lattice),
				Provider:      strings.TrimSpace(opts.provider),
				BackendName:   strings.TrimSpace(opts.backendName),
				SimulateOnly:  opts.asQVM,
			})
			eng.dispatcher.Wait()
			if err != nil {
				return err
			}

			if sink.failed() {
				return fmt.Errorf("%w on %s", errJobFailed, backend)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.backend, "backend", "", "Backend id")
	cmd.Flags().StringVar(&opts.circuitPath, "circuit", "", "Circuit JSON file, or - for stdin")
	cmd.Flags().StringVar(&opts.lattice, "lattice", "", "Target lattice for Rigetti backends")
	cmd.Flags().BoolVar(&opts.asQVM, "as-qvm", false, "Simulate the lattice instead of running on hardware")
	cmd.Flags().StringVar(&opts.provider, "provider", "", "Qiskit provider")
	cmd.Flags().StringVar(&opts.backendName, "backend-name", "", "Provider backend name")
	_ = cmd.MarkFlagRequired("backend")
	_ = cmd.MarkFlagRequired("circuit")

	return cmd
}

func readCircuit(stdin io.Reader, path string) (domain.Circuit, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return domain.Circuit{}, fmt.Errorf("read circuit: %w", err)
	}
	if !json.Valid(data) {
		return domain.Circuit{}, fmt.Errorf("read circuit %s: not valid JSON", path)
	}

	return domain.Circuit{Raw: json.RawMessage(bytes.TrimSpace(data))}, nil
}

// failureTracker remembers whether any job ended in error.
type failureTracker struct {
	ports.StatusSink

	mu  sync.Mutex
	bad bool
}

func (t *failureTracker) UpdateBackendsOutput(ctx context.Context, outcome domain.JobOutcome) error {
	if outcome.Phase == domain.PhaseError {
		t.mu.Lock()
		t.bad = true
		t.mu.Unlock()
	}
	return t.StatusSink.UpdateBackendsOutput(ctx, outcome)
}

func (t *failureTracker) failed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bad
}

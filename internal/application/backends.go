package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/quantastica/qps-client/internal/domain"
	"github.com/quantastica/qps-client/internal/ports"
	"github.com/quantastica/qps-client/internal/report"
)

const (
	pyquilImportScript = "import pyquil\n"
	qiskitImportScript = "import qiskit\n"
	cirqImportScript   = "import cirq\n"

	aerListLinesScript  = "from qiskit import Aer\nfor backend in Aer.backends():\n    print(backend.name())\n"
	aerListQuotedScript = "from qiskit import Aer\nprint(Aer.backends())\n"

	ibmqLoadScript       = "from qiskit import IBMQ\nIBMQ.load_account()\n"
	ibmqListLinesScript  = "from qiskit import IBMQ\nprovider = IBMQ.load_account()\nfor backend in provider.backends():\n    print(backend.name())\n"
	ibmqListQuotedScript = "from qiskit import IBMQ\nprovider = IBMQ.load_account()\nprint(provider.backends())\n"
)

var errNoStatusReport = fmt.Errorf("%w: backend has no status report", domain.ErrReportUnavailable)

// Deps are the collaborators shared by every backend implementation.
type Deps struct {
	Runner     ports.Runner
	Translator ports.Translator
	Profile    domain.Profile
	Logger     *slog.Logger
}

// NewDefaultRegistry registers every known backend in detection order.
func NewDefaultRegistry(deps Deps) *Registry {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}

	registry := NewRegistry()
	registry.Register(&toasterBackend{deps: deps})
	registry.Register(&rigettiQVMBackend{deps: deps})
	registry.Register(&rigettiQPUBackend{deps: deps})
	registry.Register(&qiskitAerBackend{deps: deps})
	registry.Register(&qiskitIBMQBackend{deps: deps})
	registry.Register(&cirqBackend{deps: deps})
	return registry
}

type toasterBackend struct {
	deps Deps
}

func (b *toasterBackend) ID() domain.BackendID { return domain.BackendQubitToaster }

func (b *toasterBackend) Detect(ctx context.Context, run ports.Runner) error {
	toaster := b.deps.Profile.Toaster
	return probe(ctx, run, strings.TrimSpace(toaster.Binary+" "+toaster.VersionFlag), "")
}

func (b *toasterBackend) FetchStatus(context.Context) (domain.BackendInfo, error) {
	return domain.BackendInfo{Status: domain.StatusAvailable}, nil
}

func (b *toasterBackend) RunJob(ctx context.Context, req domain.JobRequest) (string, error) {
	return translateAndRun(ctx, b.deps, req, domain.FormatToaster, domain.TranslateHints{}, b.deps.Profile.Toaster.RunCommand)
}

type rigettiQVMBackend struct {
	deps Deps
}

func (b *rigettiQVMBackend) ID() domain.BackendID { return domain.BackendRigettiQVM }

func (b *rigettiQVMBackend) Detect(ctx context.Context, run ports.Runner) error {
	return probe(ctx, run, b.deps.Profile.Python.ScriptCommand(), pyquilImportScript)
}

// FetchStatus reports a static status; the QVM exposes no status report.
func (b *rigettiQVMBackend) FetchStatus(context.Context) (domain.BackendInfo, error) {
	return domain.BackendInfo{Status: domain.StatusAvailable}, nil
}

func (b *rigettiQVMBackend) RunJob(ctx context.Context, req domain.JobRequest) (string, error) {
	hints := domain.TranslateHints{Lattice: req.TargetLattice, AsQVM: true}
	return translateAndRun(ctx, b.deps, req, domain.FormatPyquil, hints, b.deps.Profile.Python.ScriptCommand())
}

type rigettiQPUBackend struct {
	deps Deps
}

func (b *rigettiQPUBackend) ID() domain.BackendID { return domain.BackendRigettiQPU }

// Detect requires pyquil and a working QCS command line.
func (b *rigettiQPUBackend) Detect(ctx context.Context, run ports.Runner) error {
	if err := probe(ctx, run, b.deps.Profile.Python.ScriptCommand(), pyquilImportScript); err != nil {
		return err
	}
	return probe(ctx, run, b.deps.Profile.Rigetti.CLI, "")
}

func (b *rigettiQPUBackend) FetchStatus(ctx context.Context) (domain.BackendInfo, error) {
	rigetti := b.deps.Profile.Rigetti

	var lattices, reservations string
	err := runSteps(ctx,
		capture(b.deps.Runner, rigetti.LatticesCommand, "", &lattices),
		capture(b.deps.Runner, rigetti.ReservationsCommand, "", &reservations),
	)
	if err != nil {
		return domain.BackendInfo{}, err
	}

	info := domain.Annotate(report.ParseLattices(lattices), report.ParseReservations(reservations))
	return domain.BackendInfo{Status: domain.StatusAvailable, Devices: &info}, nil
}

func (b *rigettiQPUBackend) RunJob(ctx context.Context, req domain.JobRequest) (string, error) {
	hints := domain.TranslateHints{Lattice: req.TargetLattice, AsQVM: req.SimulateOnly}
	return translateAndRun(ctx, b.deps, req, domain.FormatPyquil, hints, b.deps.Profile.Python.ScriptCommand())
}

type qiskitAerBackend struct {
	deps Deps
}

func (b *qiskitAerBackend) ID() domain.BackendID { return domain.BackendQiskitAer }

func (b *qiskitAerBackend) Detect(ctx context.Context, run ports.Runner) error {
	return probe(ctx, run, b.deps.Profile.Python.ScriptCommand(), qiskitImportScript)
}

func (b *qiskitAerBackend) FetchStatus(ctx context.Context) (domain.BackendInfo, error) {
	python := b.deps.Profile.Python
	script := aerListLinesScript
	if python.ListStyle == domain.ListStyleQuoted {
		script = aerListQuotedScript
	}

	var listing string
	if err := runSteps(ctx, capture(b.deps.Runner, python.ScriptCommand(), script, &listing)); err != nil {
		return domain.BackendInfo{}, err
	}

	return domain.BackendInfo{
		Status:   domain.StatusAvailable,
		Backends: report.ParseList(python.ListStyle, listing),
	}, nil
}

func (b *qiskitAerBackend) RunJob(ctx context.Context, req domain.JobRequest) (string, error) {
	return runQiskit(ctx, b.deps, req)
}

type qiskitIBMQBackend struct {
	deps Deps
}

func (b *qiskitIBMQBackend) ID() domain.BackendID { return domain.BackendQiskitIBMQ }

func (b *qiskitIBMQBackend) Detect(ctx context.Context, run ports.Runner) error {
	return probe(ctx, run, b.deps.Profile.Python.ScriptCommand(), qiskitImportScript)
}

// FetchStatus loads the stored IBMQ account first; the listing only runs once
// the account loads.
func (b *qiskitIBMQBackend) FetchStatus(ctx context.Context) (domain.BackendInfo, error) {
	python := b.deps.Profile.Python
	script := ibmqListLinesScript
	if python.ListStyle == domain.ListStyleQuoted {
		script = ibmqListQuotedScript
	}

	var listing string
	err := runSteps(ctx,
		capture(b.deps.Runner, python.ScriptCommand(), ibmqLoadScript, nil),
		capture(b.deps.Runner, python.ScriptCommand(), script, &listing),
	)
	if err != nil {
		return domain.BackendInfo{}, err
	}

	return domain.BackendInfo{
		Status:   domain.StatusAvailable,
		Backends: report.ParseList(python.ListStyle, listing),
	}, nil
}

func (b *qiskitIBMQBackend) RunJob(ctx context.Context, req domain.JobRequest) (string, error) {
	return runQiskit(ctx, b.deps, req)
}

// cirqBackend is detected but has no status report or job runner yet.
type cirqBackend struct {
	deps Deps
}

func (b *cirqBackend) ID() domain.BackendID { return domain.BackendGoogleCirq }

func (b *cirqBackend) Detect(ctx context.Context, run ports.Runner) error {
	return probe(ctx, run, b.deps.Profile.Python.ScriptCommand(), cirqImportScript)
}

// FetchStatus reports nothing, so the backend is left out of status updates.
func (b *cirqBackend) FetchStatus(context.Context) (domain.BackendInfo, error) {
	return domain.BackendInfo{}, fmt.Errorf("%w: %s", errNoStatusReport, domain.BackendGoogleCirq)
}

func (b *cirqBackend) RunJob(context.Context, domain.JobRequest) (string, error) {
	return "", fmt.Errorf("%w: %s cannot run jobs", domain.ErrBackendUnavailable, domain.BackendGoogleCirq)
}

func runQiskit(ctx context.Context, deps Deps, req domain.JobRequest) (string, error) {
	hints := domain.TranslateHints{Provider: req.Provider, BackendName: req.BackendName}
	return translateAndRun(ctx, deps, req, domain.FormatQiskit, hints, deps.Profile.Python.ScriptCommand())
}

func translateAndRun(ctx context.Context, deps Deps, req domain.JobRequest, format domain.ProgramFormat, hints domain.TranslateHints, commandLine string) (string, error) {
	program, err := deps.Translator.Translate(ctx, req.Circuit, format, hints)
	if err != nil {
		return "", fmt.Errorf("translate circuit to %s: %w", format, err)
	}

	return deps.Runner.Run(ctx, commandLine, program)
}

func probe(ctx context.Context, run ports.Runner, commandLine, input string) error {
	if _, err := run.Run(ctx, commandLine, input); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrProbeAbsent, commandLine, err)
	}
	return nil
}

func reportUnavailable(commandLine string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrReportUnavailable, commandLine, err)
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/quantastica/qps-client/internal/adapters/process"
	statusadapter "github.com/quantastica/qps-client/internal/adapters/render/status"
	tomlrepo "github.com/quantastica/qps-client/internal/adapters/repo/toml"
	"github.com/quantastica/qps-client/internal/adapters/translate"
	"github.com/quantastica/qps-client/internal/application"
	"github.com/quantastica/qps-client/internal/config"
	"github.com/quantastica/qps-client/internal/ports"
)

type app struct {
	settings       *viper.Viper
	cfg            config.Config
	logger         *slog.Logger
	runner         ports.Runner
	profiles       ports.ProfileRepository
	profilePath    string
	clock          ports.Clock
	statusRenderer func(statusadapter.Report, statusadapter.RenderOptions) (string, error)
}

// engine is the per-command set of application services.
type engine struct {
	registry   *application.Registry
	detector   *application.Detector
	dispatcher *application.Dispatcher
}

func newApp() *app {
	return &app{settings: viper.New()}
}

// load reads settings once flags are parsed and fills every collaborator
// that was not injected.
func (a *app) load(logOutput io.Writer) error {
	if a.settings == nil {
		a.settings = viper.New()
	}

	cfg, err := config.Load(a.settings)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	a.cfg = cfg

	if a.logger == nil {
		a.logger = newLogger(cfg, logOutput)
	}
	if a.runner == nil {
		a.runner = process.NewRunner()
	}
	if a.clock == nil {
		a.clock = ports.SystemClock{}
	}
	if a.statusRenderer == nil {
		a.statusRenderer = statusadapter.Render
	}
	if a.profiles == nil {
		repo, err := tomlrepo.NewRepository(a.settings)
		if err != nil {
			return fmt.Errorf("wire profile repository: %w", err)
		}
		a.profiles = repo
		a.profilePath = repo.Path()
	}

	return nil
}

func (a *app) newEngine(ctx context.Context, sink ports.StatusSink) (*engine, error) {
	profile, err := a.profiles.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load backend profile: %w", err)
	}

	registry := application.NewDefaultRegistry(application.Deps{
		Runner:     a.runner,
		Translator: translate.New(a.runner, profile.Translator),
		Profile:    profile,
		Logger:     a.logger,
	})

	return &engine{
		registry:   registry,
		detector:   application.NewDetector(registry, a.runner, a.logger),
		dispatcher: application.NewDispatcher(registry, sink, a.clock, a.logger),
	}, nil
}

func newLogger(cfg config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

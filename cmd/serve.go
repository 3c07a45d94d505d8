package cmd

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/quantastica/qps-client/internal/adapters/lock"
	"github.com/quantastica/qps-client/internal/adapters/transport/jsonl"
	"github.com/quantastica/qps-client/internal/application"
)

func newServeCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve backend status and jobs as JSON lines over stdin/stdout",
		Long:  "serve detects backends, publishes updateBackends, then handles run_qvm, run_qiskit, run_toaster and get_backends events read from stdin until it closes or the process is interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			instance, err := lock.Acquire(cmd.Context(), app.cfg.LockPath, 0)
			if err != nil {
				return err
			}
			defer func() {
				if err := instance.Release(); err != nil {
					app.logger.Warn("release instance lock", "error", err)
				}
			}()

			conn := jsonl.NewConn(cmd.InOrStdin(), cmd.OutOrStdout())
			defer conn.Close()

			return serve(cmd.Context(), app, conn)
		},
	}
}

func serve(ctx context.Context, app *app, conn *jsonl.Conn) error {
	app.logger.Info("serving",
		"host", app.cfg.Host,
		"port", app.cfg.Port,
		"ssl", app.cfg.SSL,
		"account", app.cfg.Account,
	)

	eng, err := app.newEngine(ctx, application.NewPublisher(conn))
	if err != nil {
		return err
	}
	defer eng.dispatcher.Wait()

	found, err := eng.dispatcher.Discover(ctx, eng.detector, app.cfg.Backends)
	if err != nil {
		return err
	}
	if len(found) > 0 {
		if err := eng.dispatcher.RefreshStatus(ctx); err != nil {
			app.logger.Warn("publish initial status", "error", err)
		}
	}

	for {
		event, err := conn.Receive(ctx)
		switch {
		case errors.Is(err, io.EOF):
			app.logger.Info("input closed")
			return nil
		case ctx.Err() != nil:
			app.logger.Info("interrupted")
			return nil
		case err != nil:
			app.logger.Warn("skip inbound message", "error", err)
			continue
		}

		if err := eng.dispatcher.Handle(ctx, event); err != nil {
			app.logger.Warn("handle event", "command", event.Command, "error", err)
		}
	}
}

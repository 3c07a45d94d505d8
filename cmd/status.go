package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	statusadapter "github.com/quantastica/qps-client/internal/adapters/render/status"
	"github.com/quantastica/qps-client/internal/adapters/sink/console"
	"github.com/quantastica/qps-client/internal/domain"
)

type statusOutput struct {
	Statuses map[domain.BackendID]domain.BackendStatus `json:"statuses"`
	Backends domain.BackendsInfo                       `json:"backends"`
}

func newStatusCmd(app *app) *cobra.Command {
	var backendFlags []string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Fetch and display backend status and devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			explicit, err := parseBackendFlags(backendFlags)
			if err != nil {
				return err
			}
			if len(explicit) == 0 {
				explicit = app.cfg.Backends
			}

			eng, err := app.newEngine(cmd.Context(), console.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), app.clock))
			if err != nil {
				return err
			}

			var info domain.BackendsInfo
			fetch := func(ctx context.Context) error {
				if _, err := eng.dispatcher.Discover(ctx, eng.detector, explicit); err != nil {
					return err
				}
				info = eng.dispatcher.CollectStatus(ctx)
				return nil
			}
			if asJSON {
				err = fetch(cmd.Context())
			} else {
				err = withSpinner(cmd.Context(), cmd.ErrOrStderr(), "Fetching backend status...", fetch)
			}
			if err != nil {
				return err
			}

			return writeStatusOutput(cmd, app, statusOutput{Statuses: eng.dispatcher.Snapshot(), Backends: info}, asJSON)
		},
	}

	cmd.Flags().StringSliceVar(&backendFlags, "backend", nil, "Backend id (repeatable, default: configured list or detection)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func writeStatusOutput(cmd *cobra.Command, app *app, output statusOutput, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(output)
	}

	rendered, err := app.statusRenderer(statusadapter.Report{
		Statuses: output.Statuses,
		Info:     output.Backends,
	}, statusadapter.RenderOptions{Now: app.clock.Now()})
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func parseBackendFlags(raw []string) ([]domain.BackendID, error) {
	ids := make([]domain.BackendID, 0, len(raw))
	for _, entry := range raw {
		id, err := domain.ParseBackendID(entry)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

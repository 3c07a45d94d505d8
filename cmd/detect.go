package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantastica/qps-client/internal/adapters/sink/console"
	"github.com/quantastica/qps-client/internal/domain"
)

func newDetectCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Probe this machine for usable backends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := app.newEngine(cmd.Context(), console.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), app.clock))
			if err != nil {
				return err
			}

			var found []domain.BackendID
			err = withSpinner(cmd.Context(), cmd.ErrOrStderr(), "Probing backends...", func(ctx context.Context) error {
				var detectErr error
				found, detectErr = eng.detector.Detect(ctx)
				return detectErr
			})
			if err != nil {
				return fmt.Errorf("detect backends: %w", err)
			}

			if asJSON {
				if found == nil {
					found = []domain.BackendID{}
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(found)
			}

			if len(found) == 0 {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "no backends found")
				return err
			}
			for _, id := range found {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), id); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

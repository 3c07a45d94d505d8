package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantastica/qps-client/internal/domain"
)

var errProfileExists = errors.New("profile already exists")

func newProfileCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the backend command profile",
	}

	cmd.AddCommand(
		newProfileInitCmd(app),
		newProfileShowCmd(app),
	)

	return cmd
}

func newProfileInitCmd(app *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default backend command profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			exists, err := app.profiles.Exists(cmd.Context())
			if err != nil {
				return err
			}
			if exists && !force {
				return fmt.Errorf("%w at %s (use --force to overwrite)", errProfileExists, app.profilePath)
			}

			profile := domain.DefaultProfile()
			if app.cfg.PythonExecutable != "" {
				profile.Python.Executable = app.cfg.PythonExecutable
			}
			if err := app.profiles.Save(cmd.Context(), profile); err != nil {
				return fmt.Errorf("save profile: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "profile written to %s\n", app.profilePath)
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing profile")

	return cmd
}

func newProfileShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective backend command profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := app.profiles.Load(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(profile)
			}

			translator := profile.Translator.Command
			if translator == "" {
				translator = "(circuit payload)"
			}

			rows := [][2]string{
				{"toaster.binary", profile.Toaster.Binary},
				{"toaster.version_flag", profile.Toaster.VersionFlag},
				{"toaster.run_command", profile.Toaster.RunCommand},
				{"python.executable", profile.Python.Executable},
				{"python.list_style", string(profile.Python.ListStyle)},
				{"rigetti.cli", profile.Rigetti.CLI},
				{"rigetti.lattices_command", profile.Rigetti.LatticesCommand},
				{"rigetti.reservations_command", profile.Rigetti.ReservationsCommand},
				{"translator.command", translator},
			}
			for _, row := range rows {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-28s %s\n", row[0], row[1]); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

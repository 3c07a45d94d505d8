package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quantastica/qps-client/internal/config"
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	return newRootCmdWithApp(newApp())
}

func newRootCmdWithApp(app *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "qps",
		Short:         "Quantum Programming Studio local client (qps): detect and run local quantum backends",
		Long:          "qps finds the quantum computing backends usable on this machine, reports their status and devices, and runs circuits on them for Quantum Programming Studio.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.load(cmd.ErrOrStderr())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("host", "", "Studio host")
	flags.Int("port", 0, "Studio port (443 implies TLS)")
	flags.Bool("ssl", false, "Force TLS on or off")
	flags.String("account", "", "Studio account")
	flags.StringSlice("backends", nil, "Backends to use instead of detection (comma separated)")
	flags.String("python-executable", "", "Python interpreter used by script backends")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("log-format", "", "Log format: text or json")

	bindings := map[string]string{
		config.KeyHost:             "host",
		config.KeyPort:             "port",
		config.KeySSL:              "ssl",
		config.KeyAccount:          "account",
		config.KeyBackends:         "backends",
		config.KeyPythonExecutable: "python-executable",
		config.KeyLogLevel:         "log-level",
		config.KeyLogFormat:        "log-format",
	}
	for key, name := range bindings {
		// Binding only fails for a nil flag.
		_ = app.settings.BindPFlag(key, flags.Lookup(name))
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newDetectCmd(app),
		newStatusCmd(app),
		newRunCmd(app),
		newServeCmd(app),
		newProfileCmd(app),
	)

	return rootCmd
}

package application

import (
	"context"

	"github.com/quantastica/qps-client/internal/ports"
)

type step func(ctx context.Context) error

// runSteps runs steps in order and stops at the first failure.
func runSteps(ctx context.Context, steps ...step) error {
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s(ctx); err != nil {
			return err
		}
	}
	return nil
}

// capture runs one command and stores its output for later steps.
func capture(runner ports.Runner, commandLine, input string, out *string) step {
	return func(ctx context.Context) error {
		output, err := runner.Run(ctx, commandLine, input)
		if err != nil {
			return reportUnavailable(commandLine, err)
		}
		if out != nil {
			*out = output
		}
		return nil
	}
}

package process

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/quantastica/qps-client/internal/domain"
	"github.com/quantastica/qps-client/internal/ports"
)

var errEmptyCommandLine = errors.New("empty command line")

// Runner runs command lines without a shell. Arguments are split on whitespace
// and passed literally.
type Runner struct{}

var _ ports.Runner = (*Runner)(nil)

func NewRunner() *Runner {
	return &Runner{}
}

func (r *Runner) Run(ctx context.Context, commandLine string, input string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return "", &domain.ExecutionError{Command: commandLine, Err: errEmptyCommandLine}
	}

	cmd := exec.CommandContext(ctx, fields[0], fields[1:]...)
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	// One writer for both streams keeps chunks in arrival order.
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		return "", &domain.ExecutionError{Command: commandLine, Output: output.String(), Err: err}
	}

	return output.String(), nil
}

package ports

import "context"

// Runner executes an external command line. Non-empty input is written to the
// child's stdin. The returned text is stdout and stderr interleaved.
type Runner interface {
	Run(ctx context.Context, commandLine string, input string) (string, error)
}

package ports

import (
	"context"

	"github.com/quantastica/qps-client/internal/domain"
)

type Translator interface {
	Translate(ctx context.Context, circuit domain.Circuit, format domain.ProgramFormat, hints domain.TranslateHints) (string, error)
}

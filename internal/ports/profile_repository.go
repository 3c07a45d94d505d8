package ports

import (
	"context"

	"github.com/quantastica/qps-client/internal/domain"
)

type ProfileRepository interface {
	Load(ctx context.Context) (domain.Profile, error)
	Save(ctx context.Context, profile domain.Profile) error
	Exists(ctx context.Context) (bool, error)
}

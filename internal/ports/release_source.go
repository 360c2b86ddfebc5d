package ports

import (
	"context"

	"github.com/bnema/yamcl/internal/domain"
)

type ReleaseSource interface {
	FetchManifest(ctx context.Context) (domain.VersionManifest, error)
}

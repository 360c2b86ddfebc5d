package ports

import (
	"context"

	"github.com/bnema/yamcl/internal/domain"
)

// SettingsRepository persists the settings document as a whole. Save must be
// visible to the next Load.
type SettingsRepository interface {
	Load(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, settings domain.Settings) error
}

package application

import (
	"context"
	"fmt"

	"github.com/bnema/yamcl/internal/domain"
	"github.com/bnema/yamcl/internal/logging"
	"github.com/bnema/yamcl/internal/ports"
)

type RuntimeSelector struct {
	settings ports.SettingsRepository
	catalog  *VersionCatalog
}

func NewRuntimeSelector(settings ports.SettingsRepository, catalog *VersionCatalog) *RuntimeSelector {
	return &RuntimeSelector{settings: settings, catalog: catalog}
}

// SelectFor returns the first runtime, in stored order, whose active range
// contains the release. Bounds are inclusive. Runtimes whose bounds do not
// resolve are skipped.
func (s *RuntimeSelector) SelectFor(ctx context.Context, releaseID string) (domain.RuntimeConfig, error) {
	settings, err := s.settings.Load(ctx)
	if err != nil {
		return domain.RuntimeConfig{}, fmt.Errorf("load settings: %w", err)
	}

	target, err := s.catalog.ReleaseTime(ctx, releaseID)
	if err != nil {
		return domain.RuntimeConfig{}, &domain.SelectionError{ReleaseID: releaseID, Err: err}
	}

	log := logging.FromContext(ctx)
	for i, runtime := range settings.Runtimes {
		minID, maxID, ok := runtime.Range.Bounds()
		if !ok {
			continue
		}

		minTime, err := s.catalog.ReleaseTime(ctx, minID)
		if err != nil {
			log.Debug().Err(err).Int("runtime", i).Msg("skipping runtime with unresolved lower bound")
			continue
		}
		maxTime, err := s.catalog.ReleaseTime(ctx, maxID)
		if err != nil {
			log.Debug().Err(err).Int("runtime", i).Msg("skipping runtime with unresolved upper bound")
			continue
		}

		if !target.Before(minTime) && !target.After(maxTime) {
			return runtime, nil
		}
	}

	return domain.RuntimeConfig{}, &domain.SelectionError{ReleaseID: releaseID, Err: domain.ErrNoMatchingRuntime}
}

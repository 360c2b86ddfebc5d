package application

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/bnema/yamcl/internal/domain"
	"github.com/bnema/yamcl/internal/ports"
	"golang.org/x/sync/singleflight"
)

// VersionCatalog caches the release manifest for its own lifetime. The first
// successful fetch is kept; failed fetches are retried on the next call.
type VersionCatalog struct {
	source ports.ReleaseSource

	mu       sync.RWMutex
	manifest *domain.VersionManifest
	byID     map[string]domain.Release

	group singleflight.Group
}

func NewVersionCatalog(source ports.ReleaseSource) *VersionCatalog {
	return &VersionCatalog{source: source}
}

func (c *VersionCatalog) Manifest(ctx context.Context) (domain.VersionManifest, error) {
	c.mu.RLock()
	cached := c.manifest
	c.mu.RUnlock()
	if cached != nil {
		return *cached, nil
	}

	// Waiters share this fetch, so one caller cancelling must not fail the rest.
	result, err, _ := c.group.Do("manifest", func() (any, error) {
		manifest, err := c.source.FetchManifest(context.WithoutCancel(ctx))
		if err != nil {
			return nil, fmt.Errorf("fetch version manifest: %w", err)
		}

		byID := make(map[string]domain.Release, len(manifest.Releases))
		for _, release := range manifest.Releases {
			byID[release.ID] = release
		}

		c.mu.Lock()
		c.manifest = &manifest
		c.byID = byID
		c.mu.Unlock()

		return manifest, nil
	})
	if err != nil {
		return domain.VersionManifest{}, err
	}

	return result.(domain.VersionManifest), nil
}

// Releases returns releases in manifest order, optionally filtered by type.
func (c *VersionCatalog) Releases(ctx context.Context, types ...domain.ReleaseType) ([]domain.Release, error) {
	manifest, err := c.Manifest(ctx)
	if err != nil {
		return nil, err
	}

	if len(types) == 0 {
		return slices.Clone(manifest.Releases), nil
	}

	releases := make([]domain.Release, 0, len(manifest.Releases))
	for _, release := range manifest.Releases {
		if slices.Contains(types, release.Type) {
			releases = append(releases, release)
		}
	}

	return releases, nil
}

// ReleaseTime resolves a release id to its release timestamp. A zero timestamp
// counts as not found.
func (c *VersionCatalog) ReleaseTime(ctx context.Context, id string) (time.Time, error) {
	if _, err := c.Manifest(ctx); err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %w", domain.ErrUnknownRelease, id, err)
	}

	c.mu.RLock()
	release, ok := c.byID[id]
	c.mu.RUnlock()

	if !ok || release.ReleaseTime.IsZero() || release.ReleaseTime.Unix() == 0 {
		return time.Time{}, fmt.Errorf("%w %q", domain.ErrUnknownRelease, id)
	}

	return release.ReleaseTime, nil
}

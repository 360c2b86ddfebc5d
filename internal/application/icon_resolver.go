package application

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/yamcl/internal/logging"
	"github.com/bnema/yamcl/internal/ports"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultIcon = "default_instance.png"

	sentinelIcon      = "curse:666"
	curseIconPrefix   = "curse:"
	trustedIconPrefix = "https://media.forgecdn.net"
)

// Icon keys shipped with MultiMC and Prism. Instances using them get the
// launcher default.
var builtinIcons = map[string]struct{}{
	"default":              {},
	"bee":                  {},
	"brick":                {},
	"chicken":              {},
	"creeper":              {},
	"diamond":              {},
	"dirt":                 {},
	"enderman":             {},
	"enderpearl":           {},
	"flame":                {},
	"fox":                  {},
	"gear":                 {},
	"herobrine":            {},
	"gold":                 {},
	"grass":                {},
	"iron":                 {},
	"magitech":             {},
	"meat":                 {},
	"modrinth":             {},
	"netherstar":           {},
	"planks":               {},
	"prismlauncher":        {},
	"squarecreeper":        {},
	"steve":                {},
	"stone":                {},
	"tnt":                  {},
	"bee_legacy":           {},
	"brick_legacy":         {},
	"chicken_legacy":       {},
	"creeper_legacy":       {},
	"diamond_legacy":       {},
	"dirt_legacy":          {},
	"enderman_legacy":      {},
	"enderpearl_legacy":    {},
	"flame_legacy":         {},
	"fox_legacy":           {},
	"ftb_glow":             {},
	"ftb_logo":             {},
	"gear_legacy":          {},
	"herobrine_legacy":     {},
	"gold_legacy":          {},
	"grass_legacy":         {},
	"infinity":             {},
	"iron_legacy":          {},
	"magitech_legacy":      {},
	"meat_legacy":          {},
	"modrinth_legacy":      {},
	"netherstar_legacy":    {},
	"planks_legacy":        {},
	"prismlauncher_legacy": {},
	"skeleton":             {},
	"squarecreeper_legacy": {},
	"steve_legacy":         {},
	"stone_legacy":         {},
	"tnt_legacy":           {},
}

// IconResolver turns an instance icon reference into something a renderer can
// show. It never fails; anything it cannot resolve becomes DefaultIcon.
type IconResolver struct {
	lookup ports.IconLookup

	mu    sync.RWMutex
	cache map[string]string
	group singleflight.Group
}

func NewIconResolver(lookup ports.IconLookup) *IconResolver {
	return &IconResolver{lookup: lookup, cache: map[string]string{}}
}

func (r *IconResolver) Resolve(ctx context.Context, ref, iconRoot string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || ref == sentinelIcon || IsBuiltinIcon(ref) {
		return DefaultIcon
	}

	if strings.HasPrefix(ref, trustedIconPrefix) {
		return ref
	}

	if id, ok := strings.CutPrefix(ref, curseIconPrefix); ok {
		return r.remote(ctx, id)
	}

	if strings.TrimSpace(iconRoot) == "" {
		return DefaultIcon
	}

	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(filepath.Join(iconRoot, ref))}).String()
}

func IsBuiltinIcon(ref string) bool {
	_, ok := builtinIcons[ref]
	return ok
}

func (r *IconResolver) remote(ctx context.Context, id string) string {
	if r.lookup == nil || id == "" {
		return DefaultIcon
	}

	r.mu.RLock()
	cached, ok := r.cache[id]
	r.mu.RUnlock()
	if ok {
		return cached
	}

	result, err, _ := r.group.Do(id, func() (any, error) {
		iconURL, err := r.lookup.IconURL(context.WithoutCancel(ctx), id)
		if err != nil {
			return "", err
		}

		r.mu.Lock()
		r.cache[id] = iconURL
		r.mu.Unlock()

		return iconURL, nil
	})
	if err != nil {
		logging.FromContext(ctx).Debug().Err(err).Str("project", id).Msg("icon lookup failed")
		return DefaultIcon
	}

	iconURL := result.(string)
	if iconURL == "" {
		return DefaultIcon
	}

	return iconURL
}

package application

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/yamcl/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
)

func TestIconResolverResolve(t *testing.T) {
	tests := []struct {
		name     string
		ref      string
		iconRoot string
		want     string
	}{
		{name: "empty", ref: "", iconRoot: "/r", want: DefaultIcon},
		{name: "sentinel", ref: "curse:666", iconRoot: "/r", want: DefaultIcon},
		{name: "builtin", ref: "creeper", iconRoot: "/r", want: DefaultIcon},
		{name: "builtin legacy", ref: "flame_legacy", iconRoot: "/r", want: DefaultIcon},
		{name: "builtin fox legacy", ref: "fox_legacy", iconRoot: "/r", want: DefaultIcon},
		{name: "builtin modrinth legacy", ref: "modrinth_legacy", iconRoot: "/r", want: DefaultIcon},
		{name: "builtin prismlauncher legacy", ref: "prismlauncher_legacy", iconRoot: "/r", want: DefaultIcon},
		{name: "trusted remote", ref: "https://media.forgecdn.net/avatars/1/2/icon.png", iconRoot: "", want: "https://media.forgecdn.net/avatars/1/2/icon.png"},
		{name: "local with root", ref: "foo.png", iconRoot: "/r", want: "file:///r/foo.png"},
		{name: "local nested", ref: "packs/foo.png", iconRoot: "/r/icons", want: "file:///r/icons/packs/foo.png"},
		{name: "local without root", ref: "foo.png", iconRoot: "", want: DefaultIcon},
	}

	resolver := NewIconResolver(mocks.NewMockIconLookup(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolver.Resolve(context.Background(), tt.ref, tt.iconRoot))
		})
	}
}

func TestIconResolverRemoteLookupIsCached(t *testing.T) {
	lookup := mocks.NewMockIconLookup(t)
	lookup.EXPECT().IconURL(mockAnyContext(), "123").Return("X", nil).Once()
	resolver := NewIconResolver(lookup)

	assert.Equal(t, "X", resolver.Resolve(context.Background(), "curse:123", ""))
	assert.Equal(t, "X", resolver.Resolve(context.Background(), "curse:123", "/r"))
}

func TestIconResolverRemoteFailureFallsBackToDefault(t *testing.T) {
	lookup := mocks.NewMockIconLookup(t)
	lookup.EXPECT().IconURL(mockAnyContext(), "404").Return("", errors.New("not found")).Twice()
	resolver := NewIconResolver(lookup)

	assert.Equal(t, DefaultIcon, resolver.Resolve(context.Background(), "curse:404", "/r"))
	assert.Equal(t, DefaultIcon, resolver.Resolve(context.Background(), "curse:404", "/r"))
}

func TestIconResolverSharedLookupIgnoresCallerCancellation(t *testing.T) {
	lookup := mocks.NewMockIconLookup(t)
	lookup.EXPECT().IconURL(mockAnyContext(), "123").RunAndReturn(func(ctx context.Context, _ string) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return "X", nil
	}).Once()
	resolver := NewIconResolver(lookup)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, "X", resolver.Resolve(ctx, "curse:123", ""))
}

func TestIconResolverWithoutLookup(t *testing.T) {
	resolver := NewIconResolver(nil)

	assert.Equal(t, DefaultIcon, resolver.Resolve(context.Background(), "curse:123", "/r"))
}

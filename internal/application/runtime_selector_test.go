package application

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/yamcl/internal/domain"
	"github.com/bnema/yamcl/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runtimeFor(path, minID, maxID string) domain.RuntimeConfig {
	runtime := domain.NewRuntimeConfig(path)
	runtime.Range = domain.ActiveRange(minID, maxID)
	return runtime
}

func newTestSelector(t *testing.T, runtimes ...domain.RuntimeConfig) *RuntimeSelector {
	t.Helper()

	repo := mocks.NewMockSettingsRepository(t)
	repo.EXPECT().Load(mockAnyContext()).Return(domain.Settings{Runtimes: runtimes}, nil)
	source := mocks.NewMockReleaseSource(t)
	source.EXPECT().FetchManifest(mockAnyContext()).Return(testManifest(), nil).Once()

	return NewRuntimeSelector(repo, NewVersionCatalog(source))
}

func TestRuntimeSelectorSelectFor(t *testing.T) {
	java8 := runtimeFor("/jvm/8/bin/java", "1.12.2", "1.16.5")
	java17 := runtimeFor("/jvm/17/bin/java", "1.17", "1.20.4")
	wide := runtimeFor("/jvm/21/bin/java", "1.12.2", "1.20.4")
	inactive := domain.NewRuntimeConfig("/jvm/inactive/bin/java")
	dangling := runtimeFor("/jvm/dangling/bin/java", "0.0.1", "1.20.4")

	tests := []struct {
		name     string
		runtimes []domain.RuntimeConfig
		release  string
		want     string
	}{
		{name: "inside second range", runtimes: []domain.RuntimeConfig{java8, java17}, release: "1.20.1", want: java17.Path},
		{name: "inclusive upper bound", runtimes: []domain.RuntimeConfig{java8, java17}, release: "1.16.5", want: java8.Path},
		{name: "inclusive lower bound", runtimes: []domain.RuntimeConfig{java8, java17}, release: "1.17", want: java17.Path},
		{name: "first match wins on overlap", runtimes: []domain.RuntimeConfig{wide, java17}, release: "1.20.1", want: wide.Path},
		{name: "stored order respected", runtimes: []domain.RuntimeConfig{java17, wide}, release: "1.20.1", want: java17.Path},
		{name: "inactive ranges skipped", runtimes: []domain.RuntimeConfig{inactive, java17}, release: "1.20.1", want: java17.Path},
		{name: "unresolvable bound skipped", runtimes: []domain.RuntimeConfig{dangling, java17}, release: "1.20.4", want: java17.Path},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selector := newTestSelector(t, tt.runtimes...)

			got, err := selector.SelectFor(context.Background(), tt.release)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Path)
		})
	}
}

func TestRuntimeSelectorNoMatch(t *testing.T) {
	tests := []struct {
		name     string
		runtimes []domain.RuntimeConfig
		release  string
	}{
		{name: "outside every range", runtimes: []domain.RuntimeConfig{runtimeFor("/jvm/8", "1.12.2", "1.16.5")}, release: "1.20.1"},
		{name: "all inactive", runtimes: []domain.RuntimeConfig{domain.NewRuntimeConfig("/a"), domain.NewRuntimeConfig("/b")}, release: "1.20.1"},
		{name: "no runtimes", release: "1.20.1"},
		{name: "half open range is inactive", runtimes: []domain.RuntimeConfig{runtimeFor("/jvm/17", "1.17", "")}, release: "1.20.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selector := newTestSelector(t, tt.runtimes...)

			_, err := selector.SelectFor(context.Background(), tt.release)

			var selErr *domain.SelectionError
			require.ErrorAs(t, err, &selErr)
			assert.Equal(t, tt.release, selErr.ReleaseID)
			assert.ErrorIs(t, err, domain.ErrNoMatchingRuntime)
		})
	}
}

func TestRuntimeSelectorUnknownRelease(t *testing.T) {
	selector := newTestSelector(t, runtimeFor("/jvm/17", "1.17", "1.20.4"))

	_, err := selector.SelectFor(context.Background(), "9.9.9")

	var selErr *domain.SelectionError
	require.ErrorAs(t, err, &selErr)
	assert.ErrorIs(t, err, domain.ErrUnknownRelease)
	assert.NotErrorIs(t, err, domain.ErrNoMatchingRuntime)
}

func TestRuntimeSelectorSettingsError(t *testing.T) {
	repo := mocks.NewMockSettingsRepository(t)
	loadErr := errors.New("disk gone")
	repo.EXPECT().Load(mockAnyContext()).Return(domain.Settings{}, loadErr)
	selector := NewRuntimeSelector(repo, NewVersionCatalog(mocks.NewMockReleaseSource(t)))

	_, err := selector.SelectFor(context.Background(), "1.17")
	require.ErrorIs(t, err, loadErr)
}

package application

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	tomlrepo "github.com/bnema/yamcl/internal/adapters/repo/toml"
	"github.com/bnema/yamcl/internal/domain"
	"github.com/bnema/yamcl/internal/ports/mocks"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSettingsServiceSetTargetRoot(t *testing.T) {
	repo := mocks.NewMockSettingsRepository(t)
	service := NewSettingsService(repo)

	repo.EXPECT().Load(mockAnyContext()).Return(domain.Settings{InstanceSize: 16, IconRootPath: "/icons"}, nil)
	repo.EXPECT().Save(mockAnyContext(), domain.Settings{
		InstanceSize:   16,
		TargetRootPath: "/games/instances",
		IconRootPath:   "/icons",
	}).Return(nil)

	err := service.SetTargetRoot(context.Background(), " /games/instances ")
	require.NoError(t, err)
}

func TestSettingsServiceSetIconRootEmptyClears(t *testing.T) {
	repo := mocks.NewMockSettingsRepository(t)
	service := NewSettingsService(repo)

	repo.EXPECT().Load(mockAnyContext()).Return(domain.Settings{IconRootPath: "/icons"}, nil)
	repo.EXPECT().Save(mockAnyContext(), domain.Settings{}).Return(nil)

	require.NoError(t, service.SetIconRoot(context.Background(), ""))
}

func TestSettingsServiceSaveFailure(t *testing.T) {
	repo := mocks.NewMockSettingsRepository(t)
	service := NewSettingsService(repo)
	saveErr := errors.New("read-only")

	repo.EXPECT().Load(mockAnyContext()).Return(domain.Settings{}, nil)
	repo.EXPECT().Save(mockAnyContext(), mock.Anything).Return(saveErr)

	err := service.SetInstanceSize(context.Background(), 24)
	require.ErrorIs(t, err, saveErr)
}

func TestSettingsServiceRejectsInvalidInstanceSize(t *testing.T) {
	service := NewSettingsService(mocks.NewMockSettingsRepository(t))

	require.Error(t, service.SetInstanceSize(context.Background(), 0))
}

func TestSettingsServicePersistsAcrossServiceInstances(t *testing.T) {
	settingsPath := filepath.Join(t.TempDir(), "settings.toml")
	v := viper.New()
	v.Set("settings.path", settingsPath)

	repo, err := tomlrepo.NewRepository(v)
	require.NoError(t, err)

	first := NewSettingsService(repo)
	require.NoError(t, first.SetTargetRoot(context.Background(), "/games/instances"))
	_, err = NewRuntimeService(first, nil).Add(context.Background(), AddRuntimeCommand{Path: "/jvm/17/bin/java", MinID: "1.17", MaxID: "1.20.4"})
	require.NoError(t, err)

	reopened, err := tomlrepo.NewRepository(v)
	require.NoError(t, err)

	settings, err := NewSettingsService(reopened).Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/games/instances", settings.TargetRootPath)
	require.Len(t, settings.Runtimes, 1)
	assert.Equal(t, domain.ActiveRange("1.17", "1.20.4"), settings.Runtimes[0].Range)
}

func TestFindInstance(t *testing.T) {
	instances := []domain.Instance{
		{ID: "id-1", Name: "Vanilla"},
		{ID: "id-2", Name: "All the Mods"},
		{ID: "id-3", Name: "all the mods"},
	}

	got, err := FindInstance(instances, "id-2")
	require.NoError(t, err)
	assert.Equal(t, "All the Mods", got.Name)

	got, err = FindInstance(instances, "vanilla")
	require.NoError(t, err)
	assert.Equal(t, "id-1", got.ID)

	_, err = FindInstance(instances, "ALL THE MODS")
	require.ErrorContains(t, err, "ambiguous")

	_, err = FindInstance(instances, "missing")
	require.ErrorIs(t, err, domain.ErrInstanceNotFound)
}

func mockAnyContext() interface{} {
	return mock.Anything
}

package application

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/yamcl/internal/domain"
	"github.com/bnema/yamcl/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRuntimeServiceAddAppliesDefaults(t *testing.T) {
	repo := mocks.NewMockSettingsRepository(t)
	service := NewRuntimeService(NewSettingsService(repo), mocks.NewMockProducer(t))

	existing := runtimeFor("/jvm/8/bin/java", "1.12.2", "1.16.5")
	repo.EXPECT().Load(mockAnyContext()).Return(domain.Settings{Runtimes: []domain.RuntimeConfig{existing}}, nil)
	repo.EXPECT().Save(mockAnyContext(), domain.Settings{Runtimes: []domain.RuntimeConfig{
		existing,
		{
			Path:      "/jvm/17/bin/java",
			Label:     domain.DefaultRuntimeLabel,
			Version:   domain.RuntimeVersionUnset,
			Range:     domain.InactiveRange(),
			HeapMaxMB: domain.DefaultHeapMaxMB,
			HeapMinMB: domain.DefaultHeapMinMB,
		},
	}}).Return(nil)

	index, err := service.Add(context.Background(), AddRuntimeCommand{Path: "/jvm/17/bin/java", MinID: "1.17"})
	require.NoError(t, err)
	assert.Equal(t, 1, index)
}

func TestRuntimeServiceAddRejectsInvalidHeap(t *testing.T) {
	service := NewRuntimeService(NewSettingsService(mocks.NewMockSettingsRepository(t)), mocks.NewMockProducer(t))

	_, err := service.Add(context.Background(), AddRuntimeCommand{Path: "/jvm/17/bin/java", HeapMaxMB: 512, HeapMinMB: 1024})
	require.Error(t, err)
}

func TestRuntimeServiceRemoveDeletesExactlyOne(t *testing.T) {
	repo := mocks.NewMockSettingsRepository(t)
	service := NewRuntimeService(NewSettingsService(repo), mocks.NewMockProducer(t))

	a := domain.NewRuntimeConfig("/a")
	b := domain.NewRuntimeConfig("/b")
	c := domain.NewRuntimeConfig("/c")
	repo.EXPECT().Load(mockAnyContext()).Return(domain.Settings{Runtimes: []domain.RuntimeConfig{a, b, c}}, nil)
	repo.EXPECT().Save(mockAnyContext(), domain.Settings{Runtimes: []domain.RuntimeConfig{a, c}}).Return(nil)

	removed, err := service.Remove(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "/b", removed.Path)
}

func TestRuntimeServiceRemoveOutOfRange(t *testing.T) {
	repo := mocks.NewMockSettingsRepository(t)
	service := NewRuntimeService(NewSettingsService(repo), mocks.NewMockProducer(t))

	repo.EXPECT().Load(mockAnyContext()).Return(domain.Settings{}, nil)

	_, err := service.Remove(context.Background(), 0)
	require.ErrorIs(t, err, domain.ErrRuntimeNotFound)
}

func TestRuntimeServiceUpdate(t *testing.T) {
	repo := mocks.NewMockSettingsRepository(t)
	service := NewRuntimeService(NewSettingsService(repo), mocks.NewMockProducer(t))

	original := domain.NewRuntimeConfig("/jvm/17/bin/java")
	repo.EXPECT().Load(mockAnyContext()).Return(domain.Settings{Runtimes: []domain.RuntimeConfig{original}}, nil)

	label := "Java 17"
	rng := domain.ActiveRange("1.17", "1.20.4")
	want := original
	want.Label = label
	want.Range = rng
	repo.EXPECT().Save(mockAnyContext(), domain.Settings{Runtimes: []domain.RuntimeConfig{want}}).Return(nil)

	got, err := service.Update(context.Background(), UpdateRuntimeCommand{Index: 0, Label: &label, Range: &rng})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRuntimeServiceProbeStoresVersion(t *testing.T) {
	repo := mocks.NewMockSettingsRepository(t)
	producer := mocks.NewMockProducer(t)
	service := NewRuntimeService(NewSettingsService(repo), producer)

	runtime := domain.NewRuntimeConfig("/jvm/17/bin/java")
	runtime.ExtraArgs = "-XX:+UseG1GC"
	repo.EXPECT().Load(mockAnyContext()).Return(domain.Settings{Runtimes: []domain.RuntimeConfig{runtime}}, nil)
	producer.EXPECT().ProbeRuntime(mockAnyContext(), "/jvm/17/bin/java", []string{"-Xmx4096M", "-Xms2048M", "-XX:+UseG1GC"}).
		Return("openjdk version \"17.0.2\" 2022-01-18\nOpenJDK Runtime Environment (build 17.0.2+8-86)\n", nil)

	probed := runtime
	probed.Version = "17.0.2"
	repo.EXPECT().Save(mockAnyContext(), domain.Settings{Runtimes: []domain.RuntimeConfig{probed}}).Return(nil)

	got, err := service.Probe(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "17.0.2", got.Version)
}

func TestRuntimeServiceProbeFailureMarksInvalid(t *testing.T) {
	repo := mocks.NewMockSettingsRepository(t)
	producer := mocks.NewMockProducer(t)
	service := NewRuntimeService(NewSettingsService(repo), producer)

	runtime := domain.NewRuntimeConfig("/not/java")
	repo.EXPECT().Load(mockAnyContext()).Return(domain.Settings{Runtimes: []domain.RuntimeConfig{runtime}}, nil)
	probeErr := errors.New("exec: no such file")
	producer.EXPECT().ProbeRuntime(mockAnyContext(), "/not/java", mock.Anything).Return("", probeErr)

	var saved domain.Settings
	repo.EXPECT().Save(mockAnyContext(), mock.Anything).
		Run(func(_ context.Context, settings domain.Settings) { saved = settings }).
		Return(nil)

	got, err := service.Probe(context.Background(), 0)
	require.ErrorIs(t, err, probeErr)

	var perr *domain.ProducerError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, domain.RuntimeVersionInvalid, got.Version)
	require.Len(t, saved.Runtimes, 1)
	assert.Equal(t, domain.RuntimeVersionInvalid, saved.Runtimes[0].Version)
}

func TestParseJavaVersion(t *testing.T) {
	tests := []struct {
		name    string
		banner  string
		want    string
		wantErr bool
	}{
		{name: "modern", banner: `openjdk version "21.0.1" 2023-10-17`, want: "21.0.1"},
		{name: "major only", banner: `openjdk version "21" 2023-09-19`, want: "21.0.0"},
		{name: "legacy update", banner: `java version "1.8.0_392"`, want: "1.8.0+392"},
		{name: "early access", banner: `openjdk version "22-ea" 2024-03-19`, want: "22.0.0-ea"},
		{name: "unquoted", banner: "openjdk version 17.0.9 2023-10-17", want: "17.0.9"},
		{name: "garbage", banner: "Error: could not find java.dll", wantErr: true},
		{name: "empty", banner: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseJavaVersion(tt.banner)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

package application

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/bnema/yamcl/internal/domain"
	"github.com/bnema/yamcl/internal/logging"
	"github.com/bnema/yamcl/internal/ports"
)

var javaVersionPattern = regexp.MustCompile(`version "([^"]+)"`)

// RuntimeService manages the configured runtime collection. Each mutation
// persists the whole collection before returning.
type RuntimeService struct {
	settings *SettingsService
	producer ports.Producer
}

func NewRuntimeService(settings *SettingsService, producer ports.Producer) *RuntimeService {
	return &RuntimeService{settings: settings, producer: producer}
}

func (s *RuntimeService) List(ctx context.Context) ([]domain.RuntimeConfig, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	return settings.Runtimes, nil
}

// Add appends a runtime and returns its index.
func (s *RuntimeService) Add(ctx context.Context, cmd AddRuntimeCommand) (int, error) {
	runtime := cmd.runtime()
	if err := runtime.Validate(); err != nil {
		return 0, fmt.Errorf("add runtime: %w", err)
	}

	var index int
	err := s.settings.update(ctx, func(settings *domain.Settings) error {
		runtimes := slices.Clone(settings.Runtimes)
		settings.Runtimes = append(runtimes, runtime)
		index = len(settings.Runtimes) - 1
		return nil
	})
	if err != nil {
		return 0, err
	}

	return index, nil
}

func (s *RuntimeService) Update(ctx context.Context, cmd UpdateRuntimeCommand) (domain.RuntimeConfig, error) {
	var updated domain.RuntimeConfig
	err := s.settings.update(ctx, func(settings *domain.Settings) error {
		if err := checkRuntimeIndex(settings.Runtimes, cmd.Index); err != nil {
			return err
		}

		updated = cmd.apply(settings.Runtimes[cmd.Index])
		if err := updated.Validate(); err != nil {
			return fmt.Errorf("update runtime %d: %w", cmd.Index, err)
		}

		runtimes := slices.Clone(settings.Runtimes)
		runtimes[cmd.Index] = updated
		settings.Runtimes = runtimes
		return nil
	})
	if err != nil {
		return domain.RuntimeConfig{}, err
	}

	return updated, nil
}

// Remove deletes exactly the runtime at index.
func (s *RuntimeService) Remove(ctx context.Context, index int) (domain.RuntimeConfig, error) {
	var removed domain.RuntimeConfig
	err := s.settings.update(ctx, func(settings *domain.Settings) error {
		if err := checkRuntimeIndex(settings.Runtimes, index); err != nil {
			return err
		}

		removed = settings.Runtimes[index]
		settings.Runtimes = slices.Delete(slices.Clone(settings.Runtimes), index, index+1)
		return nil
	})
	if err != nil {
		return domain.RuntimeConfig{}, err
	}

	return removed, nil
}

// Probe runs the runtime with -version and stores the detected version. On
// failure the stored version becomes "invalid" and the probe error is returned.
func (s *RuntimeService) Probe(ctx context.Context, index int) (domain.RuntimeConfig, error) {
	runtimes, err := s.List(ctx)
	if err != nil {
		return domain.RuntimeConfig{}, err
	}
	if err := checkRuntimeIndex(runtimes, index); err != nil {
		return domain.RuntimeConfig{}, err
	}
	runtime := runtimes[index]

	version, probeErr := s.probe(ctx, runtime)
	if probeErr != nil {
		logging.FromContext(ctx).Debug().Err(probeErr).Str("path", runtime.Path).Msg("runtime probe failed")
		version = domain.RuntimeVersionInvalid
	}

	var probed domain.RuntimeConfig
	err = s.settings.update(ctx, func(settings *domain.Settings) error {
		if err := checkRuntimeIndex(settings.Runtimes, index); err != nil {
			return err
		}
		if settings.Runtimes[index].Path != runtime.Path {
			return fmt.Errorf("runtime %d changed while probing", index)
		}

		runtimes := slices.Clone(settings.Runtimes)
		runtimes[index].Version = version
		settings.Runtimes = runtimes
		probed = runtimes[index]
		return nil
	})
	if err != nil {
		return domain.RuntimeConfig{}, err
	}
	if probeErr != nil {
		return probed, probeErr
	}

	return probed, nil
}

func (s *RuntimeService) probe(ctx context.Context, runtime domain.RuntimeConfig) (string, error) {
	banner, err := s.producer.ProbeRuntime(ctx, runtime.Path, runtime.JVMArgs())
	if err != nil {
		return "", &domain.ProducerError{Op: "probe runtime", Err: err}
	}

	return ParseJavaVersion(banner)
}

// ParseJavaVersion extracts the version from a `java -version` banner and
// normalizes it to semver. Legacy 1.8.0_392 style updates become build metadata.
func ParseJavaVersion(banner string) (string, error) {
	raw := ""
	if match := javaVersionPattern.FindStringSubmatch(banner); match != nil {
		raw = match[1]
	} else if fields := strings.Fields(banner); len(fields) > 2 {
		raw = strings.Trim(fields[2], `"`)
	}
	if raw == "" {
		return "", fmt.Errorf("no version in java output %q", firstLine(banner))
	}

	version, err := semver.NewVersion(strings.Replace(raw, "_", "+", 1))
	if err != nil {
		return "", fmt.Errorf("parse java version %q: %w", raw, err)
	}

	return version.String(), nil
}

func checkRuntimeIndex(runtimes []domain.RuntimeConfig, index int) error {
	if index < 0 || index >= len(runtimes) {
		return fmt.Errorf("%w: index %d (have %d)", domain.ErrRuntimeNotFound, index, len(runtimes))
	}

	return nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}

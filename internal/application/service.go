package application

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/yamcl/internal/domain"
	"github.com/bnema/yamcl/internal/ports"
)

// SettingsService owns read-modify-write access to the persisted settings.
// RuntimeService shares its lock so mutations never interleave.
type SettingsService struct {
	repo ports.SettingsRepository
	mu   sync.Mutex
}

func NewSettingsService(repo ports.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

func (s *SettingsService) Get(ctx context.Context) (domain.Settings, error) {
	settings, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("load settings: %w", err)
	}

	return settings, nil
}

func (s *SettingsService) SetTargetRoot(ctx context.Context, path string) error {
	path, err := cleanRootPath(path)
	if err != nil {
		return fmt.Errorf("set instance directory: %w", err)
	}

	return s.update(ctx, func(settings *domain.Settings) error {
		settings.TargetRootPath = path
		return nil
	})
}

func (s *SettingsService) SetIconRoot(ctx context.Context, path string) error {
	path, err := cleanRootPath(path)
	if err != nil {
		return fmt.Errorf("set icon directory: %w", err)
	}

	return s.update(ctx, func(settings *domain.Settings) error {
		settings.IconRootPath = path
		return nil
	})
}

func (s *SettingsService) SetInstanceSize(ctx context.Context, size int) error {
	if size <= 0 {
		return fmt.Errorf("instance size must be positive, got %d", size)
	}

	return s.update(ctx, func(settings *domain.Settings) error {
		settings.InstanceSize = size
		return nil
	})
}

// update loads, mutates and saves the settings under the service lock.
func (s *SettingsService) update(ctx context.Context, mutate func(*domain.Settings) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if err := mutate(&settings); err != nil {
		return err
	}

	if err := s.repo.Save(ctx, settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	return nil
}

// cleanRootPath accepts an empty path, which clears the setting.
func cleanRootPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", path, err)
	}

	return abs, nil
}

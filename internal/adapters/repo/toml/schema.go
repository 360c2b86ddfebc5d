package toml

import (
	"fmt"

	"github.com/bnema/yamcl/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version        int             `toml:"version"`
	InstanceSize   int             `toml:"instance_size"`
	TargetRootPath string          `toml:"target_root_path"`
	IconRootPath   string          `toml:"icon_root_path"`
	Runtimes       []runtimeSchema `toml:"runtimes"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
	if s.InstanceSize <= 0 {
		s.InstanceSize = domain.DefaultInstanceSize
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported settings schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type runtimeSchema struct {
	Path      string       `toml:"path"`
	Label     string       `toml:"label"`
	Version   string       `toml:"version"`
	Range     *rangeSchema `toml:"range,omitempty"`
	HeapMaxMB int          `toml:"xmx"`
	HeapMinMB int          `toml:"xms"`
	ExtraArgs string       `toml:"extra_args,omitempty"`
}

// rangeSchema is omitted for inactive ranges.
type rangeSchema struct {
	Min string `toml:"min"`
	Max string `toml:"max"`
}

func toSchema(settings domain.Settings) fileSchema {
	file := fileSchema{
		InstanceSize:   settings.InstanceSize,
		TargetRootPath: settings.TargetRootPath,
		IconRootPath:   settings.IconRootPath,
		Runtimes:       make([]runtimeSchema, 0, len(settings.Runtimes)),
	}

	for _, runtime := range settings.Runtimes {
		entry := runtimeSchema{
			Path:      runtime.Path,
			Label:     runtime.Label,
			Version:   runtime.Version,
			HeapMaxMB: runtime.HeapMaxMB,
			HeapMinMB: runtime.HeapMinMB,
			ExtraArgs: runtime.ExtraArgs,
		}
		if minID, maxID, ok := runtime.Range.Bounds(); ok {
			entry.Range = &rangeSchema{Min: minID, Max: maxID}
		}
		file.Runtimes = append(file.Runtimes, entry)
	}

	return file
}

func fromSchema(file fileSchema) domain.Settings {
	settings := domain.Settings{
		InstanceSize:   file.InstanceSize,
		TargetRootPath: file.TargetRootPath,
		IconRootPath:   file.IconRootPath,
		Runtimes:       make([]domain.RuntimeConfig, 0, len(file.Runtimes)),
	}

	for _, entry := range file.Runtimes {
		runtime := domain.NewRuntimeConfig(entry.Path)
		if entry.Label != "" {
			runtime.Label = entry.Label
		}
		if entry.Version != "" {
			runtime.Version = entry.Version
		}
		if entry.HeapMaxMB > 0 {
			runtime.HeapMaxMB = entry.HeapMaxMB
		}
		if entry.HeapMinMB > 0 {
			runtime.HeapMinMB = entry.HeapMinMB
		}
		runtime.ExtraArgs = entry.ExtraArgs
		if entry.Range != nil {
			runtime.Range = domain.ActiveRange(entry.Range.Min, entry.Range.Max)
		}
		settings.Runtimes = append(settings.Runtimes, runtime)
	}

	return settings
}

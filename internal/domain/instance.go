package domain

import (
	"strings"
	"time"
)

type InstanceType string

const (
	InstanceTypeMultiMC    InstanceType = "multimc"
	InstanceTypeCurseForge InstanceType = "curseforge"
)

type ModloaderType string

const (
	ModloaderVanilla    ModloaderType = "vanilla"
	ModloaderForge      ModloaderType = "forge"
	ModloaderNeoForge   ModloaderType = "neoforge"
	ModloaderFabric     ModloaderType = "fabric"
	ModloaderQuilt      ModloaderType = "quilt"
	ModloaderLiteLoader ModloaderType = "liteloader"
)

type Modloader struct {
	Name    string
	Type    ModloaderType
	Version string
}

func VanillaModloader() Modloader {
	return Modloader{Name: "Vanilla", Type: ModloaderVanilla}
}

// ModloaderFromUID maps a MultiMC component uid to a loader type.
func ModloaderFromUID(uid string) (ModloaderType, bool) {
	switch uid {
	case "net.minecraftforge":
		return ModloaderForge, true
	case "net.neoforged":
		return ModloaderNeoForge, true
	case "net.fabricmc.fabric-loader":
		return ModloaderFabric, true
	case "org.quiltmc.quilt-loader":
		return ModloaderQuilt, true
	case "com.mumfrey.liteloader":
		return ModloaderLiteLoader, true
	default:
		return "", false
	}
}

// ModloaderFromCurseForge maps a CurseForge baseModLoader name ("forge-47.2.0") to a loader type.
func ModloaderFromCurseForge(name string) (ModloaderType, bool) {
	prefix, _, _ := strings.Cut(strings.ToLower(name), "-")
	switch prefix {
	case "forge":
		return ModloaderForge, true
	case "neoforge":
		return ModloaderNeoForge, true
	case "fabric":
		return ModloaderFabric, true
	case "quilt":
		return ModloaderQuilt, true
	default:
		return "", false
	}
}

// RawInstance is an instance as reported by a producer, before icon
// resolution and timestamp normalization.
type RawInstance struct {
	Name             string       `json:"name"`
	Icon             string       `json:"icon"`
	Path             string       `json:"path"`
	MinecraftPath    string       `json:"minecraft_path"`
	ID               string       `json:"id"`
	ReleaseID        string       `json:"mc_version"`
	Modloader        Modloader    `json:"modloader"`
	LastPlayedEpoch  int64        `json:"last_played_epoch"`
	LastPlayedString string       `json:"last_played_string"`
	Type             InstanceType `json:"instance_type"`
}

type Instance struct {
	Name          string       `json:"name" yaml:"name"`
	Icon          string       `json:"icon" yaml:"icon"`
	Path          string       `json:"path" yaml:"path"`
	MinecraftPath string       `json:"minecraft_path" yaml:"minecraft_path"`
	ID            string       `json:"id" yaml:"id"`
	ReleaseID     string       `json:"mc_version" yaml:"mc_version"`
	Modloader     Modloader    `json:"modloader" yaml:"modloader"`
	LastPlayed    *time.Time   `json:"last_played,omitempty" yaml:"last_played,omitempty"`
	Type          InstanceType `json:"instance_type" yaml:"instance_type"`
}

var lastPlayedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// NormalizeLastPlayed prefers a positive millisecond epoch and falls back to
// the string form. Timestamps at or before the unix epoch count as unknown.
func NormalizeLastPlayed(epochMillis int64, raw string) *time.Time {
	if epochMillis > 0 {
		t := time.UnixMilli(epochMillis).UTC()
		return &t
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	for _, layout := range lastPlayedLayouts {
		parsed, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		if parsed.Unix() <= 10 {
			return nil
		}
		t := parsed.UTC()
		return &t
	}

	return nil
}

// PlayedBefore orders instances by last played, most recent first. Unknown
// last played sorts after every known timestamp.
func PlayedBefore(a, b Instance) bool {
	switch {
	case a.LastPlayed == nil:
		return false
	case b.LastPlayed == nil:
		return true
	default:
		return a.LastPlayed.After(*b.LastPlayed)
	}
}

package local

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"

	"github.com/bnema/yamcl/internal/domain"
	"github.com/bnema/yamcl/internal/logging"
	"golang.org/x/sync/errgroup"
)

const (
	curseForgeInstanceFile = "minecraftinstance.json"
	multiMCConfigFile      = "instance.cfg"
	multiMCPackFile        = "mmc-pack.json"
	minecraftComponentUID  = "net.minecraft"
)

type candidate struct {
	path string
	kind domain.InstanceType
}

// scan announces the number of recognized directories first and then streams
// the parsed instances, so the completion races the items. Directories that
// fail to parse are logged and a corrected count is announced at the end.
func (p *Producer) scan(ctx context.Context, root string, entries []os.DirEntry, events chan<- domain.GatherEvent) {
	defer close(events)
	log := logging.FromContext(ctx)

	candidates := make([]candidate, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		path := filepath.Join(root, entry.Name())
		switch {
		case isFile(filepath.Join(path, curseForgeInstanceFile)):
			candidates = append(candidates, candidate{path: path, kind: domain.InstanceTypeCurseForge})
		case isFile(filepath.Join(path, multiMCConfigFile)):
			candidates = append(candidates, candidate{path: path, kind: domain.InstanceTypeMultiMC})
		default:
			log.Info().Str("path", path).Msg("directory does not contain a recognized instance")
		}
	}

	send := func(event domain.GatherEvent) bool {
		select {
		case events <- event:
			return true
		case <-ctx.Done():
			return false
		}
	}

	if !send(domain.GatherComplete(len(candidates))) {
		return
	}

	var failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for _, c := range candidates {
		g.Go(func() error {
			instance, err := readInstance(c)
			if err != nil {
				failed.Add(1)
				log.Warn().Err(err).Str("path", c.path).Msg("skipping unreadable instance")
				return nil
			}
			if !send(domain.ItemDiscovered(instance)) {
				return gctx.Err()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return
	}

	if n := failed.Load(); n > 0 {
		send(domain.GatherComplete(len(candidates) - int(n)))
	}
}

func readInstance(c candidate) (domain.RawInstance, error) {
	switch c.kind {
	case domain.InstanceTypeCurseForge:
		return readCurseForge(c.path)
	case domain.InstanceTypeMultiMC:
		return readMultiMC(c.path)
	default:
		return domain.RawInstance{}, fmt.Errorf("unknown instance type %q", c.kind)
	}
}

type mmcPack struct {
	Components []struct {
		UID        string `json:"uid"`
		Version    string `json:"version"`
		CachedName string `json:"cachedName"`
	} `json:"components"`
}

func readMultiMC(dir string) (domain.RawInstance, error) {
	cfg, err := readInstanceConfig(filepath.Join(dir, multiMCConfigFile))
	if err != nil {
		return domain.RawInstance{}, err
	}

	var pack mmcPack
	if err := readJSON(filepath.Join(dir, multiMCPackFile), &pack); err != nil {
		return domain.RawInstance{}, err
	}

	instance := domain.RawInstance{
		Name:          cfg["name"],
		Icon:          cfg["iconKey"],
		Path:          dir,
		MinecraftPath: filepath.Join(dir, "minecraft"),
		Modloader:     domain.VanillaModloader(),
		Type:          domain.InstanceTypeMultiMC,
	}
	if isDir(filepath.Join(dir, ".minecraft")) {
		instance.MinecraftPath = filepath.Join(dir, ".minecraft")
	}
	if raw := cfg["lastLaunchTime"]; raw != "" {
		if millis, err := strconv.ParseInt(raw, 10, 64); err == nil {
			instance.LastPlayedEpoch = millis
		}
	}

	for _, component := range pack.Components {
		if component.UID == minecraftComponentUID {
			instance.ReleaseID = component.Version
			continue
		}
		if typ, ok := domain.ModloaderFromUID(component.UID); ok && instance.Modloader.Type == domain.ModloaderVanilla {
			instance.Modloader = domain.Modloader{Name: component.CachedName, Type: typ, Version: component.Version}
			if instance.Modloader.Version == "" {
				instance.Modloader.Version = "unknown"
			}
		}
	}
	if instance.ReleaseID == "" {
		return domain.RawInstance{}, fmt.Errorf("%s: no %s component", filepath.Join(dir, multiMCPackFile), minecraftComponentUID)
	}

	meta, err := loadMetadata(dir)
	if err != nil {
		return domain.RawInstance{}, err
	}
	instance.ID = meta.InstanceID

	return instance, nil
}

type curseForgeInstance struct {
	Name          string `json:"name"`
	GameVersion   string `json:"gameVersion"`
	LastPlayed    string `json:"lastPlayed"`
	BaseModLoader *struct {
		Name         string `json:"name"`
		ForgeVersion string `json:"forgeVersion"`
	} `json:"baseModLoader"`
	InstalledModpack *struct {
		ThumbnailURL string `json:"thumbnailUrl"`
		AddonID      int64  `json:"addonID"`
	} `json:"installedModpack"`
}

func readCurseForge(dir string) (domain.RawInstance, error) {
	var cf curseForgeInstance
	if err := readJSON(filepath.Join(dir, curseForgeInstanceFile), &cf); err != nil {
		return domain.RawInstance{}, err
	}

	instance := domain.RawInstance{
		Name:             cf.Name,
		Path:             dir,
		MinecraftPath:    dir,
		ReleaseID:        cf.GameVersion,
		LastPlayedString: cf.LastPlayed,
		Modloader:        domain.VanillaModloader(),
		Type:             domain.InstanceTypeCurseForge,
	}

	if loader := cf.BaseModLoader; loader != nil {
		if typ, ok := domain.ModloaderFromCurseForge(loader.Name); ok {
			instance.Modloader = domain.Modloader{Name: loader.Name, Type: typ, Version: loader.ForgeVersion}
		}
	}

	if pack := cf.InstalledModpack; pack != nil {
		switch {
		case pack.ThumbnailURL != "":
			instance.Icon = pack.ThumbnailURL
		case pack.AddonID > 0:
			instance.Icon = "curse:" + strconv.FormatInt(pack.AddonID, 10)
		}
	}

	meta, err := loadMetadata(dir)
	if err != nil {
		return domain.RawInstance{}, err
	}
	instance.ID = meta.InstanceID

	return instance, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	return nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

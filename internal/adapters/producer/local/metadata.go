package local

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MetadataFileName is the per-instance file yamcl owns inside each instance directory.
const MetadataFileName = "yamcl-data.json"

type metadata struct {
	InstanceID string   `json:"instance_id"`
	LaunchArgs []string `json:"launch_args,omitempty"`
}

type metadataFile struct {
	InstanceID json.RawMessage `json:"instance_id"`
	LaunchArgs []string        `json:"launch_args,omitempty"`
}

var errNoLaunchArgs = errors.New("no launch_args configured")

// loadMetadata reads the instance metadata, creating it with a fresh id when
// the file or its id is missing. A file that does not decode is left alone
// and reported. Numeric ids from older files are kept as text.
func loadMetadata(dir string) (metadata, error) {
	meta, err := readMetadata(dir)
	switch {
	case err == nil && meta.InstanceID != "":
		return meta, nil
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return metadata{}, err
	}

	meta.InstanceID = uuid.NewString()
	if err := writeMetadata(dir, meta); err != nil {
		return metadata{}, err
	}

	return meta, nil
}

func readMetadata(dir string) (metadata, error) {
	data, err := os.ReadFile(filepath.Join(dir, MetadataFileName))
	if err != nil {
		return metadata{}, err
	}

	var file metadataFile
	if err := json.Unmarshal(data, &file); err != nil {
		return metadata{}, fmt.Errorf("decode %s: %w", MetadataFileName, err)
	}

	meta := metadata{LaunchArgs: file.LaunchArgs}
	raw := bytes.TrimSpace(file.InstanceID)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
	case raw[0] == '"':
		var id string
		if err := json.Unmarshal(raw, &id); err != nil {
			return metadata{}, fmt.Errorf("decode instance_id: %w", err)
		}
		meta.InstanceID = strings.TrimSpace(id)
	default:
		var id json.Number
		if err := json.Unmarshal(raw, &id); err != nil {
			return metadata{}, fmt.Errorf("decode instance_id: %w", err)
		}
		meta.InstanceID = id.String()
	}

	return meta, nil
}

func writeMetadata(dir string, meta metadata) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", MetadataFileName, err)
	}

	path := filepath.Join(dir, MetadataFileName)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

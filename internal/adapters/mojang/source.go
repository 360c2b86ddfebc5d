package mojang

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bnema/yamcl/internal/domain"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

const (
	DefaultManifestURL     = "https://piston-meta.mojang.com/mc/game/version_manifest_v2.json"
	DefaultRequestTimeout  = 15 * time.Second
	maxManifestBytes       = 8 << 20
	manifestSchemaResource = "manifest.schema.json"
)

var ErrInvalidManifest = errors.New("invalid version manifest")

//go:embed manifest.schema.json
var manifestSchema []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Source fetches the launcher version manifest over HTTP.
type Source struct {
	URL            string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

type manifestPayload struct {
	Latest struct {
		Release  string `json:"release"`
		Snapshot string `json:"snapshot"`
	} `json:"latest"`
	Versions []struct {
		ID          string `json:"id"`
		Type        string `json:"type"`
		URL         string `json:"url"`
		ReleaseTime string `json:"releaseTime"`
	} `json:"versions"`
}

func (s Source) FetchManifest(ctx context.Context) (domain.VersionManifest, error) {
	requestCtx, cancel := s.requestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, s.url(), nil)
	if err != nil {
		return domain.VersionManifest{}, fmt.Errorf("create manifest request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient().Do(req)
	if err != nil {
		return domain.VersionManifest{}, fmt.Errorf("fetch version manifest: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return domain.VersionManifest{}, fmt.Errorf("fetch version manifest: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxManifestBytes+1))
	if err != nil {
		return domain.VersionManifest{}, fmt.Errorf("read version manifest: %w", err)
	}
	if len(body) > maxManifestBytes {
		return domain.VersionManifest{}, fmt.Errorf("%w: body exceeds %d bytes", ErrInvalidManifest, maxManifestBytes)
	}

	return decodeManifest(body)
}

func decodeManifest(body []byte) (domain.VersionManifest, error) {
	if err := validateManifest(body); err != nil {
		return domain.VersionManifest{}, err
	}

	var payload manifestPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.VersionManifest{}, fmt.Errorf("decode version manifest: %w", err)
	}

	manifest := domain.VersionManifest{
		Latest: domain.LatestReleases{
			Release:  payload.Latest.Release,
			Snapshot: payload.Latest.Snapshot,
		},
		Releases: make([]domain.Release, 0, len(payload.Versions)),
	}
	for _, v := range payload.Versions {
		released, err := time.Parse(time.RFC3339, v.ReleaseTime)
		if err != nil {
			return domain.VersionManifest{}, fmt.Errorf("%w: release %q: %w", ErrInvalidManifest, v.ID, err)
		}
		manifest.Releases = append(manifest.Releases, domain.Release{
			ID:          v.ID,
			Type:        domain.ReleaseType(v.Type),
			URL:         v.URL,
			ReleaseTime: released,
		})
	}
	return manifest, nil
}

func validateManifest(body []byte) error {
	schema, err := loadSchema()
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	if err := schema.Validate(inst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	return nil
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(manifestSchema))
		if err != nil {
			schemaErr = fmt.Errorf("parse manifest schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(manifestSchemaResource, doc); err != nil {
			schemaErr = fmt.Errorf("add manifest schema: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(manifestSchemaResource)
	})
	return compiledSchema, schemaErr
}

func (s Source) url() string {
	if u := strings.TrimSpace(s.URL); u != "" {
		return u
	}
	return DefaultManifestURL
}

func (s Source) httpClient() *http.Client {
	if s.HTTPClient != nil {
		return s.HTTPClient
	}
	return http.DefaultClient
}

func (s Source) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	timeout := s.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

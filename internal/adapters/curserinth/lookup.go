package curserinth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL        = "https://curserinth-api.kuylar.dev"
	DefaultRequestTimeout = 10 * time.Second
	maxProjectBytes       = 1 << 20
)

var ErrNoIcon = errors.New("project has no icon")

// Lookup resolves CurseForge project icons through the CurseRinth API.
type Lookup struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

type projectResponse struct {
	IconURL string `json:"icon_url"`
}

func (l Lookup) IconURL(ctx context.Context, projectID string) (string, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return "", errors.New("project id is required")
	}

	endpoint, err := l.projectURL(projectID)
	if err != nil {
		return "", err
	}

	requestCtx, cancel := l.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create project request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("lookup project %s: %w", projectID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("lookup project %s: unexpected status %s", projectID, resp.Status)
	}

	var payload projectResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxProjectBytes)).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode project %s: %w", projectID, err)
	}
	if strings.TrimSpace(payload.IconURL) == "" {
		return "", fmt.Errorf("lookup project %s: %w", projectID, ErrNoIcon)
	}
	return payload.IconURL, nil
}

func (l Lookup) projectURL(projectID string) (string, error) {
	base := strings.TrimSpace(l.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	return parsed.JoinPath("v2", "project", projectID).String(), nil
}

func (l Lookup) httpClient() *http.Client {
	if l.HTTPClient != nil {
		return l.HTTPClient
	}
	return http.DefaultClient
}

func (l Lookup) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	timeout := l.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

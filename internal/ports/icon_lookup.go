package ports

import "context"

type IconLookup interface {
	IconURL(ctx context.Context, projectID string) (string, error)
}

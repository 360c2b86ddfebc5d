package ports

import (
	"context"

	"github.com/bnema/yamcl/internal/domain"
)

// GatherStream yields the events of one gather session. Closing it discards
// any events not yet received.
type GatherStream interface {
	Events() <-chan domain.GatherEvent
	Close() error
}

type LaunchSubscription interface {
	Events() <-chan domain.LaunchStatus
	Close()
}

// Producer is the backend that discovers instances and runs processes.
type Producer interface {
	StartGather(ctx context.Context, root string) (GatherStream, error)
	ProbeRuntime(ctx context.Context, path string, args []string) (string, error)
	Launch(ctx context.Context, req domain.LaunchRequest) error
	SubscribeLaunchStatus(instanceID string) LaunchSubscription
	UnlockIconCache(ctx context.Context, root string) error
}

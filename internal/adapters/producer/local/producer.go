package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/yamcl/internal/domain"
	"github.com/bnema/yamcl/internal/ports"
)

const (
	defaultScanConcurrency = 8
	streamBuffer           = 32
	subscriptionBuffer     = 16
)

type Options struct {
	// ScanConcurrency bounds how many instance directories are parsed at once.
	ScanConcurrency int
}

// Producer discovers instances on the local filesystem and runs runtimes as
// child processes.
type Producer struct {
	concurrency int
	probe       runFunc
	start       startFunc

	mu            sync.Mutex
	subscriptions map[string]map[*subscription]struct{}
	iconRoots     map[string]struct{}
}

var _ ports.Producer = (*Producer)(nil)

func New(opts Options) *Producer {
	if opts.ScanConcurrency <= 0 {
		opts.ScanConcurrency = defaultScanConcurrency
	}

	return &Producer{
		concurrency:   opts.ScanConcurrency,
		probe:         runCommand,
		start:         startCommand,
		subscriptions: map[string]map[*subscription]struct{}{},
		iconRoots:     map[string]struct{}{},
	}
}

// UnlockIconCache checks that root is a readable directory and records it as
// an icon source.
func (p *Producer) UnlockIconCache(ctx context.Context, root string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("unlock icon directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("unlock icon directory: %s is not a directory", root)
	}

	p.mu.Lock()
	p.iconRoots[root] = struct{}{}
	p.mu.Unlock()

	return nil
}

// StartGather scans root in the background. The stream's events channel is
// closed once the scan is done or the stream is closed.
func (p *Producer) StartGather(ctx context.Context, root string) (ports.GatherStream, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read instance directory %s: %w", root, err)
	}

	scanCtx, cancel := context.WithCancel(ctx)
	stream := &gatherStream{
		events: make(chan domain.GatherEvent, streamBuffer),
		cancel: cancel,
	}

	go p.scan(scanCtx, root, entries, stream.events)

	return stream, nil
}

type gatherStream struct {
	events chan domain.GatherEvent
	cancel context.CancelFunc
	once   sync.Once
}

func (s *gatherStream) Events() <-chan domain.GatherEvent {
	return s.events
}

func (s *gatherStream) Close() error {
	s.once.Do(s.cancel)
	return nil
}

func (p *Producer) SubscribeLaunchStatus(instanceID string) ports.LaunchSubscription {
	sub := &subscription{
		producer:   p,
		instanceID: instanceID,
		events:     make(chan domain.LaunchStatus, subscriptionBuffer),
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.subscriptions[instanceID] == nil {
		p.subscriptions[instanceID] = map[*subscription]struct{}{}
	}
	p.subscriptions[instanceID][sub] = struct{}{}

	return sub
}

// publish fans status out to the instance's subscribers. A full subscriber
// misses the update rather than blocking the launch.
func (p *Producer) publish(status domain.LaunchStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for sub := range p.subscriptions[status.InstanceID] {
		select {
		case sub.events <- status:
		default:
		}
	}
}

type subscription struct {
	producer   *Producer
	instanceID string
	events     chan domain.LaunchStatus
	once       sync.Once
}

func (s *subscription) Events() <-chan domain.LaunchStatus {
	return s.events
}

func (s *subscription) Close() {
	s.once.Do(func() {
		p := s.producer
		p.mu.Lock()
		defer p.mu.Unlock()

		delete(p.subscriptions[s.instanceID], s)
		if len(p.subscriptions[s.instanceID]) == 0 {
			delete(p.subscriptions, s.instanceID)
		}
		close(s.events)
	})
}

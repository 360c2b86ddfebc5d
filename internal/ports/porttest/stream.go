package porttest

import (
	"sync"

	"github.com/bnema/yamcl/internal/domain"
	"github.com/bnema/yamcl/internal/ports"
)

// Stream is a GatherStream fed by the test.
type Stream struct {
	events chan domain.GatherEvent
	once   sync.Once
	mu     sync.Mutex
	closed bool
}

var _ ports.GatherStream = (*Stream)(nil)

func NewStream() *Stream {
	return &Stream{events: make(chan domain.GatherEvent, 64)}
}

func (s *Stream) Events() <-chan domain.GatherEvent {
	return s.events
}

// Send delivers an event unless the stream was closed.
func (s *Stream) Send(event domain.GatherEvent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	s.events <- event

	return true
}

func (s *Stream) Close() error {
	s.once.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.closed = true
		close(s.events)
	})

	return nil
}

func (s *Stream) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closed
}

// Subscription is a LaunchSubscription fed by the test.
type Subscription struct {
	events chan domain.LaunchStatus
	mu     sync.Mutex
	closed bool
}

var _ ports.LaunchSubscription = (*Subscription)(nil)

func NewSubscription() *Subscription {
	return &Subscription{events: make(chan domain.LaunchStatus, 16)}
}

func (s *Subscription) Events() <-chan domain.LaunchStatus {
	return s.events
}

func (s *Subscription) Send(status domain.LaunchStatus) {
	s.events <- status
}

func (s *Subscription) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
}

func (s *Subscription) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closed
}

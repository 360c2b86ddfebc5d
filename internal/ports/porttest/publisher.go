package porttest

import (
	"sync"

	"github.com/bnema/yamcl/internal/domain"
	"github.com/bnema/yamcl/internal/ports"
)

// Publisher records every published notification list.
type Publisher struct {
	mu    sync.Mutex
	lists [][]domain.Notification
}

var _ ports.NotificationPublisher = (*Publisher)(nil)

func (p *Publisher) Publish(notifications []domain.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.lists = append(p.lists, notifications)
}

func (p *Publisher) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.lists)
}

func (p *Publisher) Last() []domain.Notification {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.lists) == 0 {
		return nil
	}

	return p.lists[len(p.lists)-1]
}

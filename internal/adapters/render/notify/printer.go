package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/bnema/yamcl/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Printer writes one line per notification change. Repeated snapshots that
// leave a notification untouched print nothing, and a running notification
// prints once until its status changes.
type Printer struct {
	mu     sync.Mutex
	out    io.Writer
	seen   map[string]domain.Notification
	styles map[domain.NotificationStatus]lipgloss.Style
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:  out,
		seen: make(map[string]domain.Notification),
		styles: map[domain.NotificationStatus]lipgloss.Style{
			domain.NotificationRunning: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			domain.NotificationSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
			domain.NotificationError:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		},
	}
}

func (p *Printer) Publish(notifications []domain.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()

	current := make(map[string]struct{}, len(notifications))
	for _, n := range notifications {
		current[n.Key] = struct{}{}
		if prev, ok := p.seen[n.Key]; ok && prev.Status == n.Status &&
			(prev.Message == n.Message || n.Status == domain.NotificationRunning) {
			continue
		}
		p.seen[n.Key] = n
		_, _ = fmt.Fprintln(p.out, p.line(n))
	}

	for key := range p.seen {
		if _, ok := current[key]; !ok {
			delete(p.seen, key)
		}
	}
}

func (p *Printer) line(n domain.Notification) string {
	return p.styles[n.Status].Render(fmt.Sprintf("%s %s", marker(n.Status), n.Message))
}

func marker(status domain.NotificationStatus) string {
	switch status {
	case domain.NotificationSuccess:
		return "✓"
	case domain.NotificationError:
		return "✗"
	default:
		return "…"
	}
}

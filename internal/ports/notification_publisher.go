package ports

import "github.com/bnema/yamcl/internal/domain"

// NotificationPublisher receives the full notification list after every change.
type NotificationPublisher interface {
	Publish(notifications []domain.Notification)
}

type NotificationPublisherFunc func([]domain.Notification)

func (f NotificationPublisherFunc) Publish(notifications []domain.Notification) {
	f(notifications)
}

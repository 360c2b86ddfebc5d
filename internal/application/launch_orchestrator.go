package application

import (
	"context"
	"fmt"

	"github.com/bnema/yamcl/internal/domain"
	"github.com/bnema/yamcl/internal/logging"
	"github.com/bnema/yamcl/internal/ports"
)

// LaunchOrchestrator selects a runtime for an instance, launches it and
// relays the producer's status stream into the notification registry.
type LaunchOrchestrator struct {
	selector      *RuntimeSelector
	producer      ports.Producer
	notifications *NotificationRegistry
}

func NewLaunchOrchestrator(selector *RuntimeSelector, producer ports.Producer, notifications *NotificationRegistry) *LaunchOrchestrator {
	return &LaunchOrchestrator{
		selector:      selector,
		producer:      producer,
		notifications: notifications,
	}
}

// Launch blocks until the producer reports a terminal status and returns it.
// The status subscription is released on every return path.
func (o *LaunchOrchestrator) Launch(ctx context.Context, instance domain.Instance) (domain.LaunchStatus, error) {
	key := domain.LaunchNotificationKey(instance.ID)
	log := logging.FromContext(ctx).With().Str("instance", instance.ID).Logger()

	o.notifications.Create(key, fmt.Sprintf("Preparing %s...", instance.Name))

	runtime, err := o.selector.SelectFor(ctx, instance.ReleaseID)
	if err != nil {
		o.notifications.Finish(key, fmt.Sprintf("No Java runtime for %s: %s", instance.Name, err), domain.NotificationError)
		return domain.LaunchStatus{}, err
	}
	log.Debug().Str("runtime", runtime.Path).Str("release", instance.ReleaseID).Msg("runtime selected")

	sub := o.producer.SubscribeLaunchStatus(instance.ID)
	defer sub.Close()

	if err := o.producer.Launch(ctx, domain.LaunchRequest{Instance: instance, Runtime: runtime}); err != nil {
		perr := &domain.ProducerError{Op: "launch instance", Err: err}
		o.notifications.Finish(key, fmt.Sprintf("Failed to launch %s: %s", instance.Name, err), domain.NotificationError)
		return domain.LaunchStatus{}, perr
	}

	events := sub.Events()
	for {
		select {
		case <-ctx.Done():
			return domain.LaunchStatus{}, ctx.Err()

		case status, ok := <-events:
			if !ok {
				o.notifications.Finish(key, fmt.Sprintf("Lost track of %s", instance.Name), domain.NotificationError)
				return domain.LaunchStatus{}, &domain.ProducerError{Op: "launch status", Err: domain.ErrStreamClosed}
			}

			log.Debug().Str("status", string(status.Status)).Str("text", status.Text).Msg("launch status")
			if status.Status.Terminal() {
				o.notifications.Finish(key, status.Text, status.Status)
				return status, nil
			}
			o.notifications.Create(key, status.Text, domain.NotificationRunning)
		}
	}
}

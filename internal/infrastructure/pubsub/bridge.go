package pubsub

import (
	"context"
	"fmt"

	"github.com/kazihub-inc/kazihub/internal/domain/entitlement"
	"github.com/kazihub-inc/kazihub/internal/domain/shared/events"
	"github.com/kazihub-inc/kazihub/internal/shared/logger"
)

// RegisterEntitlementBridge forwards in-process entitlement.changed events to
// the Redis bus, so other instances (and their guards) see them. The local
// dispatcher stays the source of truth for same-process listeners.
func RegisterEntitlementBridge(
	dispatcher events.EventSubscriber,
	bus EntitlementEventPublisher,
	log logger.Interface,
) error {
	handler := events.NewSimpleEventHandler(entitlement.EventTypeChanged, func(event events.DomainEvent) error {
		changed, ok := event.(*entitlement.ChangedEvent)
		if !ok {
			return fmt.Errorf("unexpected event payload for %s", event.GetEventType())
		}

		ctx := context.Background()
		var err error
		switch {
		case changed.TrialExpired:
			err = bus.PublishTrialExpiry(ctx, changed.AccountEmail, changed.PlanID)
		case changed.Active:
			err = bus.PublishActivation(ctx, changed.AccountEmail, changed.PlanID)
		default:
			err = bus.PublishDeactivation(ctx, changed.AccountEmail, changed.PlanID)
		}
		if err != nil {
			log.Warnw("failed to forward entitlement event to redis",
				"account_email", changed.AccountEmail,
				"error", err,
			)
		}
		return nil
	})

	return dispatcher.Subscribe(entitlement.EventTypeChanged, handler)
}

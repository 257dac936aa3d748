package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kazihub-inc/kazihub/internal/shared/logger"
)

// EntitlementChangeType represents the type of entitlement change event
type EntitlementChangeType string

const (
	// EntitlementChangeActivation indicates an entitlement was activated
	EntitlementChangeActivation EntitlementChangeType = "activation"
	// EntitlementChangeDeactivation indicates an entitlement was cancelled or replaced
	EntitlementChangeDeactivation EntitlementChangeType = "deactivation"
	// EntitlementChangeTrialExpiry indicates a trial hit its cutoff
	EntitlementChangeTrialExpiry EntitlementChangeType = "trial_expiry"
)

// EntitlementChangeEvent is the cross-instance form of the entitlement.changed
// signal. Every connected instance re-evaluates guards for the account.
type EntitlementChangeEvent struct {
	AccountEmail string                `json:"account_email"`
	PlanID       string                `json:"plan_id"`
	ChangeType   EntitlementChangeType `json:"change_type"`
	Timestamp    int64                 `json:"timestamp"`
}

// EntitlementEventHandler is a callback function for handling entitlement events
type EntitlementEventHandler func(ctx context.Context, event EntitlementChangeEvent)

// EntitlementEventPublisher defines the interface for publishing entitlement events
type EntitlementEventPublisher interface {
	PublishActivation(ctx context.Context, accountEmail, planID string) error
	PublishDeactivation(ctx context.Context, accountEmail, planID string) error
	PublishTrialExpiry(ctx context.Context, accountEmail, planID string) error
}

// EntitlementEventSubscriber defines the interface for subscribing to entitlement events
type EntitlementEventSubscriber interface {
	Subscribe(ctx context.Context, handler EntitlementEventHandler) error
}

const entitlementChangeChannel = "kazihub:entitlement:change"

// RedisEntitlementEventBus implements both EntitlementEventPublisher and
// EntitlementEventSubscriber using Redis Pub/Sub for cross-instance
// event distribution
type RedisEntitlementEventBus struct {
	client *redis.Client
	logger logger.Interface
}

// NewRedisEntitlementEventBus creates a new Redis-based entitlement event bus
func NewRedisEntitlementEventBus(client *redis.Client, logger logger.Interface) *RedisEntitlementEventBus {
	return &RedisEntitlementEventBus{
		client: client,
		logger: logger,
	}
}

// PublishActivation publishes an entitlement activation event
func (b *RedisEntitlementEventBus) PublishActivation(ctx context.Context, accountEmail, planID string) error {
	return b.publish(ctx, EntitlementChangeEvent{
		AccountEmail: accountEmail,
		PlanID:       planID,
		ChangeType:   EntitlementChangeActivation,
		Timestamp:    time.Now().Unix(),
	})
}

// PublishDeactivation publishes an entitlement deactivation event
func (b *RedisEntitlementEventBus) PublishDeactivation(ctx context.Context, accountEmail, planID string) error {
	return b.publish(ctx, EntitlementChangeEvent{
		AccountEmail: accountEmail,
		PlanID:       planID,
		ChangeType:   EntitlementChangeDeactivation,
		Timestamp:    time.Now().Unix(),
	})
}

// PublishTrialExpiry publishes a trial expiry event
func (b *RedisEntitlementEventBus) PublishTrialExpiry(ctx context.Context, accountEmail, planID string) error {
	return b.publish(ctx, EntitlementChangeEvent{
		AccountEmail: accountEmail,
		PlanID:       planID,
		ChangeType:   EntitlementChangeTrialExpiry,
		Timestamp:    time.Now().Unix(),
	})
}

func (b *RedisEntitlementEventBus) publish(ctx context.Context, event EntitlementChangeEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.client.Publish(ctx, entitlementChangeChannel, data).Err(); err != nil {
		b.logger.Errorw("failed to publish entitlement change event",
			"account_email", event.AccountEmail,
			"change_type", event.ChangeType,
			"error", err,
		)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debugw("entitlement change event published",
		"account_email", event.AccountEmail,
		"change_type", event.ChangeType,
	)
	return nil
}

// Subscribe subscribes to entitlement change events and calls the handler
// for each event. Blocks until the context is cancelled.
func (b *RedisEntitlementEventBus) Subscribe(ctx context.Context, handler EntitlementEventHandler) error {
	pubsub := b.client.Subscribe(ctx, entitlementChangeChannel)
	defer pubsub.Close()

	// Wait for subscription confirmation
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel: %w", err)
	}

	b.logger.Infow("subscribed to entitlement change events", "channel", entitlementChangeChannel)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return fmt.Errorf("subscription channel closed")
			}

			var event EntitlementChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				b.logger.Warnw("failed to unmarshal entitlement change event",
					"payload", msg.Payload,
					"error", err,
				)
				continue
			}
			handler(ctx, event)
		}
	}
}

package entitlement

import "time"

// EventTypeChanged is the single cross-view signal of this subsystem:
// published after every entitlement mutation so guards and dashboards
// re-evaluate without polling.
const EventTypeChanged = "entitlement.changed"

// ChangedEvent is broadcast after an entitlement record is persisted.
type ChangedEvent struct {
	AccountEmail string
	Active       bool
	TrialExpired bool
	PlanID       string
	Timestamp    time.Time
}

// NewActivatedEvent builds the event for a trial start or paid activation.
func NewActivatedEvent(accountEmail, planID string) *ChangedEvent {
	return &ChangedEvent{
		AccountEmail: accountEmail,
		Active:       true,
		PlanID:       planID,
		Timestamp:    time.Now().UTC(),
	}
}

// NewDeactivatedEvent builds the event for a cancellation.
func NewDeactivatedEvent(accountEmail, planID string) *ChangedEvent {
	return &ChangedEvent{
		AccountEmail: accountEmail,
		Active:       false,
		PlanID:       planID,
		Timestamp:    time.Now().UTC(),
	}
}

// NewTrialExpiredEvent builds the event for a lazy trial expiry.
func NewTrialExpiredEvent(accountEmail, planID string) *ChangedEvent {
	return &ChangedEvent{
		AccountEmail: accountEmail,
		Active:       false,
		TrialExpired: true,
		PlanID:       planID,
		Timestamp:    time.Now().UTC(),
	}
}

// GetEventType returns the event type
func (e *ChangedEvent) GetEventType() string {
	return EventTypeChanged
}

// GetAggregateID returns the account email the change applies to
func (e *ChangedEvent) GetAggregateID() string {
	return e.AccountEmail
}

// GetOccurredAt returns when the event occurred
func (e *ChangedEvent) GetOccurredAt() time.Time {
	return e.Timestamp
}

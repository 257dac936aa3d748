package events

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kazihub-inc/kazihub/internal/shared/logger"
)

type testEvent struct {
	occurred time.Time
}

func (e testEvent) GetAggregateID() string   { return "agg-1" }
func (e testEvent) GetEventType() string     { return "entitlement.changed" }
func (e testEvent) GetOccurredAt() time.Time { return e.occurred }

func TestDispatcher_HandlerErrorDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryEventDispatcher(10, logger.NewLogger())
	require.NoError(t, d.Start())
	defer d.Stop()

	require.NoError(t, d.Subscribe("entitlement.changed", NewSimpleEventHandler("entitlement.changed", func(DomainEvent) error {
		return errors.New("handler down")
	})))

	done := make(chan struct{})
	require.NoError(t, d.Subscribe("entitlement.changed", NewSimpleEventHandler("entitlement.changed", func(DomainEvent) error {
		close(done)
		return nil
	})))

	require.NoError(t, d.Publish(testEvent{occurred: time.Now()}))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second handler never ran")
	}
}

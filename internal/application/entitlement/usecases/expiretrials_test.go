package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazihub-inc/kazihub/internal/domain/entitlement"
)

func TestExpireTrials_SweepsElapsedOnly(t *testing.T) {
	f := newAccessFixture(t)
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f.freeze(start)

	_, err := f.startTrial.Execute(ctx, StartTrialCommand{AccountEmail: "old@x.com", PlanID: "handyman-basic"})
	require.NoError(t, err)

	f.freeze(start.Add(2 * 24 * time.Hour))
	_, err = f.startTrial.Execute(ctx, StartTrialCommand{AccountEmail: "fresh@x.com", PlanID: "handyman-basic"})
	require.NoError(t, err)

	// At day 4 only the first trial has elapsed.
	f.freeze(start.Add(4 * 24 * time.Hour))
	expired, err := f.sweep.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	oldList, err := f.entitlementRepo.ListByEmail(ctx, "old@x.com")
	require.NoError(t, err)
	assert.False(t, oldList[0].Active())

	freshList, err := f.entitlementRepo.ListByEmail(ctx, "fresh@x.com")
	require.NoError(t, err)
	assert.True(t, freshList[0].Active())

	assert.Contains(t, f.cache.invalidated, "old@x.com")
	assert.NotContains(t, f.cache.invalidated, "fresh@x.com")
}

func TestExpireTrials_EmptySweep(t *testing.T) {
	f := newAccessFixture(t)

	expired, err := f.sweep.Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, expired)
	assert.Empty(t, f.publisher.byType(entitlement.EventTypeChanged))
}

func TestCancelEntitlement(t *testing.T) {
	f := newAccessFixture(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f.freeze(now)

	_, err := f.startTrial.Execute(ctx, StartTrialCommand{AccountEmail: "a@x.com", PlanID: "handyman-basic"})
	require.NoError(t, err)

	require.NoError(t, f.cancel.Execute(ctx, CancelEntitlementCommand{AccountEmail: "a@x.com"}))

	list, err := f.entitlementRepo.ListByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].Active())
	assert.NotNil(t, list[0].CancelledAt(), "cancellation takes effect immediately")
	assert.Nil(t, list[0].ExpiredAt())

	// A second cancel finds no active record.
	err = f.cancel.Execute(ctx, CancelEntitlementCommand{AccountEmail: "a@x.com"})
	assert.ErrorIs(t, err, entitlement.ErrNotFound)
}

package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazihub-inc/kazihub/internal/application/entitlement/dto"
	"github.com/kazihub-inc/kazihub/internal/domain/entitlement"
	"github.com/kazihub-inc/kazihub/internal/domain/plan"
	"github.com/kazihub-inc/kazihub/internal/shared/logger"
)

// --- helpers ---

type accessFixture struct {
	entitlementRepo *fakeEntitlementRepo
	trialUsageRepo  *fakeTrialUsageRepo
	cache           *fakeProjectionCache
	publisher       *fakePublisher
	evaluate        *EvaluateAccessUseCase
	startTrial      *StartTrialUseCase
	cancel          *CancelEntitlementUseCase
	sweep           *ExpireTrialsUseCase
}

func newAccessFixture(t *testing.T) *accessFixture {
	t.Helper()
	log := logger.NewLogger()
	f := &accessFixture{
		entitlementRepo: newFakeEntitlementRepo(),
		trialUsageRepo:  newFakeTrialUsageRepo(),
		cache:           newFakeProjectionCache(),
		publisher:       &fakePublisher{},
	}
	f.evaluate = NewEvaluateAccessUseCase(f.entitlementRepo, f.cache, f.publisher, log)
	f.startTrial = NewStartTrialUseCase(f.entitlementRepo, f.trialUsageRepo, plan.DefaultCatalog(), f.cache, f.publisher, log)
	f.cancel = NewCancelEntitlementUseCase(f.entitlementRepo, f.cache, f.publisher, log)
	f.sweep = NewExpireTrialsUseCase(f.entitlementRepo, f.cache, f.publisher, log)
	return f
}

func (f *accessFixture) freeze(at time.Time) {
	now := func() time.Time { return at }
	f.evaluate.now = now
	f.startTrial.now = now
	f.cancel.now = now
	f.sweep.now = now
}

// =====================================================================
// TestEvaluateAccess_*
// =====================================================================

func TestEvaluateAccess_NoAccount(t *testing.T) {
	f := newAccessFixture(t)

	decision, err := f.evaluate.Execute(context.Background(), EvaluateAccessCommand{})
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, dto.ReasonNoAccount, decision.Reason)
}

func TestEvaluateAccess_NoSubscription(t *testing.T) {
	f := newAccessFixture(t)

	decision, err := f.evaluate.Execute(context.Background(), EvaluateAccessCommand{AccountEmail: "a@x.com"})
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, dto.ReasonNoSubscription, decision.Reason)
}

func TestEvaluateAccess_TrialLifecycle(t *testing.T) {
	f := newAccessFixture(t)
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f.freeze(start)

	_, err := f.startTrial.Execute(ctx, StartTrialCommand{AccountEmail: "a@x.com", PlanID: "handyman-basic"})
	require.NoError(t, err)

	decision, err := f.evaluate.Execute(ctx, EvaluateAccessCommand{AccountEmail: "a@x.com"})
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.True(t, decision.IsTrialActive)
	assert.Equal(t, 3, decision.DaysLeft)
	assert.Equal(t, "handyman-basic", decision.PlanID)

	// Four days later the same evaluation denies and expires in place.
	f.freeze(start.Add(4 * 24 * time.Hour))
	decision, err = f.evaluate.Execute(ctx, EvaluateAccessCommand{AccountEmail: "a@x.com"})
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, dto.ReasonTrialExpired, decision.Reason)
	assert.Equal(t, "handyman-basic", decision.ExpiredPlanID)

	// The record was stamped, the projection dropped and the event published.
	list, err := f.entitlementRepo.ListByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].Active())
	assert.NotNil(t, list[0].ExpiredAt())
	assert.Contains(t, f.cache.invalidated, "a@x.com")

	published := f.publisher.byType(entitlement.EventTypeChanged)
	require.NotEmpty(t, published)
	last := published[len(published)-1].(*entitlement.ChangedEvent)
	assert.True(t, last.TrialExpired)

	// The expired-trial denial sticks across evaluations until a new
	// record is activated.
	decision, err = f.evaluate.Execute(ctx, EvaluateAccessCommand{AccountEmail: "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, dto.ReasonTrialExpired, decision.Reason)
	assert.Equal(t, "handyman-basic", decision.ExpiredPlanID)
}

func TestEvaluateAccess_ExpiredTrialDenialClearedByNewRecord(t *testing.T) {
	f := newAccessFixture(t)
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f.freeze(start)

	_, err := f.startTrial.Execute(ctx, StartTrialCommand{AccountEmail: "a@x.com", PlanID: "handyman-basic"})
	require.NoError(t, err)

	f.freeze(start.Add(4 * 24 * time.Hour))
	decision, err := f.evaluate.Execute(ctx, EvaluateAccessCommand{AccountEmail: "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, dto.ReasonTrialExpired, decision.Reason)

	// A paid plan replaces the expired trial as the latest record; once it
	// is cancelled the denial is plain no_subscription, not trial_expired.
	paid, err := entitlement.NewPaidEntitlement("a@x.com", "handyman-pro", "mpesa", start.Add(5*24*time.Hour))
	require.NoError(t, err)
	require.NoError(t, f.entitlementRepo.ReplaceActive(ctx, paid))
	require.NoError(t, f.cancel.Execute(ctx, CancelEntitlementCommand{AccountEmail: "a@x.com"}))

	decision, err = f.evaluate.Execute(ctx, EvaluateAccessCommand{AccountEmail: "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, dto.ReasonNoSubscription, decision.Reason)
}

func TestEvaluateAccess_ExpiryIsIdempotent(t *testing.T) {
	f := newAccessFixture(t)
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f.freeze(start)

	_, err := f.startTrial.Execute(ctx, StartTrialCommand{AccountEmail: "a@x.com", PlanID: "handyman-basic"})
	require.NoError(t, err)

	f.freeze(start.Add(5 * 24 * time.Hour))
	for i := 0; i < 3; i++ {
		_, err = f.evaluate.Execute(ctx, EvaluateAccessCommand{AccountEmail: "a@x.com"})
		require.NoError(t, err)
	}

	list, err := f.entitlementRepo.ListByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].Version(), "repeated evaluation should expire at most once")
}

func TestEvaluateAccess_PaidRecord(t *testing.T) {
	f := newAccessFixture(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f.freeze(now)

	record, err := entitlement.NewPaidEntitlement("b@x.com", "handyman-pro", "mpesa", now)
	require.NoError(t, err)
	require.NoError(t, f.entitlementRepo.ReplaceActive(ctx, record))

	// Paid access never lapses, no matter how much time passes.
	f.freeze(now.Add(400 * 24 * time.Hour))
	decision, err := f.evaluate.Execute(ctx, EvaluateAccessCommand{AccountEmail: "b@x.com"})
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.False(t, decision.IsTrialActive)
	assert.True(t, f.cache.premium["b@x.com"])
}

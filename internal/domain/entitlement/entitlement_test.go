package entitlement

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

func newTrial(t *testing.T, now time.Time) *Entitlement {
	t.Helper()
	ent, err := NewTrialEntitlement("worker@kazihub.co.ke", "handyman-basic", now, DefaultTrialDays)
	require.NoError(t, err)
	require.NotNil(t, ent)
	return ent
}

func newPaid(t *testing.T, now time.Time) *Entitlement {
	t.Helper()
	ent, err := NewPaidEntitlement("worker@kazihub.co.ke", "handyman-pro", "mpesa", now)
	require.NoError(t, err)
	require.NotNil(t, ent)
	return ent
}

// =====================================================================
// TestNewTrialEntitlement_*
// =====================================================================

func TestNewTrialEntitlement_ValidInput(t *testing.T) {
	now := time.Now().UTC()
	ent := newTrial(t, now)

	assert.True(t, strings.HasPrefix(ent.SID(), "ent_"), "SID should carry the ent_ prefix")
	assert.Equal(t, "worker@kazihub.co.ke", ent.AccountEmail())
	assert.Equal(t, "handyman-basic", ent.PlanID())
	assert.True(t, ent.Active())
	assert.True(t, ent.IsTrial())
	assert.Empty(t, ent.Method())
	assert.Equal(t, 1, ent.Version())

	require.NotNil(t, ent.TrialEnd())
	assert.Equal(t, now.Add(DefaultTrialDays*24*time.Hour), *ent.TrialEnd())
}

func TestNewTrialEntitlement_DefaultsTrialDays(t *testing.T) {
	now := time.Now().UTC()
	ent, err := NewTrialEntitlement("worker@kazihub.co.ke", "handyman-basic", now, 0)
	require.NoError(t, err)

	assert.Equal(t, DefaultTrialDays, ent.TrialDaysLeft(now))
}

func TestNewTrialEntitlement_MissingFields(t *testing.T) {
	now := time.Now().UTC()

	_, err := NewTrialEntitlement("", "handyman-basic", now, 3)
	assert.Error(t, err)

	_, err = NewTrialEntitlement("worker@kazihub.co.ke", "", now, 3)
	assert.Error(t, err)
}

// =====================================================================
// TestNewPaidEntitlement_*
// =====================================================================

func TestNewPaidEntitlement_ValidInput(t *testing.T) {
	now := time.Now().UTC()
	ent := newPaid(t, now)

	assert.True(t, ent.Active())
	assert.False(t, ent.IsTrial())
	assert.Nil(t, ent.TrialEnd())
	assert.Equal(t, "mpesa", ent.Method())
}

func TestNewPaidEntitlement_RequiresMethod(t *testing.T) {
	_, err := NewPaidEntitlement("worker@kazihub.co.ke", "handyman-pro", "", time.Now().UTC())
	assert.Error(t, err)
}

// =====================================================================
// TestTrialDaysLeft_*
// =====================================================================

func TestTrialDaysLeft_FullTrial(t *testing.T) {
	now := time.Now().UTC()
	ent := newTrial(t, now)

	assert.Equal(t, 3, ent.TrialDaysLeft(now))
}

func TestTrialDaysLeft_PartialDayRoundsUp(t *testing.T) {
	now := time.Now().UTC()
	ent := newTrial(t, now)

	// 2 days 1 hour remaining still counts as 3 days.
	assert.Equal(t, 3, ent.TrialDaysLeft(now.Add(23*time.Hour)))
	// One hour before the cutoff shows "expires today".
	assert.Equal(t, 1, ent.TrialDaysLeft(now.Add(71*time.Hour)))
}

func TestTrialDaysLeft_AtAndPastCutoff(t *testing.T) {
	now := time.Now().UTC()
	ent := newTrial(t, now)

	assert.Equal(t, 0, ent.TrialDaysLeft(now.Add(72*time.Hour)))
	assert.Equal(t, -1, ent.TrialDaysLeft(now.Add(4*24*time.Hour)))
}

func TestTrialDaysLeft_PaidIsZero(t *testing.T) {
	now := time.Now().UTC()
	ent := newPaid(t, now)

	assert.Equal(t, 0, ent.TrialDaysLeft(now))
}

// =====================================================================
// TestIsTrialElapsed_*
// =====================================================================

func TestIsTrialElapsed(t *testing.T) {
	now := time.Now().UTC()
	ent := newTrial(t, now)

	assert.False(t, ent.IsTrialElapsed(now))
	assert.False(t, ent.IsTrialElapsed(now.Add(71*time.Hour)))
	assert.True(t, ent.IsTrialElapsed(now.Add(72*time.Hour)))
	assert.True(t, ent.IsTrialElapsed(now.Add(30*24*time.Hour)))
}

func TestIsTrialElapsed_PaidNeverElapses(t *testing.T) {
	now := time.Now().UTC()
	ent := newPaid(t, now)

	assert.False(t, ent.IsTrialElapsed(now.Add(365*24*time.Hour)))
}

// =====================================================================
// TestExpire_*
// =====================================================================

func TestExpire_DeactivatesAndStamps(t *testing.T) {
	now := time.Now().UTC()
	ent := newTrial(t, now)

	later := now.Add(4 * 24 * time.Hour)
	require.NoError(t, ent.Expire(later))

	assert.False(t, ent.Active())
	require.NotNil(t, ent.ExpiredAt())
	assert.Equal(t, later, *ent.ExpiredAt())
	assert.Equal(t, 2, ent.Version())
}

func TestExpire_Idempotent(t *testing.T) {
	now := time.Now().UTC()
	ent := newTrial(t, now)

	later := now.Add(4 * 24 * time.Hour)
	require.NoError(t, ent.Expire(later))
	stamped := *ent.ExpiredAt()
	version := ent.Version()

	require.NoError(t, ent.Expire(later.Add(time.Hour)))
	assert.Equal(t, stamped, *ent.ExpiredAt(), "second expire should not restamp")
	assert.Equal(t, version, ent.Version(), "second expire should not bump the version")
}

func TestExpire_RejectsPaid(t *testing.T) {
	now := time.Now().UTC()
	ent := newPaid(t, now)

	err := ent.Expire(now)
	assert.ErrorIs(t, err, ErrNotATrial)
	assert.True(t, ent.Active())
}

// =====================================================================
// TestCancel_*
// =====================================================================

func TestCancel_ImmediateDeactivation(t *testing.T) {
	now := time.Now().UTC()
	ent := newTrial(t, now)

	// Cancelling mid-trial takes effect immediately, with no grace until
	// the trial end.
	cancelAt := now.Add(time.Hour)
	require.NoError(t, ent.Cancel(cancelAt))

	assert.False(t, ent.Active())
	require.NotNil(t, ent.CancelledAt())
	assert.Equal(t, cancelAt, *ent.CancelledAt())
	assert.Nil(t, ent.ExpiredAt())
}

func TestCancel_Inactive(t *testing.T) {
	now := time.Now().UTC()
	ent := newTrial(t, now)
	require.NoError(t, ent.Cancel(now))

	err := ent.Cancel(now)
	assert.ErrorIs(t, err, ErrNotActive)
}

// =====================================================================
// TestDeactivate_*
// =====================================================================

func TestDeactivate_ReplacedRecord(t *testing.T) {
	now := time.Now().UTC()
	ent := newTrial(t, now)

	ent.Deactivate(now.Add(time.Minute))

	assert.False(t, ent.Active())
	assert.Nil(t, ent.CancelledAt())
	assert.Nil(t, ent.ExpiredAt())
	assert.Equal(t, 2, ent.Version())

	// Deactivating again is a no-op.
	ent.Deactivate(now.Add(2 * time.Minute))
	assert.Equal(t, 2, ent.Version())
}

// =====================================================================
// TestReconstructEntitlement_*
// =====================================================================

func TestReconstructEntitlement_Valid(t *testing.T) {
	now := time.Now().UTC()
	end := now.Add(72 * time.Hour)

	ent, err := ReconstructEntitlement(EntitlementReconstructParams{
		ID:           7,
		SID:          "ent_test1234",
		AccountEmail: "worker@kazihub.co.ke",
		PlanID:       "handyman-basic",
		Since:        now,
		Active:       true,
		IsTrial:      true,
		TrialEnd:     &end,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)

	assert.Equal(t, uint(7), ent.ID())
	assert.Equal(t, 3, ent.TrialDaysLeft(now))
	assert.NotNil(t, ent.Metadata())
}

func TestReconstructEntitlement_TrialWithoutEnd(t *testing.T) {
	now := time.Now().UTC()

	_, err := ReconstructEntitlement(EntitlementReconstructParams{
		ID:           7,
		SID:          "ent_test1234",
		AccountEmail: "worker@kazihub.co.ke",
		PlanID:       "handyman-basic",
		Since:        now,
		Active:       true,
		IsTrial:      true,
		Version:      1,
	})
	assert.Error(t, err)
}

// =====================================================================
// TestValidate_*
// =====================================================================

func TestValidate(t *testing.T) {
	now := time.Now().UTC()

	trial := newTrial(t, now)
	assert.NoError(t, trial.Validate())

	paid := newPaid(t, now)
	assert.NoError(t, paid.Validate())
}

package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =====================================================================
// TestNewBillingCycle_*
// =====================================================================

func TestNewBillingCycle(t *testing.T) {
	monthly, err := NewBillingCycle("monthly")
	require.NoError(t, err)
	assert.Equal(t, CycleMonthly, monthly)

	annual, err := NewBillingCycle("annual")
	require.NoError(t, err)
	assert.Equal(t, CycleAnnual, annual)

	_, err = NewBillingCycle("weekly")
	assert.Error(t, err)
}

// =====================================================================
// TestNewPlan_*
// =====================================================================

func TestNewPlan_ValidInput(t *testing.T) {
	p, err := NewPlan("handyman-basic", "Handyman Basic", 49900, 499000, AudienceWorker, []string{"Verified badge"})
	require.NoError(t, err)

	assert.Equal(t, "handyman-basic", p.ID())
	assert.Equal(t, "Handyman Basic", p.Title())
	assert.Equal(t, int64(49900), p.PriceCents(CycleMonthly))
	assert.Equal(t, int64(499000), p.PriceCents(CycleAnnual))
	assert.Equal(t, AudienceWorker, p.Audience())
}

func TestNewPlan_Invalid(t *testing.T) {
	_, err := NewPlan("", "Handyman Basic", 49900, 499000, AudienceWorker, nil)
	assert.Error(t, err)

	_, err = NewPlan("handyman-basic", "", 49900, 499000, AudienceWorker, nil)
	assert.Error(t, err)

	_, err = NewPlan("handyman-basic", "Handyman Basic", -1, 499000, AudienceWorker, nil)
	assert.Error(t, err)
}

// =====================================================================
// TestCatalog_*
// =====================================================================

func TestDefaultCatalog(t *testing.T) {
	cat := DefaultCatalog()

	for _, id := range []string{"handyman-basic", "handyman-pro", "client-pro", "business"} {
		assert.True(t, cat.Has(id), "catalog should carry %s", id)
	}
	assert.False(t, cat.Has("enterprise"))

	assert.Len(t, cat.List(), 4)
}

func TestCatalog_Get(t *testing.T) {
	cat := DefaultCatalog()

	p, err := cat.Get("handyman-pro")
	require.NoError(t, err)
	assert.Equal(t, int64(99900), p.MonthlyCents())

	_, err = cat.Get("nope")
	assert.Error(t, err)
}

func TestCatalog_ListIsStable(t *testing.T) {
	cat := DefaultCatalog()

	first := cat.List()
	second := cat.List()
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID(), second[i].ID(), "listing order should be deterministic")
	}
}

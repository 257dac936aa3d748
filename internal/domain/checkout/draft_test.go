package checkout

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/kazihub-inc/kazihub/internal/domain/checkout/valueobjects"
	"github.com/kazihub-inc/kazihub/internal/domain/plan"
)

// --- helpers ---

func newDraft(t *testing.T) *Draft {
	t.Helper()
	d, err := NewDraft("worker@kazihub.co.ke", "handyman-pro", plan.CycleMonthly, time.Now(), DefaultTTL)
	require.NoError(t, err)
	require.NotNil(t, d)
	return d
}

func method(t *testing.T, tag string) vo.PaymentMethod {
	t.Helper()
	m, err := vo.NewPaymentMethod(tag)
	require.NoError(t, err)
	return m
}

func validBilling() vo.BillingDetails {
	return vo.BillingDetails{
		FullName:   "Wanjiku Kamau",
		Address:    "Moi Avenue 12",
		City:       "Nairobi",
		Country:    "Kenya",
		PostalCode: "00100",
		Email:      "wanjiku@kazihub.co.ke",
	}
}

func validCard() vo.CardDetails {
	return vo.CardDetails{
		HolderName: "Wanjiku Kamau",
		Number:     "4242 4242 4242 4242",
		Expiry:     "07/26",
		CVV:        "123",
	}
}

// draftInReviewing drives a fresh draft to the Reviewing state via mpesa.
func draftInReviewing(t *testing.T) *Draft {
	t.Helper()
	d := newDraft(t)
	require.NoError(t, d.SelectMethod(method(t, "mpesa")))
	errs, err := d.SubmitDetails(DetailsInput{Phone: "0712345678"})
	require.NoError(t, err)
	require.Empty(t, errs)
	return d
}

// =====================================================================
// TestNewDraft_*
// =====================================================================

func TestNewDraft_ValidInput(t *testing.T) {
	d := newDraft(t)

	assert.True(t, strings.HasPrefix(d.SID(), "chk_"), "SID should carry the chk_ prefix")
	assert.Equal(t, StateSelectingMethod, d.State())
	assert.True(t, d.Method().IsZero())
	assert.Empty(t, d.FieldErrors())
	assert.False(t, d.IsExpired(time.Now()))
	assert.True(t, d.IsExpired(time.Now().Add(DefaultTTL+time.Minute)))
}

func TestNewDraft_Invalid(t *testing.T) {
	now := time.Now()

	_, err := NewDraft("", "handyman-pro", plan.CycleMonthly, now, DefaultTTL)
	assert.Error(t, err)

	_, err = NewDraft("worker@kazihub.co.ke", "", plan.CycleMonthly, now, DefaultTTL)
	assert.Error(t, err)

	_, err = NewDraft("worker@kazihub.co.ke", "handyman-pro", "weekly", now, DefaultTTL)
	assert.Error(t, err)
}

// =====================================================================
// TestSelectMethod_*
// =====================================================================

func TestSelectMethod_MovesToFilling(t *testing.T) {
	d := newDraft(t)

	require.NoError(t, d.SelectMethod(method(t, "mpesa")))
	assert.Equal(t, StateFillingDetails, d.State())
	assert.Equal(t, "mpesa", d.Method().String())
}

func TestSelectMethod_ReselectClearsFields(t *testing.T) {
	d := newDraft(t)
	require.NoError(t, d.SelectMethod(method(t, "mpesa")))
	errs, err := d.SubmitDetails(DetailsInput{Phone: "0712"})
	require.NoError(t, err)
	require.NotEmpty(t, errs)

	require.NoError(t, d.SelectMethod(method(t, "card")))
	assert.Empty(t, d.FieldErrors())
	assert.Empty(t, d.Phone())
	assert.Equal(t, StateFillingDetails, d.State())
}

func TestSelectMethod_RejectedWhileSettling(t *testing.T) {
	d := draftInReviewing(t)
	require.NoError(t, d.BeginSettlement())

	err := d.SelectMethod(method(t, "card"))
	assert.Error(t, err)
}

// =====================================================================
// TestSubmitDetails_*
// =====================================================================

func TestSubmitDetails_Mpesa(t *testing.T) {
	d := newDraft(t)
	require.NoError(t, d.SelectMethod(method(t, "mpesa")))

	errs, err := d.SubmitDetails(DetailsInput{Phone: "0712 345 678"})
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, StateReviewing, d.State())
	assert.Equal(t, "0712345678", d.Phone(), "phone should be normalized to digits")
}

func TestSubmitDetails_MpesaShortPhone(t *testing.T) {
	d := newDraft(t)
	require.NoError(t, d.SelectMethod(method(t, "mpesa")))

	errs, err := d.SubmitDetails(DetailsInput{Phone: "0712"})
	require.NoError(t, err)
	assert.Contains(t, errs, "phone")
	assert.Equal(t, StateFillingDetails, d.State(), "validation failure stays in filling state")
}

func TestSubmitDetails_Card(t *testing.T) {
	d := newDraft(t)
	require.NoError(t, d.SelectMethod(method(t, "card")))

	errs, err := d.SubmitDetails(DetailsInput{Card: validCard(), Billing: validBilling()})
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, StateReviewing, d.State())
}

func TestSubmitDetails_CardBadExpiry(t *testing.T) {
	d := newDraft(t)
	require.NoError(t, d.SelectMethod(method(t, "card")))

	card := validCard()
	card.Expiry = "13/25"
	errs, err := d.SubmitDetails(DetailsInput{Card: card, Billing: validBilling()})
	require.NoError(t, err)
	assert.Contains(t, errs, "card_expiry")
	assert.Equal(t, errs, d.FieldErrors())
}

func TestSubmitDetails_CardCollectsAllErrors(t *testing.T) {
	d := newDraft(t)
	require.NoError(t, d.SelectMethod(method(t, "card")))

	errs, err := d.SubmitDetails(DetailsInput{})
	require.NoError(t, err)
	assert.Contains(t, errs, "card_number")
	assert.Contains(t, errs, "full_name")
	assert.Contains(t, errs, "email")
}

func TestSubmitDetails_Wallet(t *testing.T) {
	d := newDraft(t)
	require.NoError(t, d.SelectMethod(method(t, "paypal")))

	errs, err := d.SubmitDetails(DetailsInput{WalletEmail: "pay@kazihub.co.ke", Billing: validBilling()})
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, "pay@kazihub.co.ke", d.WalletEmail())
}

func TestSubmitDetails_WalletBadEmail(t *testing.T) {
	d := newDraft(t)
	require.NoError(t, d.SelectMethod(method(t, "googlepay")))

	errs, err := d.SubmitDetails(DetailsInput{WalletEmail: "not-an-email", Billing: validBilling()})
	require.NoError(t, err)
	assert.Contains(t, errs, "wallet_email")
}

func TestSubmitDetails_Crypto(t *testing.T) {
	d := newDraft(t)
	require.NoError(t, d.SelectMethod(method(t, "crypto-btc")))

	errs, err := d.SubmitDetails(DetailsInput{CryptoPayload: "bitcoin:" + btcAddr + "?amount=0.01"})
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, btcAddr, d.CryptoAddress())
}

func TestSubmitDetails_CryptoBadPayload(t *testing.T) {
	d := newDraft(t)
	require.NoError(t, d.SelectMethod(method(t, "crypto-eth")))

	errs, err := d.SubmitDetails(DetailsInput{CryptoPayload: "garbage"})
	require.NoError(t, err)
	assert.Contains(t, errs, "crypto_address")
}

func TestSubmitDetails_BeforeMethodSelection(t *testing.T) {
	d := newDraft(t)

	_, err := d.SubmitDetails(DetailsInput{Phone: "0712345678"})
	assert.Error(t, err)
}

// =====================================================================
// TestSettlementLifecycle_*
// =====================================================================

func TestSettlementLifecycle_Success(t *testing.T) {
	d := draftInReviewing(t)

	require.NoError(t, d.BeginSettlement())
	assert.Equal(t, StateSettling, d.State())

	require.NoError(t, d.MarkSucceeded())
	assert.Equal(t, StateSucceeded, d.State())
	assert.True(t, d.State().IsTerminal())
}

func TestSettlementLifecycle_DoubleConfirmRejected(t *testing.T) {
	d := draftInReviewing(t)
	require.NoError(t, d.BeginSettlement())

	err := d.BeginSettlement()
	assert.Error(t, err, "a second confirm while settling should be rejected")
}

func TestSettlementLifecycle_FailureKeepsDraft(t *testing.T) {
	d := draftInReviewing(t)
	require.NoError(t, d.BeginSettlement())

	require.NoError(t, d.MarkFailed("gateway declined"))
	assert.Equal(t, StateFailed, d.State())
	assert.Equal(t, "gateway declined", d.LastError())
	assert.Equal(t, "0712345678", d.Phone(), "entered fields survive a failure")

	require.NoError(t, d.Retry())
	assert.Equal(t, StateFillingDetails, d.State())
	assert.Equal(t, "0712345678", d.Phone())

	// A retried confirm clears the old error.
	errs, err := d.SubmitDetails(DetailsInput{Phone: "0712345678"})
	require.NoError(t, err)
	require.Empty(t, errs)
	require.NoError(t, d.BeginSettlement())
	assert.Empty(t, d.LastError())
}

func TestSettlementLifecycle_BackToEdit(t *testing.T) {
	d := draftInReviewing(t)

	require.NoError(t, d.BackToEdit())
	assert.Equal(t, StateFillingDetails, d.State())

	err := d.BackToEdit()
	assert.Error(t, err, "back is only valid while reviewing")
}

func TestSettlementLifecycle_SucceededIsFinal(t *testing.T) {
	d := draftInReviewing(t)
	require.NoError(t, d.BeginSettlement())
	require.NoError(t, d.MarkSucceeded())

	assert.Error(t, d.MarkFailed("too late"))
	assert.Error(t, d.Retry())
	assert.Error(t, d.BeginSettlement())
}

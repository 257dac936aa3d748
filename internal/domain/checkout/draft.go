// Package checkout implements the multi-method checkout state machine. A
// Draft is ephemeral: it lives in memory only and is destroyed on success,
// cancel or expiry; nothing is persisted until settlement succeeds.
package checkout

import (
	"fmt"
	"time"

	vo "github.com/kazihub-inc/kazihub/internal/domain/checkout/valueobjects"
	"github.com/kazihub-inc/kazihub/internal/domain/plan"
	"github.com/kazihub-inc/kazihub/internal/shared/id"
)

// DefaultTTL is how long an untouched draft survives before the janitor
// drops it.
const DefaultTTL = 30 * time.Minute

// DetailsInput carries the raw form fields of the FillingDetails step. Which
// subset is read depends on the selected method's kind.
type DetailsInput struct {
	Phone         string
	Card          vo.CardDetails
	Billing       vo.BillingDetails
	WalletEmail   string
	CryptoPayload string
}

// Draft is a checkout session in progress.
type Draft struct {
	sid          string
	accountEmail string
	planID       string
	cycle        plan.BillingCycle
	state        State
	method       vo.PaymentMethod

	phone         string
	card          vo.CardDetails
	billing       vo.BillingDetails
	walletEmail   string
	cryptoAddress string

	fieldErrors map[string]string
	lastError   string

	createdAt time.Time
	updatedAt time.Time
	expiresAt time.Time
}

// NewDraft opens a checkout session for a plan.
func NewDraft(accountEmail, planID string, cycle plan.BillingCycle, now time.Time, ttl time.Duration) (*Draft, error) {
	if accountEmail == "" {
		return nil, fmt.Errorf("account email is required")
	}
	if planID == "" {
		return nil, fmt.Errorf("plan ID is required")
	}
	if !cycle.IsValid() {
		return nil, fmt.Errorf("invalid billing cycle: %s", cycle)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	sid, err := id.NewCheckoutSID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate checkout SID: %w", err)
	}

	now = now.UTC()
	return &Draft{
		sid:          sid,
		accountEmail: accountEmail,
		planID:       planID,
		cycle:        cycle,
		state:        StateSelectingMethod,
		fieldErrors:  make(map[string]string),
		createdAt:    now,
		updatedAt:    now,
		expiresAt:    now.Add(ttl),
	}, nil
}

// SID returns the checkout session identifier
func (d *Draft) SID() string {
	return d.sid
}

// AccountEmail returns the purchasing account's email
func (d *Draft) AccountEmail() string {
	return d.accountEmail
}

// PlanID returns the plan being purchased
func (d *Draft) PlanID() string {
	return d.planID
}

// Cycle returns the selected billing cycle
func (d *Draft) Cycle() plan.BillingCycle {
	return d.cycle
}

// State returns the current state of the session
func (d *Draft) State() State {
	return d.state
}

// Method returns the selected payment method, zero-valued before selection
func (d *Draft) Method() vo.PaymentMethod {
	return d.method
}

// Phone returns the normalized mobile-money phone number
func (d *Draft) Phone() string {
	return d.phone
}

// Card returns the collected card details
func (d *Draft) Card() vo.CardDetails {
	return d.card
}

// Billing returns the collected billing address block
func (d *Draft) Billing() vo.BillingDetails {
	return d.billing
}

// WalletEmail returns the collected wallet account email
func (d *Draft) WalletEmail() string {
	return d.walletEmail
}

// CryptoAddress returns the validated crypto address
func (d *Draft) CryptoAddress() string {
	return d.cryptoAddress
}

// Clone returns an independent copy of the draft. Stores hand out clones so
// a caller's mutations only become visible through Save.
func (d *Draft) Clone() *Draft {
	c := *d
	c.fieldErrors = make(map[string]string, len(d.fieldErrors))
	for k, v := range d.fieldErrors {
		c.fieldErrors[k] = v
	}
	return &c
}

// FieldErrors returns the field-scoped errors of the last submission
func (d *Draft) FieldErrors() map[string]string {
	out := make(map[string]string, len(d.fieldErrors))
	for k, v := range d.fieldErrors {
		out[k] = v
	}
	return out
}

// LastError returns the top-level error of the last failed settlement
func (d *Draft) LastError() string {
	return d.lastError
}

// CreatedAt returns when the session was opened
func (d *Draft) CreatedAt() time.Time {
	return d.createdAt
}

// UpdatedAt returns when the session was last touched
func (d *Draft) UpdatedAt() time.Time {
	return d.updatedAt
}

// IsExpired reports whether the untouched session has passed its TTL.
func (d *Draft) IsExpired(now time.Time) bool {
	return now.After(d.expiresAt)
}

// SelectMethod picks the payment method and moves to FillingDetails.
// Reselecting while filling clears previously entered fields.
func (d *Draft) SelectMethod(method vo.PaymentMethod) error {
	if method.IsZero() {
		return fmt.Errorf("payment method is required")
	}
	if d.state != StateSelectingMethod && d.state != StateFillingDetails {
		return fmt.Errorf("cannot select payment method in state %s", d.state)
	}

	d.method = method
	d.phone = ""
	d.card = vo.CardDetails{}
	d.billing = vo.BillingDetails{}
	d.walletEmail = ""
	d.cryptoAddress = ""
	d.fieldErrors = make(map[string]string)
	d.transition(StateFillingDetails)
	return nil
}

// SubmitDetails validates the method-specific fields. On success the session
// moves to Reviewing; on validation failure it stays in FillingDetails with
// field-scoped errors recorded, and the returned map is non-empty.
func (d *Draft) SubmitDetails(input DetailsInput) (map[string]string, error) {
	if d.state != StateFillingDetails {
		return nil, fmt.Errorf("cannot submit details in state %s", d.state)
	}
	if d.method.IsZero() {
		return nil, fmt.Errorf("no payment method selected")
	}

	errs := make(map[string]string)

	switch d.method.Kind() {
	case vo.KindMobileMoney:
		digits, ok := vo.NormalizeMSISDN(input.Phone)
		if !ok {
			errs["phone"] = "phone number must contain at least 9 digits"
		} else {
			d.phone = digits
		}

	case vo.KindCard:
		for k, v := range input.Card.Validate() {
			errs[k] = v
		}
		for k, v := range input.Billing.Validate() {
			errs[k] = v
		}
		if len(errs) == 0 {
			d.card = input.Card
			d.billing = input.Billing
		}

	case vo.KindWalletEmail:
		if !vo.IsValidEmail(input.WalletEmail) {
			errs["wallet_email"] = "a valid wallet account email is required"
		}
		for k, v := range input.Billing.Validate() {
			errs[k] = v
		}
		if len(errs) == 0 {
			d.walletEmail = input.WalletEmail
			d.billing = input.Billing
		}

	case vo.KindCrypto:
		address, err := ExtractCryptoAddress(input.CryptoPayload, d.method.Currency())
		if err != nil {
			errs["crypto_address"] = err.Error()
		} else {
			d.cryptoAddress = address
		}

	default:
		return nil, fmt.Errorf("unsupported payment method kind: %s", d.method.Kind())
	}

	d.fieldErrors = errs
	if len(errs) > 0 {
		d.touch()
		return errs, nil
	}

	d.transition(StateReviewing)
	return nil, nil
}

// BackToEdit returns from Reviewing to FillingDetails, keeping the fields.
func (d *Draft) BackToEdit() error {
	if d.state != StateReviewing {
		return fmt.Errorf("cannot edit details in state %s", d.state)
	}
	d.transition(StateFillingDetails)
	return nil
}

// BeginSettlement moves to Settling. Only an explicit confirmation reaches
// this; a session already settling rejects the second submit.
func (d *Draft) BeginSettlement() error {
	if d.state == StateSettling {
		return fmt.Errorf("settlement already in progress")
	}
	if !d.state.CanTransitionTo(StateSettling) {
		return fmt.Errorf("cannot confirm checkout in state %s", d.state)
	}
	d.lastError = ""
	d.transition(StateSettling)
	return nil
}

// MarkSucceeded finishes the session after the entitlement write.
func (d *Draft) MarkSucceeded() error {
	if !d.state.CanTransitionTo(StateSucceeded) {
		return fmt.Errorf("cannot mark checkout succeeded in state %s", d.state)
	}
	d.transition(StateSucceeded)
	return nil
}

// MarkFailed records a settlement failure. The draft and all entered fields
// survive so the user can retry without re-entering data.
func (d *Draft) MarkFailed(reason string) error {
	if !d.state.CanTransitionTo(StateFailed) {
		return fmt.Errorf("cannot mark checkout failed in state %s", d.state)
	}
	d.lastError = reason
	d.transition(StateFailed)
	return nil
}

// Retry returns a failed session to FillingDetails.
func (d *Draft) Retry() error {
	if d.state != StateFailed {
		return fmt.Errorf("cannot retry checkout in state %s", d.state)
	}
	d.transition(StateFillingDetails)
	return nil
}

func (d *Draft) transition(target State) {
	d.state = target
	d.touch()
}

func (d *Draft) touch() {
	d.updatedAt = time.Now().UTC()
}

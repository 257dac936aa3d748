package usecases

import (
	"context"

	"github.com/kazihub-inc/kazihub/internal/domain/checkout"
	vo "github.com/kazihub-inc/kazihub/internal/domain/checkout/valueobjects"
)

// DraftStore holds in-flight checkout sessions. Drafts are ephemeral and
// never reach the database; the store is expected to evict expired ones.
// Get returns a private copy: mutations become visible only through Save.
type DraftStore interface {
	Get(ctx context.Context, sid string) (*checkout.Draft, error)
	Save(ctx context.Context, draft *checkout.Draft) error
	Delete(ctx context.Context, sid string) error
}

// SettlementRequest carries everything a gateway needs to settle a payment.
type SettlementRequest struct {
	CheckoutSID  string
	AccountEmail string
	PlanID       string
	AmountCents  int64
	Method       vo.PaymentMethod
	Phone        string
	WalletEmail  string
	CryptoAddr   string
}

// SettlementGateway charges the customer. Implementations block until the
// gateway answers; a returned error means the charge did not happen.
type SettlementGateway interface {
	Settle(ctx context.Context, req SettlementRequest) error
}

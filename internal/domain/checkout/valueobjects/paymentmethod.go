package valueobjects

import (
	"fmt"
	"strings"
)

// MethodKind groups payment methods by the detail set they collect.
type MethodKind string

const (
	KindMobileMoney MethodKind = "mobile_money"
	KindCard        MethodKind = "card"
	KindWalletEmail MethodKind = "wallet_email"
	KindCrypto      MethodKind = "crypto"
)

// PaymentMethod is the tag stored on a settled entitlement record, e.g.
// "mpesa", "card", "paypal", "googlepay" or "crypto-eth".
type PaymentMethod struct {
	tag      string
	kind     MethodKind
	currency CryptoCurrency
}

const cryptoMethodPrefix = "crypto-"

// NewPaymentMethod parses a payment method tag.
func NewPaymentMethod(tag string) (PaymentMethod, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))

	if strings.HasPrefix(tag, cryptoMethodPrefix) {
		currency, err := NewCryptoCurrency(strings.TrimPrefix(tag, cryptoMethodPrefix))
		if err != nil {
			return PaymentMethod{}, err
		}
		return PaymentMethod{tag: tag, kind: KindCrypto, currency: currency}, nil
	}

	switch tag {
	case "mpesa":
		return PaymentMethod{tag: tag, kind: KindMobileMoney}, nil
	case "card":
		return PaymentMethod{tag: tag, kind: KindCard}, nil
	case "paypal", "googlepay":
		return PaymentMethod{tag: tag, kind: KindWalletEmail}, nil
	default:
		return PaymentMethod{}, fmt.Errorf("unsupported payment method: %s", tag)
	}
}

// NewCryptoPaymentMethod builds the method tag for a crypto currency.
func NewCryptoPaymentMethod(currency CryptoCurrency) PaymentMethod {
	return PaymentMethod{
		tag:      cryptoMethodPrefix + currency.String(),
		kind:     KindCrypto,
		currency: currency,
	}
}

// String returns the method tag
func (m PaymentMethod) String() string {
	return m.tag
}

// Kind returns the detail-set group of the method
func (m PaymentMethod) Kind() MethodKind {
	return m.kind
}

// Currency returns the crypto currency, zero-valued for non-crypto methods
func (m PaymentMethod) Currency() CryptoCurrency {
	return m.currency
}

// IsZero reports whether no method has been selected yet
func (m PaymentMethod) IsZero() bool {
	return m.tag == ""
}

// RequiresBillingDetails reports whether the method collects the generic
// billing address block. Mobile money and crypto skip it.
func (m PaymentMethod) RequiresBillingDetails() bool {
	return m.kind == KindCard || m.kind == KindWalletEmail
}

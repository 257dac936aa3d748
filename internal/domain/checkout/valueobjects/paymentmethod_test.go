package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaymentMethod(t *testing.T) {
	tests := []struct {
		tag      string
		kind     MethodKind
		currency CryptoCurrency
	}{
		{"mpesa", KindMobileMoney, ""},
		{"card", KindCard, ""},
		{"paypal", KindWalletEmail, ""},
		{"googlepay", KindWalletEmail, ""},
		{"crypto-eth", KindCrypto, CurrencyETH},
		{"crypto-btc", KindCrypto, CurrencyBTC},
		{"crypto-sol", KindCrypto, CurrencySOL},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			m, err := NewPaymentMethod(tt.tag)
			require.NoError(t, err)
			assert.Equal(t, tt.tag, m.String())
			assert.Equal(t, tt.kind, m.Kind())
			assert.Equal(t, tt.currency, m.Currency())
			assert.False(t, m.IsZero())
		})
	}
}

func TestNewPaymentMethod_NormalizesTag(t *testing.T) {
	m, err := NewPaymentMethod("  MPESA ")
	require.NoError(t, err)
	assert.Equal(t, "mpesa", m.String())
}

func TestNewPaymentMethod_Rejections(t *testing.T) {
	_, err := NewPaymentMethod("cash")
	assert.Error(t, err)

	_, err = NewPaymentMethod("crypto-doge")
	assert.Error(t, err)

	_, err = NewPaymentMethod("")
	assert.Error(t, err)
}

func TestPaymentMethod_RequiresBillingDetails(t *testing.T) {
	for tag, want := range map[string]bool{
		"mpesa":      false,
		"card":       true,
		"paypal":     true,
		"googlepay":  true,
		"crypto-btc": false,
	} {
		m, err := NewPaymentMethod(tag)
		require.NoError(t, err)
		assert.Equal(t, want, m.RequiresBillingDetails(), tag)
	}
}

func TestNewCryptoPaymentMethod(t *testing.T) {
	m := NewCryptoPaymentMethod(CurrencySOL)
	assert.Equal(t, "crypto-sol", m.String())
	assert.Equal(t, KindCrypto, m.Kind())
}

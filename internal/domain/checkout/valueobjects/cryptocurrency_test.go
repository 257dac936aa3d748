package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCryptoCurrency(t *testing.T) {
	for _, s := range []string{"eth", "btc", "sol"} {
		c, err := NewCryptoCurrency(s)
		require.NoError(t, err)
		assert.Equal(t, s, c.String())
	}

	_, err := NewCryptoCurrency("doge")
	assert.Error(t, err)
}

func TestCryptoCurrency_URIScheme(t *testing.T) {
	assert.Equal(t, "ethereum", CurrencyETH.URIScheme())
	assert.Equal(t, "bitcoin", CurrencyBTC.URIScheme())
	assert.Equal(t, "solana", CurrencySOL.URIScheme())
}

func TestCryptoCurrency_ValidateAddress(t *testing.T) {
	tests := []struct {
		name     string
		currency CryptoCurrency
		address  string
		valid    bool
	}{
		{"eth checksum case", CurrencyETH, "0x742d35Cc6634C0532925a3b844Bc454e4438f44e", true},
		{"eth lowercase", CurrencyETH, "0x742d35cc6634c0532925a3b844bc454e4438f44e", true},
		{"eth too short", CurrencyETH, "0x742d35Cc", false},
		{"eth missing prefix", CurrencyETH, "742d35Cc6634C0532925a3b844Bc454e4438f44e", false},
		{"btc legacy p2pkh", CurrencyBTC, "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa", true},
		{"btc p2sh", CurrencyBTC, "3J98t1WpEZ73CNmQviecrnyiWrnqRhWNLy", true},
		{"btc bech32", CurrencyBTC, "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4", true},
		{"btc bad charset", CurrencyBTC, "1A1zP1eP5QGefi2DMPTfTL5SLmv7Divf0O", false},
		{"sol base58", CurrencySOL, "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T", true},
		{"sol too short", CurrencySOL, "4Nd1mBQtr", false},
		{"empty", CurrencyBTC, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.currency.ValidateAddress(tt.address)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
			assert.Equal(t, tt.valid, tt.currency.IsValidAddress(tt.address))
		})
	}
}

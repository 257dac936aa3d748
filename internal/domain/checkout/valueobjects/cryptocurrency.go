package valueobjects

import (
	"fmt"
	"regexp"
	"strings"
)

// CryptoCurrency identifies a supported settlement chain.
type CryptoCurrency string

const (
	CurrencyETH CryptoCurrency = "eth"
	CurrencyBTC CryptoCurrency = "btc"
	CurrencySOL CryptoCurrency = "sol"
)

// NewCryptoCurrency creates a CryptoCurrency from string
func NewCryptoCurrency(value string) (CryptoCurrency, error) {
	c := CryptoCurrency(strings.ToLower(strings.TrimSpace(value)))
	if !c.IsValid() {
		return "", fmt.Errorf("unsupported crypto currency: %s", value)
	}
	return c, nil
}

// IsValid checks if the currency is supported
func (c CryptoCurrency) IsValid() bool {
	switch c {
	case CurrencyETH, CurrencyBTC, CurrencySOL:
		return true
	default:
		return false
	}
}

// String returns the string representation of the currency
func (c CryptoCurrency) String() string {
	return string(c)
}

// URIScheme returns the payment URI scheme used by wallets for this currency.
func (c CryptoCurrency) URIScheme() string {
	switch c {
	case CurrencyETH:
		return "ethereum"
	case CurrencyBTC:
		return "bitcoin"
	case CurrencySOL:
		return "solana"
	default:
		return ""
	}
}

// Address shape patterns
var (
	// Ethereum address: 0x followed by exactly 40 hex characters
	ethereumAddressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)
	// Bitcoin legacy (1...), P2SH (3...) Base58Check addresses
	bitcoinBase58Pattern = regexp.MustCompile(`^[13][1-9A-HJ-NP-Za-km-z]{25,34}$`)
	// Bitcoin bech32 (bc1...) addresses
	bitcoinBech32Pattern = regexp.MustCompile(`^bc1[02-9ac-hj-np-z]{11,71}$`)
	// Base58-like addresses of length 32-44 (Solana and similar chains)
	base58AddressPattern = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`)
)

// ValidateAddress validates an address against the shape rules of this
// currency. This is a format check only, not an on-chain checksum.
func (c CryptoCurrency) ValidateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("address cannot be empty")
	}

	switch c {
	case CurrencyETH:
		if !ethereumAddressPattern.MatchString(address) {
			return fmt.Errorf("invalid Ethereum address format: must be 0x followed by 40 hex characters")
		}
		return nil
	case CurrencyBTC:
		if !bitcoinBase58Pattern.MatchString(address) && !bitcoinBech32Pattern.MatchString(address) {
			return fmt.Errorf("invalid Bitcoin address format")
		}
		return nil
	default:
		if !base58AddressPattern.MatchString(address) {
			return fmt.Errorf("invalid %s address format: expected base58 string of length 32-44", c)
		}
		return nil
	}
}

// IsValidAddress returns true if the address matches this currency's shape
func (c CryptoCurrency) IsValidAddress(address string) bool {
	return c.ValidateAddress(address) == nil
}

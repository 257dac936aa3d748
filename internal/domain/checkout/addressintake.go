package checkout

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	vo "github.com/kazihub-inc/kazihub/internal/domain/checkout/valueobjects"
)

// ethAddressAnywhere finds an Ethereum-shaped address embedded in a larger
// payload, such as an EIP-681 payment request.
var ethAddressAnywhere = regexp.MustCompile(`0x[a-fA-F0-9]{40}`)

// ExtractCryptoAddress pulls a payable address out of a raw QR payload.
// Wallet QR codes encode anything from a bare address to a full payment URI
// (bitcoin:ADDR?amount=0.01, ethereum:0x..@1/transfer?address=0x..), so the
// extraction runs a chain of progressively looser heuristics and finishes
// with a shape check for the selected currency.
func ExtractCryptoAddress(payload string, currency vo.CryptoCurrency) (string, error) {
	raw := strings.TrimSpace(payload)
	if raw == "" {
		return "", fmt.Errorf("crypto address is required")
	}

	candidate := raw

	// Strip the currency's own URI scheme, case-insensitively.
	scheme := currency.URIScheme() + ":"
	if len(candidate) > len(scheme) && strings.EqualFold(candidate[:len(scheme)], scheme) {
		candidate = strings.TrimPrefix(candidate[len(scheme):], "//")
	}

	// URI forms put the address in an address/recipient query parameter,
	// or leave it as the last path segment before the query string.
	if strings.ContainsAny(candidate, "?/") {
		if extracted, ok := extractFromURI(raw); ok && currency.IsValidAddress(extracted) {
			return extracted, nil
		}
		if cut, _, found := strings.Cut(candidate, "?"); found {
			candidate = cut
		}
		if i := strings.LastIndex(candidate, "/"); i >= 0 {
			candidate = candidate[i+1:]
		}
	}

	// Ethereum payment requests append chain IDs and calldata around the
	// address; a shaped substring anywhere in the payload wins.
	if currency == vo.CurrencyETH && !currency.IsValidAddress(candidate) {
		if m := ethAddressAnywhere.FindString(raw); m != "" {
			candidate = m
		}
	}

	// Some wallets emit a foreign or uppercase scheme; drop anything up to
	// the last colon as a final attempt.
	if !currency.IsValidAddress(candidate) {
		if i := strings.LastIndex(candidate, ":"); i >= 0 {
			candidate = candidate[i+1:]
		}
	}

	candidate = strings.TrimSpace(candidate)
	if err := currency.ValidateAddress(candidate); err != nil {
		return "", err
	}
	return candidate, nil
}

// extractFromURI parses the payload as a URI and reads the address from the
// well-known query parameters used by wallet payment requests.
func extractFromURI(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return "", false
	}
	q := u.Query()
	for _, key := range []string{"address", "recipient"} {
		if v := q.Get(key); v != "" {
			return v, true
		}
	}
	return "", false
}

package valueobjects

import (
	"regexp"
	"strings"
)

var (
	cardExpiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	nonDigitPattern   = regexp.MustCompile(`\D`)
)

// StripNonDigits removes everything but digits from a string.
func StripNonDigits(s string) string {
	return nonDigitPattern.ReplaceAllString(s, "")
}

// CardDetails carries the card fields of a checkout draft.
type CardDetails struct {
	HolderName string
	Number     string
	Expiry     string
	CVV        string
}

// Validate checks the card fields and returns field-scoped errors keyed by
// field name. An empty map means the details are acceptable.
func (c CardDetails) Validate() map[string]string {
	errs := make(map[string]string)

	if len(strings.TrimSpace(c.HolderName)) < 2 {
		errs["card_name"] = "cardholder name must be at least 2 characters"
	}
	if len(StripNonDigits(c.Number)) < 13 {
		errs["card_number"] = "card number must have at least 13 digits"
	}
	if !cardExpiryPattern.MatchString(strings.TrimSpace(c.Expiry)) {
		errs["card_expiry"] = "expiry must be in MM/YY format"
	}
	if len(StripNonDigits(c.CVV)) < 3 {
		errs["card_cvv"] = "security code must have at least 3 digits"
	}

	return errs
}

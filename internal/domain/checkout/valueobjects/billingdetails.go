package valueobjects

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether s looks like an email address.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// BillingDetails is the generic billing address block collected for every
// method that is neither mobile money nor crypto.
type BillingDetails struct {
	FullName   string
	Address    string
	City       string
	Country    string
	PostalCode string
	Email      string
}

// Validate checks the billing fields and returns field-scoped errors.
func (b BillingDetails) Validate() map[string]string {
	errs := make(map[string]string)

	if len(strings.TrimSpace(b.FullName)) < 2 {
		errs["full_name"] = "full name must be at least 2 characters"
	}
	if len(strings.TrimSpace(b.Address)) < 3 {
		errs["address"] = "address must be at least 3 characters"
	}
	if len(strings.TrimSpace(b.City)) < 2 {
		errs["city"] = "city must be at least 2 characters"
	}
	if len(strings.TrimSpace(b.Country)) < 2 {
		errs["country"] = "country must be at least 2 characters"
	}
	if len(strings.TrimSpace(b.PostalCode)) < 2 {
		errs["postal_code"] = "postal code must be at least 2 characters"
	}
	if !IsValidEmail(b.Email) {
		errs["email"] = "a valid email address is required"
	}

	return errs
}

// NormalizeMSISDN strips non-digits from a phone number and checks the
// mobile-money minimum length.
func NormalizeMSISDN(phone string) (string, bool) {
	digits := StripNonDigits(phone)
	return digits, len(digits) >= 9
}

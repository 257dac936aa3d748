package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardDetails_Validate(t *testing.T) {
	valid := CardDetails{
		HolderName: "Wanjiku Kamau",
		Number:     "4242 4242 4242 4242",
		Expiry:     "07/26",
		CVV:        "123",
	}
	assert.Empty(t, valid.Validate())
}

func TestCardDetails_Expiry(t *testing.T) {
	base := CardDetails{HolderName: "Wanjiku Kamau", Number: "4242424242424242", CVV: "123"}

	for _, expiry := range []string{"01/25", "07/26", "12/99"} {
		c := base
		c.Expiry = expiry
		assert.NotContains(t, c.Validate(), "card_expiry", expiry)
	}

	for _, expiry := range []string{"13/25", "00/25", "7/26", "07-26", "07/2026", ""} {
		c := base
		c.Expiry = expiry
		assert.Contains(t, c.Validate(), "card_expiry", expiry)
	}
}

func TestCardDetails_FieldErrors(t *testing.T) {
	errs := CardDetails{
		HolderName: "W",
		Number:     "4242",
		Expiry:     "07/26",
		CVV:        "12",
	}.Validate()

	assert.Contains(t, errs, "card_name")
	assert.Contains(t, errs, "card_number")
	assert.Contains(t, errs, "card_cvv")
	assert.NotContains(t, errs, "card_expiry")
}

func TestStripNonDigits(t *testing.T) {
	assert.Equal(t, "0712345678", StripNonDigits("+0712-345 678"))
	assert.Equal(t, "", StripNonDigits("abc"))
}

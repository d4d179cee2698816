package kernel

import (
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"
)

const (
	// CardNumberMask replaces every hidden character of a card number.
	CardNumberMask = 'X'

	visibleCardDigits = 4
)

// MaskCardNumber keeps the last four characters of raw and left-pads them with
// CardNumberMask up to the original length: "4111111111111111" becomes
// "XXXXXXXXXXXX1111".
//
// The raw value is never included in the returned error.
func MaskCardNumber(raw string) (string, error) {
	if raw == "" {
		return "", errs.NewValueIsRequiredError("cardNumber")
	}
	if len(raw) < visibleCardDigits {
		return "", errs.NewValueIsInvalidErrorWithCause(
			"cardNumber",
			fmt.Errorf("must have at least %d characters", visibleCardDigits),
		)
	}

	hidden := len(raw) - visibleCardDigits
	return strings.Repeat(string(CardNumberMask), hidden) + raw[hidden:], nil
}

// IsMaskedCardNumber reports whether s already follows the masking rule.
func IsMaskedCardNumber(s string) bool {
	if len(s) < visibleCardDigits {
		return false
	}
	return strings.Trim(s[:len(s)-visibleCardDigits], string(CardNumberMask)) == ""
}

package validation

import (
	"errors"
	"strings"
)

// NormalizePhone strips everything except digits. Numbers are compared and
// stored in this form so "123-456-7890" and "1234567890" are the same contact.
func NormalizePhone(phone string) (string, error) {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if len(digits) < 10 {
		return "", errors.New("phone number must contain at least 10 digits")
	}

	return digits, nil
}

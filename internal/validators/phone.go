package validators

import "strings"

// NormalizePhone keeps digits and a leading "+", so patients are matched by
// phone regardless of formatting.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	var b strings.Builder
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsPhoneValid accepts 8 to 15 digits after normalization.
func IsPhoneValid(phone string) bool {
	digits := strings.TrimPrefix(NormalizePhone(phone), "+")
	return len(digits) >= 8 && len(digits) <= 15
}

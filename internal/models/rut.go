package models

import "strings"

// cleanRUT strips everything but digits and the K check digit.
func cleanRUT(rut string) string {
	var b strings.Builder
	for _, r := range rut {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == 'k' || r == 'K':
			b.WriteRune('K')
		}
	}
	return b.String()
}

// FormatRUT renders a Chilean RUT with thousand separators and the
// check digit, e.g. "11.111.111-1". Inputs too short to carry a check
// digit are returned cleaned but unformatted.
func FormatRUT(rut string) string {
	value := cleanRUT(rut)
	if len(value) < 2 {
		return value
	}

	body := value[:len(value)-1]
	dv := value[len(value)-1:]

	var b strings.Builder
	for i, r := range body {
		rem := len(body) - i
		if i > 0 && rem%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return b.String() + "-" + dv
}

// ValidRUT verifies the modulo-11 check digit of a Chilean RUT.
// Empty input is accepted; house records imported from the legacy seed
// may not carry a RUT yet.
func ValidRUT(rut string) bool {
	value := cleanRUT(rut)
	if value == "" {
		return true
	}
	if len(value) < 2 {
		return false
	}

	body := value[:len(value)-1]
	dv := value[len(value)-1]

	sum := 0
	factor := 2
	for i := len(body) - 1; i >= 0; i-- {
		d := body[i]
		if d < '0' || d > '9' {
			return false
		}
		sum += int(d-'0') * factor
		factor++
		if factor > 7 {
			factor = 2
		}
	}

	var expected byte
	switch rem := 11 - (sum % 11); rem {
	case 11:
		expected = '0'
	case 10:
		expected = 'K'
	default:
		expected = byte('0' + rem)
	}
	return dv == expected
}

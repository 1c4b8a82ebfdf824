package model

import (
	"strings"
	"unicode"
)

// normalizeKey lowercases a creditor name and strips everything but letters
// and digits, so "Midland Credit Mgmt." and "MIDLAND CREDIT MGMT" compare
// equal.
func normalizeKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeCreditor is the canonical creditor-name key used for matching
// items across bureaus and across rounds.
func NormalizeCreditor(name string) string {
	return normalizeKey(name)
}

// suffixOf returns the trailing digit run of a masked account id ("****1234"
// -> "1234"). Empty when the id carries no digits or is unknown.
func suffixOf(masked string) string {
	if masked == Unknown {
		return ""
	}
	end := len(masked)
	start := end
	for start > 0 && masked[start-1] >= '0' && masked[start-1] <= '9' {
		start--
	}
	return masked[start:end]
}

// AccountSuffix is the canonical account-id key used for matching items
// across bureaus and across rounds.
func AccountSuffix(masked string) string {
	return suffixOf(masked)
}

// Package validate holds the input predicates gating every handler.
package validate

import "regexp"

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// IsValidAddress reports whether s is a 0x-prefixed 40-hex-digit account
// address. No checksum validation.
func IsValidAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// IsValidProductID reports whether n is a usable product identifier.
// Ledger ids start at 1.
func IsValidProductID(n int64) bool {
	return n >= 1
}

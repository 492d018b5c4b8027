package common

import "regexp"

var nationalIDRe = regexp.MustCompile(`^\d{9}$`)

// ValidNationalID reports whether s is an exact 9-digit identity key.
// Operator-supplied filters failing this check never reach the network.
func ValidNationalID(s string) bool {
	return nationalIDRe.MatchString(s)
}

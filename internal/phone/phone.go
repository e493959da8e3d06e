// Package phone provides the canonical phone normalization shared by every
// lookup path. Inbound routing matches contacts by the last ten digits, so
// "+1 (555) 010-0199" and "5550100199" resolve to the same contact.
package phone

import "strings"

const suffixLen = 10

// Normalize strips every rune that is not a digit or a leading '+'.
func Normalize(raw string) string {
	var b strings.Builder
	for i, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Suffix returns the last ten digits of the normalized number, used as the
// lookup key for inbound routing. Shorter numbers are returned whole.
func Suffix(raw string) string {
	n := strings.TrimPrefix(Normalize(raw), "+")
	if len(n) <= suffixLen {
		return n
	}
	return n[len(n)-suffixLen:]
}

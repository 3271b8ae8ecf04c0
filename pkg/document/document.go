// Package document validates and formats national tax identifiers.
//
// Two forms exist: an 11-digit personal identifier and a 14-digit corporate
// identifier. Both carry two mod-11 check digits. All functions are pure and
// operate on the normalized (digits-only) representation; callers should
// never need to pre-clean input themselves.
package document

import (
	"fmt"
	"strings"
)

// Kind classifies a normalized identifier by length.
type Kind int

const (
	KindInvalid Kind = iota
	KindShort        // 11-digit personal identifier
	KindLong         // 14-digit corporate identifier
)

func (k Kind) String() string {
	switch k {
	case KindShort:
		return "short"
	case KindLong:
		return "long"
	default:
		return "invalid"
	}
}

// Normalize strips every non-digit character. Empty input yields "".
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Classify reports the identifier kind for an already-normalized string.
func Classify(digits string) Kind {
	switch len(digits) {
	case 11:
		return KindShort
	case 14:
		return KindLong
	default:
		return KindInvalid
	}
}

// IsValid normalizes raw and runs the checksum for its kind.
// Normalization always happens first, so formatted and unformatted input
// are accepted identically at every call site.
func IsValid(raw string) bool {
	digits := Normalize(raw)
	switch Classify(digits) {
	case KindShort:
		return validShort(digits)
	case KindLong:
		return validLong(digits)
	default:
		return false
	}
}

// Format renders a normalized identifier for display:
// XXX.XXX.XXX-XX for the short form, XX.XXX.XXX/XXXX-XX for the long form.
// Anything of unexpected length is returned unchanged.
func Format(digits string) string {
	switch Classify(digits) {
	case KindShort:
		return fmt.Sprintf("%s.%s.%s-%s", digits[0:3], digits[3:6], digits[6:9], digits[9:11])
	case KindLong:
		return fmt.Sprintf("%s.%s.%s/%s-%s", digits[0:2], digits[2:5], digits[5:8], digits[8:12], digits[12:14])
	default:
		return digits
	}
}

// allSame catches sequences like "00000000000" which satisfy the checksum
// arithmetic but are not assignable identifiers.
func allSame(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}

func digit(s string, i int) int { return int(s[i] - '0') }

// validShort checks both mod-11 digits of an 11-digit identifier.
// The first check digit weighs digits 0..8 with 10-i, the second weighs
// digits 0..9 (including the first check digit) with 11-i. Remainders of
// 10 or 11 map to 0.
func validShort(d string) bool {
	if allSame(d) {
		return false
	}

	sum := 0
	for i := 0; i < 9; i++ {
		sum += digit(d, i) * (10 - i)
	}
	check := 11 - sum%11
	if check >= 10 {
		check = 0
	}
	if check != digit(d, 9) {
		return false
	}

	sum = 0
	for i := 0; i < 10; i++ {
		sum += digit(d, i) * (11 - i)
	}
	check = 11 - sum%11
	if check >= 10 {
		check = 0
	}
	return check == digit(d, 10)
}

// validLong checks both mod-11 digits of a 14-digit identifier. Both use
// the same weight cycle (see longCheckDigit); the second pass includes the
// first check digit.
func validLong(d string) bool {
	if allSame(d) {
		return false
	}
	if longCheckDigit(d, 12) != digit(d, 12) {
		return false
	}
	return longCheckDigit(d, 13) == digit(d, 13)
}

// longCheckDigit computes the check digit over the first n digits using the
// corporate weight cycle: starting at n-7 (5 for the first digit, 6 for the
// second), descending to 2, then wrapping to 9 and descending again.
// A remainder below 2 maps to 0.
func longCheckDigit(d string, n int) int {
	weight := n - 7
	sum := 0
	for i := 0; i < n; i++ {
		sum += digit(d, i) * weight
		weight--
		if weight < 2 {
			weight = 9
		}
	}
	if sum%11 < 2 {
		return 0
	}
	return 11 - sum%11
}

package jfmt

import "strings"

// maxSignificantDigitsForNormalize bounds how many significant digits
// [normalizeNumber] will attempt to re-justify. Beyond this, re-padding a
// literal risks visually implying precision the source never claimed;
// Normalize falls back to Left instead (spec §4.3, §9 "Numeric reformatting
// pitfalls").
const maxSignificantDigitsForNormalize = 15

// numberDigitStats reports digits_before_decimal (the index of the first
// '.', 'e', or 'E', else the string length) and digits_after_decimal (spec
// §4.3 "Number column stats").
func numberDigitStats(s string) (before, after int) {
	idx := strings.IndexAny(s, ".eE")
	if idx < 0 {
		return len(s), 0
	}

	before = idx

	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return before, 0
	}

	rest := s[dot+1:]
	end := len(rest)

	if e := strings.IndexAny(rest, "eE"); e >= 0 {
		end = e
	}

	return before, end
}

// hasExponent reports whether s contains a scientific-notation marker.
func hasExponent(s string) bool {
	return strings.ContainsAny(s, "eE")
}

// isZeroLiteral reports whether s (a JSON number token, e.g. "0", "0.00",
// "0.0e75", "-0") denotes exactly zero, as opposed to a nonzero value that
// happens to round to zero at a given decimal width (spec §9).
func isZeroLiteral(s string) bool {
	s = strings.TrimPrefix(s, "-")

	mantissa := s
	if e := strings.IndexAny(s, "eE"); e >= 0 {
		mantissa = s[:e]
	}

	for _, r := range mantissa {
		if r != '0' && r != '.' {
			return false
		}
	}

	return true
}

// splitNumber separates a JSON number literal into sign, integer part, and
// fractional part (without exponent). Returns ok=false for numbers with an
// exponent, since Normalize never rewrites those (spec §4.3: "fall back to
// Left if ... exponent present").
func splitNumber(s string) (neg bool, intPart, fracPart string, ok bool) {
	if hasExponent(s) {
		return false, "", "", false
	}

	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return neg, s, "", true
	}

	return neg, s[:dot], s[dot+1:], true
}

// roundFracString rounds frac (a string of decimal digits with no sign or
// point) to width digits, returning the rounded digit string and whether
// rounding carried into the integer part.
func roundFracString(frac string, width int) (rounded string, carry bool) {
	if len(frac) <= width {
		return frac + strings.Repeat("0", width-len(frac)), false
	}

	keep := []byte(frac[:width])
	roundUp := frac[width] >= '5'

	if !roundUp {
		return string(keep), false
	}

	for i := len(keep) - 1; i >= 0; i-- {
		if keep[i] != '9' {
			keep[i]++

			return string(keep), false
		}

		keep[i] = '0'
	}

	return string(keep), true
}

// incrementDecimalString adds 1 to a non-negative decimal digit string.
func incrementDecimalString(s string) string {
	b := []byte(s)

	for i := len(b) - 1; i >= 0; i-- {
		if b[i] != '9' {
			b[i]++

			return string(b)
		}

		b[i] = '0'
	}

	return "1" + string(b)
}

// normalizeNumber rewrites s to have exactly decimals digits after the
// point, per the column's common digits-after-decimal width. Returns
// ok=false when the rewrite would change the value's apparent magnitude:
// exponent present, too many significant digits, or a nonzero value that
// would round to zero (spec §4.3 "Normalize", §9 "Numeric reformatting
// pitfalls").
func normalizeNumber(s string, decimals int) (result string, ok bool) {
	neg, intPart, fracPart, ok := splitNumber(s)
	if !ok {
		return "", false
	}

	sig := strings.TrimLeft(intPart, "0") + fracPart
	if len(sig) > maxSignificantDigitsForNormalize {
		return "", false
	}

	wasZero := isZeroLiteral(s)

	rounded, carry := roundFracString(fracPart, decimals)
	if carry {
		intPart = incrementDecimalString(intPart)
	}

	if !wasZero && isZeroLiteral(intPart+"."+rounded) {
		// A genuinely nonzero value rounded away to nothing: unsafe to
		// normalize, fall back to Left.
		return "", false
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}

	b.WriteString(intPart)

	if decimals > 0 {
		b.WriteByte('.')
		b.WriteString(rounded)
	}

	return b.String(), true
}

// padNumberCell right-justifies a number's integer part within
// beforeWidth columns and left-justifies its fractional part (plus any
// exponent suffix) within afterWidth columns, producing decimal alignment
// (spec §4.3 "Decimal"). sign is written immediately before the first
// padded digit, matching how the original renders negative numbers flush
// against their digits rather than flush-left in the column.
func padNumberCell(value string, beforeWidth, afterWidth int, tok *paddedTokens) string {
	before, after := numberDigitStats(value)

	leftPad := tok.spaces(max(beforeWidth-before, 0))

	rightPad := ""
	if afterWidth > 0 {
		need := afterWidth - after
		if after == 0 {
			// value has no literal '.', so it doesn't consume the
			// decimal-point column every fractional value in this column does.
			need++
		}

		rightPad = tok.spaces(max(need, 0))
	}

	return leftPad + value + rightPad
}

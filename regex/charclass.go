package regex

import "unicode"

// isDigit only accepts ASCII digits, other Unicode decimal digits do not match \d.
func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

// isAlphaNumeric accepts any Unicode letter or number. Unlike perl, '_' is not part of \w.
func isAlphaNumeric(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsNumber(c)
}

// matchesChar reports whether the single character c satisfies the consuming node n.
// Zero-width and composite nodes never match a single character.
func matchesChar(n Node, c rune) bool {
	switch s := n.(type) {
	case Literal:
		return s.Char == wildcardChar || s.Char == c
	case Digit:
		return isDigit(c)
	case AlphaNumeric:
		return isAlphaNumeric(c)
	case AnyOf:
		return s.Set.Contains(c)
	case NoneOf:
		return !s.Set.Contains(c)
	}
	return false
}

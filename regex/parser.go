package regex

import (
	"errors"
	"fmt"
)

var (
	ErrUnterminatedClass = errors.New("'[' has no matching ']'")
	ErrUnterminatedGroup = errors.New("'(' has no matching ')'")
	ErrMissingOperand    = errors.New("quantifier has no preceding pattern")
	ErrUnsupportedEscape = errors.New("unsupported escape sequence")
)

type parserError struct {
	inner   error
	message string
}

func (p parserError) Error() string {
	return p.message
}

func (p parserError) Unwrap() error {
	return p.inner
}

func newParserError(i int, str string, inner error) parserError {
	return parserError{message: fmt.Sprintf("parser error at %d: %s: %v", i, str, inner), inner: inner}
}

// Parse compiles re into a Pattern.
func Parse(re string) (Pattern, error) {
	return parse([]rune(re), 0)
}

// parse compiles re, off is the offset of re[0] in the full pattern and is only used for errors.
func parse(re []rune, off int) (Pattern, error) {
	var p Pattern
	for i := 0; i < len(re); i++ {
		switch re[i] {
		case '\\':
			n, err := parseEscape(re, i, off)
			if err != nil {
				return nil, err
			}
			p = append(p, n)
			i++
		case '[':
			n, cons, err := parseBracket(re, i, off)
			if err != nil {
				return nil, err
			}
			p = append(p, n)
			i += cons - 1
		case '(':
			n, cons, err := parseGroup(re, i, off)
			if err != nil {
				return nil, err
			}
			p = append(p, n)
			i += cons - 1
		case '^':
			p = append(p, LineStart{})
		case '$':
			p = append(p, LineEnd{})
		case '+', '?':
			if len(p) == 0 {
				return nil, newParserError(off+i, string(re[i]), ErrMissingOperand)
			}
			last := p[len(p)-1]
			if re[i] == '+' {
				p[len(p)-1] = OneOrMore{Inner: last}
			} else {
				p[len(p)-1] = ZeroOrOne{Inner: last}
			}
		default:
			p = append(p, Literal{Char: re[i]})
		}
	}
	return p, nil
}

// \d, \w, \\ and \1 to \9
func parseEscape(re []rune, i, off int) (Node, error) {
	if i+1 >= len(re) {
		return nil, newParserError(off+i, "unexpected EOS", ErrUnsupportedEscape)
	}

	c := re[i+1]
	switch {
	case c == 'd':
		return Digit{}, nil
	case c == 'w':
		return AlphaNumeric{}, nil
	case c == '\\':
		return Literal{Char: '\\'}, nil
	case c >= '1' && c <= '9':
		return Backreference{Slot: int(c - '1')}, nil
	}
	return nil, newParserError(off+i, `\`+string(c), ErrUnsupportedEscape)
}

// [...] and [^...]
// everything up to the first ']' is taken literally, there are no ranges or escapes
func parseBracket(re []rune, i, off int) (Node, int, error) {
	// pop off '['
	j := i + 1

	negate := j < len(re) && re[j] == '^'
	if negate {
		j++
	}

	start := j
	for j < len(re) && re[j] != ']' {
		j++
	}

	if j >= len(re) {
		return nil, 0, newParserError(off+i, "unexpected EOS", ErrUnterminatedClass)
	}

	set := newCharSet(re[start:j])

	// pop off ']'
	j++

	if negate {
		return NoneOf{Set: set}, j - i, nil
	}
	return AnyOf{Set: set}, j - i, nil
}

// (...|...)
func parseGroup(re []rune, i, off int) (Node, int, error) {
	depth := 0
	j := i
	for ; j < len(re); j++ {
		if re[j] == '(' {
			depth++
		} else if re[j] == ')' {
			depth--
			if depth == 0 {
				break
			}
		}
	}

	if j >= len(re) {
		return nil, 0, newParserError(off+i, "unexpected EOS", ErrUnterminatedGroup)
	}

	var alternatives []Pattern
	contentOff := i + 1
	for _, r := range splitAlternatives(re[i+1 : j]) {
		alt, err := parse(re[contentOff+r.from:contentOff+r.to], off+contentOff+r.from)
		if err != nil {
			return nil, 0, err
		}
		alternatives = append(alternatives, alt)
	}

	return Group{Alternatives: alternatives}, j + 1 - i, nil
}

type runeRange struct {
	from int
	to   int
}

// splitAlternatives splits the content of a group on every '|' that is not nested in a deeper group.
// The result always has at least one, possibly empty, range.
func splitAlternatives(content []rune) []runeRange {
	var ranges []runeRange
	depth := 0
	from := 0
	for i, c := range content {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		case '|':
			if depth == 0 {
				ranges = append(ranges, runeRange{from: from, to: i})
				from = i + 1
			}
		}
	}
	return append(ranges, runeRange{from: from, to: len(content)})
}

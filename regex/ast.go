package regex

import (
	"fmt"
	"slices"
	"strings"
)

// Node is a single element of a compiled Pattern.
// The set of node types is closed, see the type switch in matcher.match.
type Node interface {
	fmt.Stringer
	node()
}

// Pattern is the compiled form of a regular expression, matched left to right.
type Pattern []Node

// wildcardChar is matched by a Literal against any input character.
const wildcardChar = '.'

// a, b, 日
type Literal struct {
	Char rune
}

// \d
type Digit struct{}

// \w
type AlphaNumeric struct{}

// [...]
type AnyOf struct {
	Set CharSet
}

// [^...]
type NoneOf struct {
	Set CharSet
}

// ^
type LineStart struct{}

// $
type LineEnd struct{}

// x+
type OneOrMore struct {
	Inner Node
}

// x?
type ZeroOrOne struct {
	Inner Node
}

// (...|...)
type Group struct {
	Alternatives []Pattern
}

// \1 to \9, Slot is zero based
type Backreference struct {
	Slot int
}

// capture records input[Start:i] into Slot once the matcher reaches it.
// It is never produced by Parse; the matcher inserts it after each group alternative.
type capture struct {
	Start int
	Slot  int
}

func (Literal) node()       {}
func (Digit) node()         {}
func (AlphaNumeric) node()  {}
func (AnyOf) node()         {}
func (NoneOf) node()        {}
func (LineStart) node()     {}
func (LineEnd) node()       {}
func (OneOrMore) node()     {}
func (ZeroOrOne) node()     {}
func (Group) node()         {}
func (Backreference) node() {}
func (capture) node()       {}

func (l Literal) String() string {
	if l.Char == '\\' {
		return `\\`
	}
	return string(l.Char)
}

func (Digit) String() string        { return `\d` }
func (AlphaNumeric) String() string { return `\w` }
func (a AnyOf) String() string      { return "[" + a.Set.String() + "]" }
func (n NoneOf) String() string     { return "[^" + n.Set.String() + "]" }
func (LineStart) String() string    { return "^" }
func (LineEnd) String() string      { return "$" }
func (o OneOrMore) String() string  { return o.Inner.String() + "+" }
func (z ZeroOrOne) String() string  { return z.Inner.String() + "?" }

func (g Group) String() string {
	alts := make([]string, len(g.Alternatives))
	for i, alt := range g.Alternatives {
		alts[i] = alt.String()
	}
	return "(" + strings.Join(alts, "|") + ")"
}

func (b Backreference) String() string {
	return fmt.Sprintf(`\%d`, b.Slot+1)
}

func (c capture) String() string {
	return fmt.Sprintf("<capture %d from %d>", c.Slot+1, c.Start)
}

func (p Pattern) String() string {
	out := strings.Builder{}
	for _, n := range p {
		out.WriteString(n.String())
	}
	return out.String()
}

// CharSet is the set of characters listed in a bracket expression.
type CharSet map[rune]struct{}

func newCharSet(chars []rune) CharSet {
	set := make(CharSet, len(chars))
	for _, c := range chars {
		set[c] = struct{}{}
	}
	return set
}

func (s CharSet) Contains(c rune) bool {
	_, ok := s[c]
	return ok
}

// String lists the members in ascending order so that the output is stable.
func (s CharSet) String() string {
	chars := make([]rune, 0, len(s))
	for c := range s {
		chars = append(chars, c)
	}
	slices.Sort(chars)
	return string(chars)
}

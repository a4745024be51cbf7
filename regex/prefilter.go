package regex

import (
	"unicode/utf8"

	"github.com/coregx/ahocorasick"
)

// prefilter rejects inputs that cannot contain a match because they lack every literal
// that a match is required to contain. It never accepts on its own.
type prefilter struct {
	automaton *ahocorasick.Automaton
}

func newPrefilter(p Pattern) *prefilter {
	literals := requiredLiterals(p)
	if len(literals) == 0 {
		return nil
	}

	builder := ahocorasick.NewBuilder()
	for _, lit := range literals {
		builder.AddPattern([]byte(lit))
	}
	auto, err := builder.Build()
	if err != nil {
		// without a prefilter every input goes to the matcher, which is always correct
		return nil
	}
	return &prefilter{automaton: auto}
}

// mayMatch reports false only if s cannot match.
func (f *prefilter) mayMatch(s string) bool {
	if f == nil {
		return true
	}
	if !utf8.ValidString(s) {
		// the matcher sees every invalid byte as utf8.RuneError, and so must the automaton
		s = string([]rune(s))
	}
	return f.automaton.IsMatch([]byte(s))
}

// requiredLiterals returns a set of strings of which every match contains at least one.
// It prefers the longest run of plain top-level literals and otherwise falls back to
// the first top-level group made up only of such runs. nil means there is no such set.
func requiredLiterals(p Pattern) []string {
	var longest, run []rune
	for _, n := range p {
		if c, ok := plainLiteral(n); ok {
			run = append(run, c)
			if len(run) > len(longest) {
				longest = run
			}
			continue
		}
		run = nil
	}
	if len(longest) > 0 {
		return []string{string(longest)}
	}

	for _, n := range p {
		g, ok := n.(Group)
		if !ok {
			continue
		}
		if alts, ok := literalAlternatives(g); ok {
			return alts
		}
	}
	return nil
}

func literalAlternatives(g Group) ([]string, bool) {
	if len(g.Alternatives) == 0 {
		return nil, false
	}

	alts := make([]string, 0, len(g.Alternatives))
	for _, alt := range g.Alternatives {
		if len(alt) == 0 {
			return nil, false
		}
		chars := make([]rune, 0, len(alt))
		for _, n := range alt {
			c, ok := plainLiteral(n)
			if !ok {
				return nil, false
			}
			chars = append(chars, c)
		}
		alts = append(alts, string(chars))
	}
	return alts, true
}

func plainLiteral(n Node) (rune, bool) {
	l, ok := n.(Literal)
	if !ok || l.Char == wildcardChar {
		return 0, false
	}
	return l.Char, true
}

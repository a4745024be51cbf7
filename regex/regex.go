// Package regex implements a small backtracking regular expression engine.
//
// Supported syntax: literals, '.' (any character), \d, \w, \\, [abc], [^abc],
// ^, $, x+, x?, groups with alternation (a|b) and backreferences \1 to \9.
// Matching has search semantics: a pattern matches if it matches anywhere in the input.
package regex

import (
	"fmt"
	"strings"
	"unicode"
)

type Regex struct {
	expr      string
	pattern   Pattern
	prefilter *prefilter
}

// Submatch is a match or a captured group. Offset is a byte offset into the searched string,
// it is -1 for a group that did not capture anything.
type Submatch struct {
	Offset int
	Str    string
}

func Compile(re string) (Regex, error) {
	pattern, err := Parse(re)
	if err != nil {
		return Regex{}, fmt.Errorf("failed to construct regex from %q: %w", re, err)
	}
	return Regex{
		expr:      re,
		pattern:   pattern,
		prefilter: newPrefilter(pattern),
	}, nil
}

func MustCompile(re string) Regex {
	r, err := Compile(re)
	if err != nil {
		panic(err)
	}
	return r
}

func (re Regex) String() string {
	return re.expr
}

// Pattern returns the compiled pattern.
func (re Regex) Pattern() Pattern {
	return re.pattern
}

// FindAllSubmatches finds up to maxCount matches of the pattern in the given string.
// To return all matches pass a maxCount of -1.
// The first Submatch of every match is the whole match, followed by one Submatch per capture slot used.
func (re Regex) FindAllSubmatches(s string, maxCount int) [][]Submatch {
	if !re.prefilter.mayMatch(s) {
		return nil
	}

	in := []rune(s)
	offsets := byteOffsets(s, len(in))
	m := newMatcher(in)

	var allSubmatches [][]Submatch
	for from := 0; from <= len(in); {
		if maxCount != -1 && len(allSubmatches) >= maxCount {
			break
		}

		start, end, ok := m.search(re.pattern, from)
		if !ok {
			break
		}
		allSubmatches = append(allSubmatches, m.submatches(s, offsets, start, end))

		if end > start {
			from = end
		} else {
			from = end + 1
		}
	}
	return allSubmatches
}

func (re Regex) FindSubmatch(s string) []Submatch {
	submatch := re.FindAllSubmatches(s, 1)
	if len(submatch) < 1 {
		return nil
	}
	return submatch[0]
}

// Match reports whether the pattern matches anywhere in s.
func (re Regex) Match(s string) bool {
	if !re.prefilter.mayMatch(s) {
		return false
	}
	_, _, ok := newMatcher([]rune(s)).search(re.pattern, 0)
	return ok
}

// Replace replaces every match in s with `with`, in which $n expands to the text of capture n
// and $0 to the whole match.
func (re Regex) Replace(s string, with string) string {
	out := strings.Builder{}
	last := 0
	for _, submatches := range re.FindAllSubmatches(s, -1) {
		out.WriteString(s[last:submatches[0].Offset])
		out.WriteString(expand(with, submatches))
		last = submatches[0].Offset + len(submatches[0].Str)
	}
	out.WriteString(s[last:])
	return out.String()
}

func expand(with string, submatches []Submatch) string {
	out := strings.Builder{}
	for i := 0; i < len(with); i++ {
		if with[i] == '$' && i+1 < len(with) && unicode.IsDigit(rune(with[i+1])) {
			num := 0
			for j := i + 1; j < len(with) && unicode.IsDigit(rune(with[j])); j++ {
				// digits past the last group only need to be skipped
				if num < len(submatches) {
					num = num*10 + int(with[j]-'0')
				}
				i++
			}

			if num < len(submatches) {
				out.WriteString(submatches[num].Str)
			}
		} else {
			out.WriteByte(with[i])
		}
	}
	return out.String()
}

// submatches converts the match [start, end) of s and the current captures to byte offsets.
func (m *matcher) submatches(s string, offsets []int, start, end int) []Submatch {
	used := min(m.groups, numSlots)
	submatches := make([]Submatch, 0, 1+used)
	submatches = append(submatches, Submatch{
		Offset: offsets[start],
		Str:    s[offsets[start]:offsets[end]],
	})

	for _, c := range m.captures[:used] {
		if c.end <= c.start {
			submatches = append(submatches, Submatch{Offset: -1})
			continue
		}
		submatches = append(submatches, Submatch{
			Offset: offsets[c.start],
			Str:    s[offsets[c.start]:offsets[c.end]],
		})
	}
	return submatches
}

// byteOffsets maps every rune index of s, including n for the end of s, to its byte offset.
func byteOffsets(s string, n int) []int {
	offsets := make([]int, 0, n+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	return append(offsets, len(s))
}

package regex

// numSlots is the number of capture slots, one for each of \1 to \9.
const numSlots = 9

// span is a captured range of the input in runes. The zero span is an empty capture.
type span struct {
	start int
	end   int
}

// matcher interprets a Pattern against in by recursive backtracking.
//
// captures and groups belong to a single attempt at a single start offset, search resets both.
// Speculative probes (repetitions, optional atoms, backreferences) run on their own matcher
// so that a failed probe never touches the captures of the enclosing attempt.
//
// Zero-width nodes are evaluated normally at the end of the input, so "ba?" matches "b".
//
// The recursion depth grows with the pattern length and the number of repetitions tried,
// and ambiguous patterns take exponential time. Both are accepted for this interpreter.
type matcher struct {
	in       []rune
	captures [numSlots]span
	// groups is the next unused slot. It is never rolled back on backtracking,
	// so a group that is entered again within one attempt consumes a fresh slot.
	groups int
}

func newMatcher(in []rune) *matcher {
	return &matcher{in: in}
}

func (m *matcher) reset() {
	m.captures = [numSlots]span{}
	m.groups = 0
}

// search tries every start offset from `from` up to and including len(m.in) and stops at the first one
// for which p matches. It returns the start and end of that match.
func (m *matcher) search(p Pattern, from int) (int, int, bool) {
	for start := from; start <= len(m.in); start++ {
		m.reset()
		if end, ok := m.match(start, p, 0); ok {
			return start, end, true
		}
	}
	return 0, 0, false
}

// captured returns the text recorded in slot, which is empty when the slot was never captured.
func (m *matcher) captured(slot int) string {
	if slot < 0 || slot >= numSlots {
		return ""
	}
	c := m.captures[slot]
	if c.end <= c.start {
		return ""
	}
	return string(m.in[c.start:c.end])
}

// match matches p[pi:] against m.in[i:] and returns the position where the match ends.
// There is no requirement to consume the rest of the input.
func (m *matcher) match(i int, p Pattern, pi int) (int, bool) {
	if pi >= len(p) {
		return i, true
	}

	switch s := p[pi].(type) {
	case Literal, Digit, AlphaNumeric, AnyOf, NoneOf:
		if i < len(m.in) && matchesChar(s, m.in[i]) {
			return m.match(i+1, p, pi+1)
		}
		return i, false
	case LineStart:
		if i == 0 {
			return m.match(i, p, pi+1)
		}
		return i, false
	case LineEnd:
		if i == len(m.in) {
			return m.match(i, p, pi+1)
		}
		return i, false
	case OneOrMore:
		return m.matchOneOrMore(s, i, p, pi)
	case ZeroOrOne:
		// prefer one occurrence
		if j, ok := newMatcher(m.in).match(i, Pattern{s.Inner}, 0); ok {
			if end, ok := m.match(j, p, pi+1); ok {
				return end, true
			}
		}
		return m.match(i, p, pi+1)
	case Group:
		return m.matchGroup(s, i, p, pi)
	case Backreference:
		return m.matchBackreference(s, i, p, pi)
	case capture:
		return m.matchCapture(s, i, p, pi)
	default:
		panic("unexpected `Node` type")
	}
}

// tries one repetition, then two and so on, and returns the first count for which the rest of p matches
func (m *matcher) matchOneOrMore(s OneOrMore, i int, p Pattern, pi int) (int, bool) {
	inner := Pattern{s.Inner}
	j := i
	for {
		next, ok := newMatcher(m.in).match(j, inner, 0)
		if !ok {
			return i, false
		}

		if end, ok := m.match(next, p, pi+1); ok {
			return end, true
		}

		// another repetition of an empty match would not get us anywhere
		if next == j {
			return i, false
		}
		j = next
	}
}

func (m *matcher) matchGroup(s Group, i int, p Pattern, pi int) (int, bool) {
	slot := m.groups
	m.groups++

	rest := p[pi+1:]
	for _, alt := range s.Alternatives {
		cont := make(Pattern, 0, len(alt)+1+len(rest))
		cont = append(cont, alt...)
		cont = append(cont, capture{Start: i, Slot: slot})
		cont = append(cont, rest...)

		if end, ok := m.match(i, cont, 0); ok {
			return end, true
		}
	}
	return i, false
}

// the captured text is compiled as is, so metacharacters in it keep their meaning
func (m *matcher) matchBackreference(s Backreference, i int, p Pattern, pi int) (int, bool) {
	text := m.captured(s.Slot)
	if text == "" {
		return i, false
	}

	ref, err := Parse(text)
	if err != nil {
		return i, false
	}

	j, ok := newMatcher(m.in).match(i, ref, 0)
	if !ok {
		return i, false
	}
	return m.match(j, p, pi+1)
}

func (m *matcher) matchCapture(s capture, i int, p Pattern, pi int) (int, bool) {
	if s.Slot >= numSlots {
		return m.match(i, p, pi+1)
	}

	m.captures[s.Slot] = span{start: s.Start, end: i}
	end, ok := m.match(i, p, pi+1)
	if !ok {
		m.captures[s.Slot] = span{}
	}
	return end, ok
}

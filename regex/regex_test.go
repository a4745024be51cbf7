package regex

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMatch(t *testing.T) {
	tests := map[string]struct {
		givenRe       string
		wantMatches   []string
		wantNoMatches []string
	}{
		"anchored literal": {
			givenRe:       "^abc$",
			wantMatches:   []string{"abc"},
			wantNoMatches: []string{"", "ab", "abcd", "xabc", "abc abc"},
		},
		"one or more": {
			givenRe:       "a+",
			wantMatches:   []string{"a", "aa", "aaa", "bab"},
			wantNoMatches: []string{"", "b"},
		},
		"zero or one": {
			givenRe:       "a?b",
			wantMatches:   []string{"b", "ab", "cb"},
			wantNoMatches: []string{"", "a", "c"},
		},
		"optional at end of input": {
			givenRe:     "ba?",
			wantMatches: []string{"b", "ba", "cb"},
		},
		"bracket": {
			givenRe:       "[abc]",
			wantMatches:   []string{"a", "b", "c", "xxc"},
			wantNoMatches: []string{"", "d", "xyz"},
		},
		"negated bracket": {
			givenRe:       "[^abc]",
			wantMatches:   []string{"d", "abcd", "日"},
			wantNoMatches: []string{"", "a", "cab"},
		},
		"alternation": {
			givenRe:       "(cat|dog)",
			wantMatches:   []string{"cat", "dog", "hotdog"},
			wantNoMatches: []string{"cow", "", "ca"},
		},
		"alternation at end of line": {
			givenRe:       "(cat|dog)$",
			wantMatches:   []string{"hotdog", "cat"},
			wantNoMatches: []string{"dogs"},
		},
		"empty alternative": {
			givenRe:       "x(a|)y",
			wantMatches:   []string{"xy", "xay"},
			wantNoMatches: []string{"xby"},
		},
		"digit": {
			givenRe:       `\d\d`,
			wantMatches:   []string{"42", "a12b"},
			wantNoMatches: []string{"4a2", "٤٢"},
		},
		"alphanumeric": {
			givenRe:       `\w`,
			wantMatches:   []string{"a", "Z", "7", "é", "日"},
			wantNoMatches: []string{"", "_", "-!? "},
		},
		"wildcard": {
			givenRe:       "d.g",
			wantMatches:   []string{"dog", "dig", "d g"},
			wantNoMatches: []string{"dg", "do"},
		},
		"escaped backslash": {
			givenRe:       `a\\b`,
			wantMatches:   []string{`a\b`},
			wantNoMatches: []string{"ab", `a\\`},
		},
		"backreference": {
			givenRe:       `(\w+) \1`,
			wantMatches:   []string{"hello hello", "ab b"},
			wantNoMatches: []string{"hello world", "a"},
		},
		"squares and circles": {
			givenRe:       `(\d+) (\w+) squares and \1 \2 circles`,
			wantMatches:   []string{"3 red squares and 3 red circles"},
			wantNoMatches: []string{"3 red squares and 4 red circles", "3 red squares and 3 blue circles"},
		},
		"nested groups": {
			givenRe:       `((\w\w\w\w) (\d\d\d)) is doing \2 \3 times, and again \1 times`,
			wantMatches:   []string{"grep 101 is doing grep 101 times, and again grep 101 times"},
			wantNoMatches: []string{"grep 101 is doing grep 102 times, and again grep 101 times"},
		},
		"backreference to an empty slot": {
			givenRe:       `\1a`,
			wantNoMatches: []string{"a", "aa", ""},
		},
		"backreference to a quantified group": {
			// repetitions are probed on their own, so the group never captures
			givenRe:       `(a)+\1`,
			wantNoMatches: []string{"aa", "aaa"},
		},
		// backtracking out of (a) leaves \2 pointing at an abandoned slot
		"backreference after revisited group": {
			givenRe:       `(a|ab)(c)\2`,
			wantNoMatches: []string{"abcc"},
		},
		"backreference to the slot of the revisited group": {
			givenRe:     `(a|ab)(c)\3`,
			wantMatches: []string{"abcc"},
		},
		"backreference text keeps its metacharacters": {
			givenRe:       `(a.) \1`,
			wantMatches:   []string{"a. ab", "a. a."},
			wantNoMatches: []string{"a. b."},
		},
		"quantified group": {
			givenRe:       "^(ab)+c$",
			wantMatches:   []string{"abc", "ababc"},
			wantNoMatches: []string{"c", "abac"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			// given
			re, err := Compile(tt.givenRe)
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}

			// then
			for _, s := range tt.wantMatches {
				if !re.Match(s) {
					t.Errorf("%q did not match %q", tt.givenRe, s)
				}
			}

			for _, s := range tt.wantNoMatches {
				if re.Match(s) {
					t.Errorf("%q matched %q", tt.givenRe, s)
				}
			}
		})
	}
}

func TestMatchLiteralIsSubstring(t *testing.T) {
	patterns := []string{"", "a", "ab", "abc", "ca", "b c", "日本", "xyz"}
	inputs := []string{"", "a", "abc", "cabc", "ab c", "日本語", "xy", "zyx"}

	for _, p := range patterns {
		re := MustCompile(p)
		for _, s := range inputs {
			if got, want := re.Match(s), strings.Contains(s, p); got != want {
				t.Errorf("Match(%q, %q) = %v, want %v", p, s, got, want)
			}
		}
	}
}

// not really a unit test, relies on correct parsing
// the patterns avoid quantified groups and '_', where the semantics differ from the standard library
func TestMatchLikeStdlib(t *testing.T) {
	patterns := []string{
		"abc",
		"^abc$",
		"a+b",
		"colou?r",
		"[abc]x",
		"[^abc]",
		"(cat|dog)s",
		"^(yes|no)$",
		`\d\d`,
		`x\w+y`,
		"^a.c",
	}
	inputs := []string{
		"", "abc", "xabcx", "aab", "color", "colour", "colouur", "a", "dx", "ax",
		"cats", "dogs", "yes", "no", "yesno", "42", "4a2", "xhelloy", "xy", "abbc", "a c",
	}

	for _, p := range patterns {
		re := MustCompile(p)
		stdRe := regexp.MustCompile(p)
		for _, s := range inputs {
			if got, want := re.Match(s), stdRe.MatchString(s); got != want {
				t.Errorf("Match(%q, %q) = %v, regexp says %v", p, s, got, want)
			}
		}
	}
}

func TestCompileError(t *testing.T) {
	tests := map[string]struct {
		givenRe string
		wantErr error
	}{
		"unterminated bracket": {givenRe: "[ab", wantErr: ErrUnterminatedClass},
		"unterminated group":   {givenRe: "(ab|c", wantErr: ErrUnterminatedGroup},
		"dangling plus":        {givenRe: "+", wantErr: ErrMissingOperand},
		"dangling question":    {givenRe: "(?)", wantErr: ErrMissingOperand},
		"unsupported escape":   {givenRe: `\s`, wantErr: ErrUnsupportedEscape},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			// when
			_, err := Compile(tt.givenRe)

			// then
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("MustCompile did not panic")
		}
	}()
	MustCompile("(")
}

func TestFindSubmatch(t *testing.T) {
	tests := map[string]struct {
		givenRe        string
		givenStr       string
		wantSubmatches []Submatch
	}{
		"no match": {
			givenRe:  "abc",
			givenStr: "abd",
		},
		"whole match only": {
			givenRe:        "b.",
			givenStr:       "abcd",
			wantSubmatches: []Submatch{{Offset: 1, Str: "bc"}},
		},
		"fewest repetitions": {
			givenRe:        "a+",
			givenStr:       "baaa",
			wantSubmatches: []Submatch{{Offset: 1, Str: "a"}},
		},
		"repetitions needed to reach the end": {
			givenRe:        "a+$",
			givenStr:       "baaa",
			wantSubmatches: []Submatch{{Offset: 1, Str: "aaa"}},
		},
		"one occurrence preferred": {
			givenRe:        "a?",
			givenStr:       "aa",
			wantSubmatches: []Submatch{{Offset: 0, Str: "a"}},
		},
		"groups": {
			givenRe:  `(\d+) (\w+) squares`,
			givenStr: "see 3 red squares",
			wantSubmatches: []Submatch{
				{Offset: 4, Str: "3 red squares"},
				{Offset: 4, Str: "3"},
				{Offset: 6, Str: "red"},
			},
		},
		"byte offsets with multibyte input": {
			givenRe:  "(本)語",
			givenStr: "日本語",
			wantSubmatches: []Submatch{
				{Offset: 3, Str: "本語"},
				{Offset: 3, Str: "本"},
			},
		},
		"abandoned slot": {
			givenRe:  "(a|ab)(c)",
			givenStr: "abc",
			wantSubmatches: []Submatch{
				{Offset: 0, Str: "abc"},
				{Offset: 0, Str: "ab"},
				{Offset: -1},
				{Offset: 2, Str: "c"},
			},
		},
		"empty capture": {
			givenRe:  "x(a|)y",
			givenStr: "xy",
			wantSubmatches: []Submatch{
				{Offset: 0, Str: "xy"},
				{Offset: -1},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			// given
			re, err := Compile(tt.givenRe)
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}

			// when
			got := re.FindSubmatch(tt.givenStr)

			// then
			if d := cmp.Diff(tt.wantSubmatches, got); d != "" {
				t.Errorf("got diff (-want +got):\n%s", d)
			}
		})
	}
}

func TestFindAllSubmatches(t *testing.T) {
	tests := map[string]struct {
		givenRe    string
		givenStr   string
		givenCount int
		wantWhole  []string
	}{
		"all": {
			givenRe:    `\d\d`,
			givenStr:   "12 345 6789",
			givenCount: -1,
			wantWhole:  []string{"12", "34", "67", "89"},
		},
		"limited": {
			givenRe:    `\d\d`,
			givenStr:   "12 345 6789",
			givenCount: 2,
			wantWhole:  []string{"12", "34"},
		},
		"empty matches advance": {
			givenRe:    "a?",
			givenStr:   "bab",
			givenCount: -1,
			wantWhole:  []string{"", "a", "", ""},
		},
		"line start only matches once": {
			givenRe:    "^a",
			givenStr:   "aaa",
			givenCount: -1,
			wantWhole:  []string{"a"},
		},
		"rejected by prefilter": {
			givenRe:    "needle",
			givenStr:   "haystack",
			givenCount: -1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			// given
			re, err := Compile(tt.givenRe)
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}

			// when
			matches := re.FindAllSubmatches(tt.givenStr, tt.givenCount)

			// then
			var gotWhole []string
			for _, m := range matches {
				gotWhole = append(gotWhole, m[0].Str)
			}
			if d := cmp.Diff(tt.wantWhole, gotWhole); d != "" {
				t.Errorf("got diff (-want +got):\n%s", d)
			}
		})
	}
}

func TestReplace(t *testing.T) {
	tests := map[string]struct {
		givenRe      string
		givenStr     string
		givenReplace string
		wantReplaced string
	}{
		"no match": {
			givenRe:      "x",
			givenStr:     "abc",
			givenReplace: "y",
			wantReplaced: "abc",
		},
		"every match": {
			givenRe:      "cat",
			givenStr:     "cat and cat",
			givenReplace: "dog",
			wantReplaced: "dog and dog",
		},
		"swap groups": {
			givenRe:      `(\w+)=(\d+);`,
			givenStr:     "set key=42;",
			givenReplace: "$2=$1;",
			wantReplaced: "set 42=key;",
		},
		"whole match": {
			givenRe:      `\d\d`,
			givenStr:     "a12b",
			givenReplace: "<$0>",
			wantReplaced: "a<12>b",
		},
		"unknown group expands to nothing": {
			givenRe:      "(a)",
			givenStr:     "bab",
			givenReplace: "[$7]",
			wantReplaced: "b[]b",
		},
		"group number too large": {
			givenRe:      "(a)",
			givenStr:     "a",
			givenReplace: "<$9223372036854775808>",
			wantReplaced: "<>",
		},
		"digits after a group": {
			givenRe:      "(a)",
			givenStr:     "a",
			givenReplace: "$10",
			wantReplaced: "",
		},
		"multibyte": {
			givenRe:      "本",
			givenStr:     "日本語",
			givenReplace: "-",
			wantReplaced: "日-語",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			// given
			re, err := Compile(tt.givenRe)
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}

			// when
			got := re.Replace(tt.givenStr, tt.givenReplace)

			// then
			if d := cmp.Diff(tt.wantReplaced, got); d != "" {
				t.Errorf("got diff (-want +got):\n%s", d)
			}
		})
	}
}

func TestString(t *testing.T) {
	re := MustCompile(`(\d+)  x`)
	if d := cmp.Diff(`(\d+)  x`, re.String()); d != "" {
		t.Errorf("got diff (-want +got):\n%s", d)
	}
}

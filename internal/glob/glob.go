// Package glob implements case-sensitive shell-style wildcard matching of
// host names.
//
// Supported syntax follows fnmatch: '*' matches any run of characters
// (including '.'), '?' matches one character, "[seq]" matches any character
// in seq and "[!seq]" any character not in it. Braces and backslashes are
// literal, and a '[' without a closing ']' matches itself.
//
// Patterns gobwas can express are compiled with it. The rest, negated
// classes and very wide ranges, run on a small matcher in this package.
package glob

import (
	"strings"

	gobwas "github.com/gobwas/glob"
)

// maxClassExpansion bounds how many runes a class may expand to before the
// pattern is left to the local matcher.
const maxClassExpansion = 256

// Matcher tests names against a fixed set of patterns.
type Matcher struct {
	patterns []string
	globs    []gobwas.Glob
}

// Compile prepares the given patterns for matching.
func Compile(patterns []string) *Matcher {
	m := &Matcher{patterns: patterns, globs: make([]gobwas.Glob, len(patterns))}
	for i, p := range patterns {
		m.globs[i] = compile(p)
	}
	return m
}

func compile(pattern string) gobwas.Glob {
	seq := parse(pattern)
	if expr, ok := seq.gobwasExpr(); ok {
		if g, err := gobwas.Compile(expr); err == nil {
			return g
		}
	}
	return seq
}

// Match reports the index of the first pattern matching name, or -1.
func (m *Matcher) Match(name string) int {
	for i, g := range m.globs {
		if g.Match(name) {
			return i
		}
	}
	return -1
}

// Matches reports whether name matches any pattern.
func (m *Matcher) Matches(name string) bool {
	return m.Match(name) >= 0
}

// Pattern returns the i-th source pattern.
func (m *Matcher) Pattern(i int) string {
	return m.patterns[i]
}

// Match reports whether name matches the single pattern.
func Match(pattern, name string) bool {
	return Compile([]string{pattern}).Matches(name)
}

type tokenKind int

const (
	tokLiteral tokenKind = iota
	tokAny
	tokStar
	tokClass
)

type runeRange struct{ lo, hi rune }

type charClass struct {
	negate bool
	ranges []runeRange
}

func (c *charClass) contains(r rune) bool {
	for _, rr := range c.ranges {
		if r >= rr.lo && r <= rr.hi {
			return !c.negate
		}
	}
	return c.negate
}

type token struct {
	kind  tokenKind
	r     rune
	class *charClass
}

func (t token) matches(r rune) bool {
	switch t.kind {
	case tokAny:
		return true
	case tokClass:
		return t.class.contains(r)
	default:
		return t.r == r
	}
}

// sequence is a parsed pattern. Every token except '*' consumes exactly one
// rune of the name.
type sequence []token

// parse splits an fnmatch pattern into tokens.
func parse(pattern string) sequence {
	rs := []rune(pattern)
	seq := make(sequence, 0, len(rs))
	for i := 0; i < len(rs); i++ {
		switch rs[i] {
		case '*':
			seq = append(seq, token{kind: tokStar})
		case '?':
			seq = append(seq, token{kind: tokAny})
		case '[':
			end := classEnd(rs, i)
			if end < 0 {
				seq = append(seq, token{kind: tokLiteral, r: '['})
				continue
			}
			seq = append(seq, token{kind: tokClass, class: parseClass(rs[i+1 : end])})
			i = end
		default:
			seq = append(seq, token{kind: tokLiteral, r: rs[i]})
		}
	}
	return seq
}

// classEnd returns the index of the ']' closing the class opened at
// rs[start], or -1. A ']' directly after "[" or "[!" is part of the class.
func classEnd(rs []rune, start int) int {
	j := start + 1
	if j < len(rs) && rs[j] == '!' {
		j++
	}
	if j < len(rs) && rs[j] == ']' {
		j++
	}
	for ; j < len(rs); j++ {
		if rs[j] == ']' {
			return j
		}
	}
	return -1
}

// parseClass reads a class body. A '-' between two characters forms a
// range; at either end it is literal. Backslash has no special meaning and
// a range whose bounds are reversed matches nothing.
func parseClass(body []rune) *charClass {
	c := &charClass{}
	if len(body) > 0 && body[0] == '!' {
		c.negate = true
		body = body[1:]
	}
	for p := 0; p < len(body); {
		if p+2 < len(body) && body[p+1] == '-' {
			if body[p] <= body[p+2] {
				c.ranges = append(c.ranges, runeRange{body[p], body[p+2]})
			}
			p += 3
			continue
		}
		c.ranges = append(c.ranges, runeRange{body[p], body[p]})
		p++
	}
	return c
}

// Match runs the pattern directly, backtracking to the last '*'.
func (s sequence) Match(name string) bool {
	rs := []rune(name)
	pi, ni := 0, 0
	star, mark := -1, 0
	for ni < len(rs) {
		switch {
		case pi < len(s) && s[pi].kind == tokStar:
			star, mark = pi, ni
			pi++
		case pi < len(s) && s[pi].matches(rs[ni]):
			pi++
			ni++
		case star >= 0:
			mark++
			pi, ni = star+1, mark
		default:
			return false
		}
	}
	for pi < len(s) && s[pi].kind == tokStar {
		pi++
	}
	return pi == len(s)
}

// gobwasExpr renders the sequence in gobwas syntax. Positive classes become
// alternations of escaped single characters; negated, empty or very wide
// classes are reported as not expressible.
func (s sequence) gobwasExpr() (string, bool) {
	var b strings.Builder
	for _, t := range s {
		switch t.kind {
		case tokStar:
			b.WriteByte('*')
		case tokAny:
			b.WriteByte('?')
		case tokLiteral:
			writeEscaped(&b, t.r)
		case tokClass:
			members, ok := t.class.expand()
			if !ok {
				return "", false
			}
			if len(members) == 1 {
				writeEscaped(&b, members[0])
				continue
			}
			b.WriteByte('{')
			for i, r := range members {
				if i > 0 {
					b.WriteByte(',')
				}
				writeEscaped(&b, r)
			}
			b.WriteByte('}')
		}
	}
	return b.String(), true
}

func (c *charClass) expand() ([]rune, bool) {
	if c.negate {
		return nil, false
	}
	var out []rune
	seen := make(map[rune]bool)
	for _, rr := range c.ranges {
		if int(rr.hi-rr.lo)+len(out) >= maxClassExpansion {
			return nil, false
		}
		for r := rr.lo; r <= rr.hi; r++ {
			if !seen[r] {
				seen[r] = true
				out = append(out, r)
			}
		}
	}
	return out, len(out) > 0
}

func writeEscaped(b *strings.Builder, r rune) {
	switch r {
	case '*', '?', '[', ']', '{', '}', ',', '\\', '!', '-':
		b.WriteByte('\\')
	}
	b.WriteRune(r)
}

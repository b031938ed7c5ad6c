package glob

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		input   string
		want    bool
	}{
		{"exact", "web1.example.com", "web1.example.com", true},
		{"exact mismatch", "web1.example.com", "web2.example.com", false},
		{"star spans dots", "*.example.com", "web1.dc1.example.com", true},
		{"star prefix", "web*", "web12.example.com", true},
		{"star alone", "*", "anything.at.all", true},
		{"question mark", "web?.example.com", "web7.example.com", true},
		{"question mark needs one char", "web?.example.com", "web.example.com", false},
		{"class", "web[12].example.com", "web2.example.com", true},
		{"class miss", "web[12].example.com", "web3.example.com", false},
		{"range", "web[0-9].example.com", "web5.example.com", true},
		{"negated class", "web[!12].example.com", "web3.example.com", true},
		{"negated class miss", "web[!12].example.com", "web1.example.com", false},
		{"case sensitive", "WEB1.example.com", "web1.example.com", false},
		{"braces are literal", "web{1,2}.example.com", "web1.example.com", false},
		{"braces match themselves", "web{1,2}", "web{1,2}", true},
		{"unclosed bracket is literal", "web[1", "web[1", true},
		{"unclosed bracket no wildcard", "web[1", "web1", false},
		{"anchored", "web1", "web1.example.com", false},
		{"closing bracket first in class", "[]a]b", "]b", true},
		{"closing bracket class other member", "[]a]b", "ab", true},
		{"closing bracket class miss", "[]a]b", "cb", false},
		{"negated closing bracket", "[!]]x", "ax", true},
		{"negated closing bracket miss", "[!]]x", "]x", false},
		{"trailing hyphen is literal", "[a-]x", "-x", true},
		{"trailing hyphen no range", "[a-]x", "bx", false},
		{"leading hyphen is literal", "[-a]x", "-x", true},
		{"backslash literal in class", "[\\]]x", "\\]x", true},
		{"backslash class needs backslash", "[\\]]x", "]x", false},
		{"reversed range matches nothing", "[z-a]", "m", false},
		{"two ranges", "[a-c0-2]x", "1x", true},
		{"two ranges miss", "[a-c0-2]x", "dx", false},
		{"negated range", "web[!0-9]", "webx", true},
		{"negated range miss", "web[!0-9]", "web5", false},
		{"star then negated class", "*[!0-9]", "web1a", true},
		{"star then negated class miss", "*[!0-9]", "weba1", false},
		{"hyphenated host in class", "db[-_]1", "db-1", true},
		{"non-ascii class", "h[é]st", "hést", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.pattern, tt.input))
		})
	}
}

func TestMatcherFirstMatchWins(t *testing.T) {
	m := Compile([]string{"db*", "*.example.com", "web1.example.com"})

	assert.Equal(t, 1, m.Match("web1.example.com"))
	assert.Equal(t, 0, m.Match("db1.example.com"))
	assert.Equal(t, -1, m.Match("web1.example.org"))
	assert.Equal(t, "*.example.com", m.Pattern(1))
	assert.True(t, m.Matches("db1"))
}

func TestGobwasExpr(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
		ok      bool
	}{
		{"a{b,c}", `a\{b\,c\}`, true},
		{"[abc", `\[abc`, true},
		{`x\y`, `x\\y`, true},
		{"[]a]*", `{\],a}*`, true},
		{"[a-c]", `{a,b,c}`, true},
		{"[a-]", `{a,\-}`, true},
		{"web[1]", `web1`, true},
		{"[!ab]*", "", false},
		{"[z-a]", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, ok := parse(tt.pattern).gobwasExpr()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSequenceMatchesWithoutGobwas(t *testing.T) {
	seq := parse("web[!0-9]*.example.com")

	assert.True(t, seq.Match("webx1.example.com"))
	assert.True(t, seq.Match("web-.example.com"))
	assert.False(t, seq.Match("web1x.example.com"))
	assert.False(t, seq.Match("webx1.example.org"))
}

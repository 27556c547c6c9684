package filter

import (
	"regexp"
	"strings"
)

// Pattern is a case-insensitive regular expression that can be rendered for
// both the Go regexp engine and PostgreSQL's ARE flavour. The two engines agree
// on everything we use except the word boundary escape (\b in Go, \y in
// Postgres, where \b means backspace), so a pattern is kept as a list of
// segments and boundaries are only spelled out at render time.
type Pattern struct {
	segments []segment
}

type segment struct {
	expr     string
	boundary bool
}

const (
	goBoundary       = `\b`
	postgresBoundary = `\y`
)

// wb is the word boundary marker used inside pattern builders.
var wb = segment{boundary: true}

func expr(s string) segment { return segment{expr: s} }

// Contains matches s anywhere in the text. s is treated as a literal.
func Contains(s string) Pattern {
	if s == "" {
		return Pattern{}
	}
	return Pattern{segments: []segment{expr(regexp.QuoteMeta(s))}}
}

// AnyWord matches any of the phrases as whole words. Phrases are literals.
func AnyWord(phrases ...string) Pattern {
	quoted := make([]string, 0, len(phrases))
	seen := make(map[string]struct{}, len(phrases))
	for _, p := range phrases {
		p = strings.TrimSpace(p)
		key := strings.ToLower(p)
		if _, dup := seen[key]; dup || p == "" {
			continue
		}
		seen[key] = struct{}{}
		quoted = append(quoted, regexp.QuoteMeta(p))
	}
	if len(quoted) == 0 {
		return Pattern{}
	}
	return Pattern{segments: []segment{wb, expr("(?:" + strings.Join(quoted, "|") + ")"), wb}}
}

// IsZero reports whether the pattern is empty.
func (p Pattern) IsZero() bool {
	return len(p.segments) == 0
}

// Go renders the pattern for regexp.Compile, case-insensitive.
func (p Pattern) Go() string {
	return "(?i)" + p.render(goBoundary)
}

// Postgres renders the pattern for the ~* operator.
func (p Pattern) Postgres() string {
	return p.render(postgresBoundary)
}

// Compile returns the Go form of the pattern.
func (p Pattern) Compile() (*regexp.Regexp, error) {
	return regexp.Compile(p.Go())
}

func (p Pattern) render(boundary string) string {
	var b strings.Builder
	for _, s := range p.segments {
		if s.boundary {
			b.WriteString(boundary)
			continue
		}
		b.WriteString(s.expr)
	}
	return b.String()
}

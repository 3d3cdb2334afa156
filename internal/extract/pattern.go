package extract

import (
	"regexp"
	"regexp/syntax"

	"github.com/pkg/errors"
)

// Pattern is a compiled extraction expression. The first capture group
// yields the app ID of a matching file name.
type Pattern struct {
	expr string
	re   *regexp.Regexp
}

// Compile parses expr with Go's RE2 syntax.
func Compile(expr string) (*Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid pattern %q", expr)
	}
	return &Pattern{expr: expr, re: re}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string) *Pattern {
	p, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Pattern) String() string {
	return p.expr
}

// HasGroup reports whether the pattern can yield an identifier at all.
func (p *Pattern) HasGroup() bool {
	return p.re.NumSubexp() > 0
}

// Identifier returns the text of the first capture group of the leftmost match.
func (p *Pattern) Identifier(name string) (string, bool) {
	if !p.HasGroup() {
		return "", false
	}
	loc := p.re.FindStringSubmatchIndex(name)
	if loc == nil || loc[2] < 0 {
		return "", false
	}
	return name[loc[2]:loc[3]], true
}

// Matcher selects the files that belong to one identifier.
type Matcher struct {
	id      string
	base    *Pattern
	derived *regexp.Regexp
}

// Matcher derives a per-identifier test from the pattern. The first capture
// group is replaced in the parsed expression by a literal for id, keeping
// everything before and after it.
func (p *Pattern) Matcher(id string) (*Matcher, error) {
	tree, err := syntax.Parse(p.expr, syntax.Perl)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid pattern %q", p.expr)
	}

	lit := &syntax.Regexp{Op: syntax.OpLiteral, Rune: []rune(id)}
	if !replaceFirstCapture(&tree, lit) {
		return nil, errors.Errorf("pattern %q has no capture group", p.expr)
	}

	derived, err := regexp.Compile(tree.String())
	if err != nil {
		return nil, errors.Wrapf(err, "derive pattern for %s", id)
	}

	return &Matcher{id: id, base: p, derived: derived}, nil
}

func replaceFirstCapture(node **syntax.Regexp, lit *syntax.Regexp) bool {
	if (*node).Op == syntax.OpCapture && (*node).Cap == 1 {
		*node = lit
		return true
	}
	for i := range (*node).Sub {
		if replaceFirstCapture(&(*node).Sub[i], lit) {
			return true
		}
	}
	return false
}

// Match reports whether name belongs to the matcher's identifier. A name
// from which the base pattern extracts a different identifier never matches,
// so 1440_1.png is not taken for 440.
func (m *Matcher) Match(name string) bool {
	if !m.derived.MatchString(name) {
		return false
	}
	if got, ok := m.base.Identifier(name); ok && got != m.id {
		return false
	}
	return true
}

func (m *Matcher) String() string {
	return m.derived.String()
}

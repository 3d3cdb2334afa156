package extract

import (
	"testing"

	"github.com/varoOP/shotsort/internal/domain"
)

func TestPatternIdentifier(t *testing.T) {
	p := MustCompile(domain.DefaultPattern)

	tests := []struct {
		name   string
		wantID string
		wantOK bool
	}{
		{name: "440_20231104123456_1.png", wantID: "440", wantOK: true},
		{name: "1091500_20240101000000_3.jpg", wantID: "1091500", wantOK: true},
		{name: "readme.txt", wantOK: false},
		{name: "440.png", wantOK: false},
		{name: "shot_440_1.png", wantID: "440", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.Identifier(tt.name)
			if ok != tt.wantOK || got != tt.wantID {
				t.Errorf("Identifier(%q) = (%q, %v), want (%q, %v)", tt.name, got, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestPatternWithoutGroupYieldsNothing(t *testing.T) {
	p := MustCompile(`\d+_\d+.*`)
	if p.HasGroup() {
		t.Fatal("HasGroup() = true for a pattern without groups")
	}
	if id, ok := p.Identifier("440_1.png"); ok {
		t.Errorf("Identifier returned %q for a pattern without groups", id)
	}
	if _, err := p.Matcher("440"); err == nil {
		t.Error("Matcher should fail without a capture group")
	}
}

func TestPatternOptionalGroupNotParticipating(t *testing.T) {
	p := MustCompile(`(\d+)?_x`)
	if id, ok := p.Identifier("_x.png"); ok {
		t.Errorf("Identifier returned %q for a group that did not participate", id)
	}
}

func TestCompileRejectsInvalidPattern(t *testing.T) {
	if _, err := Compile(`(\d+_`); err == nil {
		t.Fatal("expected error for unbalanced pattern")
	}
}

func TestMatcherDefaultPattern(t *testing.T) {
	m, err := MustCompile(domain.DefaultPattern).Matcher("440")
	if err != nil {
		t.Fatalf("Matcher: %v", err)
	}

	tests := []struct {
		name string
		want bool
	}{
		{"440_screenshot1.png", true},
		{"440_20231104123456_1.png", true},
		{"440_1.png", true},
		{"1440_1.png", false},
		{"4400_1.png", false},
		{"620_1.png", false},
		{"readme.txt", false},
	}

	for _, tt := range tests {
		if got := m.Match(tt.name); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v (derived %s)", tt.name, got, tt.want, m)
		}
	}
}

func TestMatcherKeepsFragmentsAroundGroup(t *testing.T) {
	m, err := MustCompile(`^shot-(\d+)-\d+\.png$`).Matcher("70")
	if err != nil {
		t.Fatalf("Matcher: %v", err)
	}

	if !m.Match("shot-70-1.png") {
		t.Error("expected shot-70-1.png to match")
	}
	if m.Match("shot-70-1.jpg") {
		t.Error("suffix after the group must still apply")
	}
	if m.Match("x-shot-70-1.png") {
		t.Error("anchor before the group must still apply")
	}
}

func TestMatcherTreatsIdentifierLiterally(t *testing.T) {
	m, err := MustCompile(`(.+)_\d+`).Matcher("a.b(c")
	if err != nil {
		t.Fatalf("Matcher: %v", err)
	}
	if !m.Match("a.b(c_1") {
		t.Error("expected literal identifier to match itself")
	}
	if m.Match("aXb(c_1") {
		t.Error("identifier metacharacters must not act as regex syntax")
	}
}

func TestMatcherMultiGroupReplacesFirstOnly(t *testing.T) {
	m, err := MustCompile(`(\d+)_(\d+)\.png`).Matcher("440")
	if err != nil {
		t.Fatalf("Matcher: %v", err)
	}
	if !m.Match("440_2.png") {
		t.Error("expected 440_2.png to match")
	}
	if m.Match("441_2.png") {
		t.Error("441_2.png must not match")
	}
}

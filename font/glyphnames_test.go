package font

import "testing"

func TestResolveGlyphName(t *testing.T) {
	tests := []struct {
		name string
		want rune
		ok   bool
	}{
		// Table entries
		{"space", ' ', true},
		{"A", 'A', true},
		{"a", 'a', true},
		{"zero", '0', true},
		{"eacute", 'é', true},
		{"Euro", '€', true},
		{"bullet", '•', true},
		{"quoteright", '’', true},
		{"emdash", '—', true},
		{"fi", 'ﬁ', true},
		{"alpha", 'α', true},

		// uniXXXX and uXXXX forms
		{"uni0041", 'A', true},
		{"uni20AC", '€', true},
		{"uni0041.alt", 'A', true},
		{"u0041", 'A', true},
		{"u1D400", '\U0001D400', true},

		// Variant suffixes recurse on the stem
		{"a.sc", 'a', true},
		{"one.oldstyle", '1', true},

		// Numeric subset names decode to their own code
		{"G36", rune(36), true},
		{"g36", rune(36), true},
		{"C102", rune(102), true},
		{"cid54", rune(54), true},

		// Single-character names stand for themselves
		{"ß", 'ß', true},

		// Unresolvable
		{"", 0, false},
		{"nonsense-name", 0, false},
		{"uniXYZW", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := resolveGlyphName(tt.name)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("resolveGlyphName(%q) = (U+%04X, %v), want (U+%04X, %v)", tt.name, got, ok, tt.want, tt.ok)
			}
		})
	}
}

package entity

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		html string
		text string
		r    rune
	}{
		{"amp", "&amp;", "&", '&'},
		{"lt", "&lt;", "<", '<'},
		{"nbsp", "&#160;", " ", '\u00a0'},
		{"rarr", "&rarr;", "->", '→'},
		{"le", "&le;", "<=", '≤'},
		{"bslash", "\\", "\\", '\\'},
		{"dcolon", "::", "::", ':'},
	}
	for _, test := range tests {
		s, ok := Lookup(test.name)
		if !ok {
			t.Errorf("Lookup(%q) not found", test.name)
			continue
		}
		if s.HTML != test.html || s.Text != test.text || s.Rune != test.r {
			t.Errorf("Lookup(%q) = %+v, want html %q text %q rune %q",
				test.name, s, test.html, test.text, test.r)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, ok := Lookup("nosuchentity"); ok {
		t.Error("Lookup(nosuchentity) unexpectedly found")
	}
}

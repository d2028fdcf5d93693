package board

import "testing"

func TestFirstGlyph(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"ascii", "a", "a"},
		{"ascii run", "abc", "a"},
		{"simple emoji", "🎉", "🎉"},
		{"two emoji", "🎉⭐", "🎉"},
		{"presentation selector", "❤️", "❤️"},
		{"presentation selector then more", "❤️x", "❤️"},
		{"skin tone", "👋🏽", "👋🏽"},
		{"zwj family", "👨‍👩‍👧", "👨‍👩‍👧"},
		{"zwj family then text", "👨‍👩‍👧!", "👨‍👩‍👧"},
		{"flag", "🇺🇸", "🇺🇸"},
		{"two flags", "🇺🇸🇯🇵", "🇺🇸"},
		{"keycap", "1️⃣", "1️⃣"},
		{"dangling zwj dropped", "⭐‍", "⭐"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstGlyph(tt.in); got != tt.want {
				t.Errorf("firstGlyph(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

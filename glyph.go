package board

// Sticker text is a single visual glyph, but user input may arrive as a
// longer string (paste, rapid emoji keyboard input). firstGlyph extracts
// the leading glyph while keeping multi-codepoint emoji sequences intact:
// ZWJ families, flags, keycaps, skin-tone modifiers and variation
// selectors all stay part of one glyph.
func firstGlyph(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return ""
	}

	// Two regional indicators form a flag (e.g. U+1F1FA U+1F1F8 = US).
	if isRegionalIndicator(runes[0]) {
		if len(runes) > 1 && isRegionalIndicator(runes[1]) {
			return string(runes[:2])
		}
		return string(runes[:1])
	}

	i := 1
	for i < len(runes) {
		r := runes[i]
		switch {
		case isVariationSelector(r), isEmojiModifier(r), isCombiningKeycap(r), isTag(r):
			i++
		case isZWJ(r) && i+1 < len(runes):
			// ZWJ joins the next emoji into a composite sequence
			// (family, profession). Consume the joiner and the base.
			i += 2
		default:
			return string(runes[:i])
		}
	}
	return string(runes[:i])
}

// isZWJ returns true if the rune is Zero-Width Joiner (U+200D).
func isZWJ(r rune) bool {
	return r == 0x200D
}

// isRegionalIndicator returns true if the rune is a Regional Indicator
// (A-Z range U+1F1E6 - U+1F1FF).
func isRegionalIndicator(r rune) bool {
	return r >= 0x1F1E6 && r <= 0x1F1FF
}

// isVariationSelector returns true for emoji-related variation selectors.
// U+FE0E forces text presentation, U+FE0F forces emoji presentation.
func isVariationSelector(r rune) bool {
	return r == 0xFE0E || r == 0xFE0F
}

// isEmojiModifier returns true if the rune is a skin tone modifier.
// Fitzpatrick scale modifiers: U+1F3FB - U+1F3FF.
func isEmojiModifier(r rune) bool {
	return r >= 0x1F3FB && r <= 0x1F3FF
}

// isCombiningKeycap returns true for U+20E3, which combines with a
// preceding digit or symbol into a keycap glyph.
func isCombiningKeycap(r rune) bool {
	return r == 0x20E3
}

// isTag returns true for the tag characters U+E0020 - U+E007F used by
// subdivision flag sequences (e.g. the Scotland flag).
func isTag(r rune) bool {
	return r >= 0xE0020 && r <= 0xE007F
}

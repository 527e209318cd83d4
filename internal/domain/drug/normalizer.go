package drug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const tatweel = 'ـ'

// stripMarks decomposes, drops combining marks (tashkeel and hamza/madda
// carriers included), and recomposes.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeArabic canonicalizes Arabic text for matching: diacritics and
// tatweel are stripped, alef variants fold to bare alef, taa marbuta folds to
// haa and final yaa variants fold to yaa (both are merged in casual spelling).
// The function is pure and idempotent.
func NormalizeArabic(text string) string {
	stripped, _, err := transform.String(stripMarks, text)
	if err != nil {
		stripped = text
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		switch r {
		case tatweel:
			// elongation only, no phonetic value
		case 'آ', 'أ', 'إ':
			b.WriteRune('ا')
		case 'ة':
			b.WriteRune('ه')
		case 'ى':
			b.WriteRune('ي')
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// ContainsArabic reports whether any rune falls in the Arabic block.
func ContainsArabic(text string) bool {
	for _, r := range text {
		if r >= 0x0600 && r <= 0x06FF {
			return true
		}
	}
	return false
}

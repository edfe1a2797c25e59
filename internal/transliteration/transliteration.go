// Package transliteration renders Hangul numeral text in Latin script.
package transliteration

import "strings"

// Romanize converts the precomposed Hangul syllables in text to Revised
// Romanization one syllable at a time. Other runes, including spaces and
// bare jamo, are copied through.
func Romanize(text string) string {
	var b strings.Builder
	for _, r := range text {
		if isSyllable(r) {
			romanizeSyllable(&b, r)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

package transliteration

import (
	"strings"
	"unicode"
)

const (
	hangulBase = 0xAC00
	hangulEnd  = 0xD7A3
	jongN      = 28
	jungN      = 21
)

// Revised Romanization of Korean. Finals use their representative
// sounds, so 백 is "baek" rather than "baeg".
var (
	choseong = []string{
		"g", "kk", "n", "d", "tt", "r", "m", "b", "pp",
		"s", "ss", "", "j", "jj", "ch", "k", "t", "p", "h",
	}
	jungseong = []string{
		"a", "ae", "ya", "yae", "eo", "e", "yeo", "ye", "o",
		"wa", "wae", "oe", "yo", "u", "wo", "we", "wi", "yu",
		"eu", "ui", "i",
	}
	jongseong = []string{
		"", "k", "k", "k", "n", "n", "n", "t", "l", "k",
		"m", "l", "l", "l", "p", "l", "m", "p", "p",
		"t", "t", "ng", "t", "t", "k", "t", "p", "t",
	}
)

func romanizeSyllable(b *strings.Builder, r rune) {
	code := int(r) - hangulBase
	jong := code % jongN
	jung := (code / jongN) % jungN
	cho := code / (jongN * jungN)
	b.WriteString(choseong[cho])
	b.WriteString(jungseong[jung])
	b.WriteString(jongseong[jong])
}

func isSyllable(r rune) bool {
	return r >= hangulBase && r <= hangulEnd
}

// ContainsHangul reports whether s has any Hangul rune.
func ContainsHangul(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Hangul, r) {
			return true
		}
	}
	return false
}

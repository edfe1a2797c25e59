// Package numeral converts between integers and Sino-Korean numeral text.
package numeral

import "math/big"

const (
	defaultZeroChar     = "영"
	defaultNegativeWord = "마이너스"

	chunkBase = 10000
)

var digits = [10]string{"영", "일", "이", "삼", "사", "오", "육", "칠", "팔", "구"}

// Small units apply inside a single chunk, largest first.
var smallUnits = [3]struct {
	char  string
	value int
}{
	{"천", 1000},
	{"백", 100},
	{"십", 10},
}

// largeUnits is indexed by chunk position; index 0 is the unadorned chunk.
var largeUnits = [5]string{"", "만", "억", "조", "경"}

var (
	digitValues = map[rune]int64{
		'영': 0, '공': 0,
		'일': 1, '이': 2, '삼': 3, '사': 4, '오': 5,
		'육': 6, '륙': 6,
		'칠': 7, '팔': 8, '구': 9,
	}

	smallUnitValues = map[rune]int64{
		'십': 10,
		'백': 100,
		'천': 1000,
	}

	largeUnitValues = map[rune]*big.Int{
		'만': pow10000(1),
		'억': pow10000(2),
		'조': pow10000(3),
		'경': pow10000(4),
	}

	// encodeLimit is 10000^5; magnitudes at or above it have no unit.
	encodeLimit = pow10000(5)

	bigChunkBase = big.NewInt(chunkBase)
)

func pow10000(n int64) *big.Int {
	return new(big.Int).Exp(big.NewInt(chunkBase), big.NewInt(n), nil)
}

package numeral

import (
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

// Decode reads Sino-Korean numeral text and returns it in the representation
// selected by opts.Output. input must be a string.
func Decode(input any, opts DecodeOptions) (any, error) {
	text, ok := input.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %T (want string)", ErrType, input)
	}
	opts = opts.withDefaults()
	n, err := Parse(text, opts)
	if err != nil {
		return nil, err
	}
	return Coerce(n, opts.Output)
}

// Parse reads Sino-Korean numeral text into an arbitrary-precision integer.
//
// Large units are accumulated strictly left to right; out-of-order or
// repeated units are summed rather than rejected, so "만억" reads as
// 10^4 + 10^8.
func Parse(text string, opts DecodeOptions) (*big.Int, error) {
	opts = opts.withDefaults()

	s := strings.TrimSpace(text)
	if s == "" {
		return nil, fmt.Errorf("%w: input must not be empty", ErrFormat)
	}

	negative := false
	if rest, ok := strings.CutPrefix(s, opts.NegativeWord); ok {
		negative = true
		s = strings.TrimSpace(rest)
	}

	s = strings.Map(func(r rune) rune {
		if isSeparator(r) {
			return -1
		}
		return r
	}, s)

	if s == "영" || s == "공" || s == opts.ZeroChar {
		return new(big.Int), nil
	}

	var (
		total   = new(big.Int)
		section = new(big.Int)
		current int64
		term    = new(big.Int)
	)
	for offset, r := range s {
		if d, ok := digitValues[r]; ok {
			current = d
			continue
		}
		if unit, ok := smallUnitValues[r]; ok {
			coeff := current
			if coeff == 0 {
				coeff = 1
			}
			section.Add(section, term.SetInt64(coeff*unit))
			current = 0
			continue
		}
		if unit, ok := largeUnitValues[r]; ok {
			sectionValue := term.Add(section, big.NewInt(current))
			if sectionValue.Sign() == 0 {
				sectionValue.SetInt64(1)
			}
			total.Add(total, sectionValue.Mul(sectionValue, unit))
			section.SetInt64(0)
			current = 0
			continue
		}
		return nil, &ParseError{Rune: r, Offset: offset}
	}

	result := total.Add(total, section)
	result.Add(result, big.NewInt(current))
	if negative && result.Sign() != 0 {
		result.Neg(result)
	}
	return result, nil
}

func isSeparator(r rune) bool {
	switch r {
	case ',', '.', '-', '_':
		return true
	}
	return unicode.IsSpace(r)
}

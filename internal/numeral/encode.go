package numeral

import (
	"fmt"
	"math/big"
	"strings"
)

// Encode normalizes v and spells it in Sino-Korean numerals.
func Encode(v any, opts EncodeOptions) (string, error) {
	n, err := Normalize(v)
	if err != nil {
		return "", err
	}
	return EncodeInt(n, opts)
}

// EncodeInt spells n in Sino-Korean numerals. n is not modified.
func EncodeInt(n *big.Int, opts EncodeOptions) (string, error) {
	opts = opts.withDefaults()

	negative := n.Sign() < 0
	abs := new(big.Int).Abs(n)

	if abs.Sign() == 0 {
		return opts.ZeroChar, nil
	}
	if abs.Cmp(encodeLimit) >= 0 {
		return "", fmt.Errorf("%w: magnitude not supported (must be below 10^20): %s", ErrRange, n)
	}

	var parts []string
	chunk := new(big.Int)
	for unitIndex := 0; abs.Sign() > 0; unitIndex++ {
		abs.QuoRem(abs, bigChunkBase, chunk)
		c := int(chunk.Int64())
		if c == 0 {
			continue
		}
		parts = append(parts, groupToHangul(c, unitIndex, opts))
	}

	// parts is least significant first
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}

	sep := ""
	if opts.UseSpacingBetweenLargeUnits {
		sep = " "
	}
	joined := strings.Join(parts, sep)

	if negative {
		return opts.NegativeWord + " " + joined, nil
	}
	return joined, nil
}

func groupToHangul(chunk, unitIndex int, opts EncodeOptions) string {
	if unitIndex == 0 {
		return chunkToHangul(chunk, opts.KeepOneForSmallUnits)
	}
	unit := largeUnits[unitIndex]
	if chunk == 1 {
		if opts.KeepOneForLargeUnits {
			return digits[1] + unit
		}
		return unit
	}
	return chunkToHangul(chunk, opts.KeepOneForSmallUnits) + unit
}

// chunkToHangul renders a value in [1, 9999] without any large unit.
func chunkToHangul(chunk int, keepOne bool) string {
	var b strings.Builder
	for _, u := range smallUnits {
		d := chunk / u.value % 10
		if d == 0 {
			continue
		}
		if d != 1 || keepOne {
			b.WriteString(digits[d])
		}
		b.WriteString(u.char)
	}
	if ones := chunk % 10; ones != 0 {
		b.WriteString(digits[ones])
	}
	return b.String()
}

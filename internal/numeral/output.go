package numeral

import (
	"fmt"
	"math"
	"math/big"
)

// OutputMode selects the Go representation of a decoded value.
type OutputMode string

const (
	// OutputBigInt returns *big.Int.
	OutputBigInt OutputMode = "bigint"
	// OutputString returns the base-10 string.
	OutputString OutputMode = "string"
	// OutputNumber returns int64, failing with ErrRange when it does not fit.
	OutputNumber OutputMode = "number"
	// OutputAuto returns int64 when it fits and the base-10 string otherwise.
	OutputAuto OutputMode = "auto"
)

// MaxSafeInteger is the largest magnitude returned as a native int64.
const MaxSafeInteger = math.MaxInt64

var maxSafe = big.NewInt(MaxSafeInteger)

// OutputModes lists every valid mode.
var OutputModes = []OutputMode{OutputBigInt, OutputString, OutputNumber, OutputAuto}

// ParseOutputMode validates a user-supplied mode. Empty selects OutputAuto.
func ParseOutputMode(s string) (OutputMode, error) {
	if s == "" {
		return OutputAuto, nil
	}
	m := OutputMode(s)
	for _, valid := range OutputModes {
		if m == valid {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: invalid output option %q", ErrConfig, s)
}

// Coerce converts n into the representation selected by mode.
func Coerce(n *big.Int, mode OutputMode) (any, error) {
	switch mode {
	case OutputBigInt:
		return n, nil
	case OutputString:
		return n.String(), nil
	case OutputNumber:
		if !isSafe(n) {
			return nil, fmt.Errorf("%w: result %s exceeds the int64 range; choose output %q or %q", ErrRange, n, OutputBigInt, OutputString)
		}
		return n.Int64(), nil
	case OutputAuto:
		if isSafe(n) {
			return n.Int64(), nil
		}
		return n.String(), nil
	default:
		return nil, fmt.Errorf("%w: invalid output option %q", ErrConfig, mode)
	}
}

func isSafe(n *big.Int) bool {
	return n.CmpAbs(maxSafe) <= 0
}

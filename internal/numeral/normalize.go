package numeral

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

var integerPattern = regexp.MustCompile(`^[+-]?[0-9]+$`)

// Normalize converts v into an arbitrary-precision integer. It accepts Go
// integer kinds, float32/float64 holding an integral value, *big.Int,
// big.Int, decimal strings and json.Number. A *big.Int is returned as is.
func Normalize(v any) (*big.Int, error) {
	switch n := v.(type) {
	case *big.Int:
		if n == nil {
			return nil, fmt.Errorf("%w: nil *big.Int", ErrType)
		}
		return n, nil
	case big.Int:
		return new(big.Int).Set(&n), nil
	case int:
		return big.NewInt(int64(n)), nil
	case int8:
		return big.NewInt(int64(n)), nil
	case int16:
		return big.NewInt(int64(n)), nil
	case int32:
		return big.NewInt(int64(n)), nil
	case int64:
		return big.NewInt(n), nil
	case uint:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint64:
		return new(big.Int).SetUint64(n), nil
	case float32:
		return normalizeFloat(float64(n))
	case float64:
		return normalizeFloat(n)
	case json.Number:
		s := strings.TrimSpace(string(n))
		if integerPattern.MatchString(s) {
			return normalizeString(s)
		}
		f, err := n.Float64()
		if errors.Is(err, strconv.ErrRange) {
			return nil, fmt.Errorf("%w: number out of range: %s", ErrRange, string(n))
		}
		if err != nil {
			return nil, fmt.Errorf("%w: numeric string must contain only digits: %q", ErrFormat, string(n))
		}
		return normalizeFloat(f)
	case string:
		return normalizeString(n)
	default:
		return nil, fmt.Errorf("%w: %T (want integer, float, *big.Int or numeric string)", ErrType, v)
	}
}

func normalizeFloat(f float64) (*big.Int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: number must be finite", ErrRange)
	}
	if f != math.Trunc(f) {
		return nil, fmt.Errorf("%w: number must be an integer: %v", ErrRange, f)
	}
	n, _ := big.NewFloat(f).Int(nil)
	return n, nil
}

func normalizeString(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if !integerPattern.MatchString(s) {
		return nil, fmt.Errorf("%w: numeric string must contain only digits: %q", ErrFormat, s)
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: numeric string must contain only digits: %q", ErrFormat, s)
	}
	return n, nil
}

package numeral

import (
	"errors"
	"fmt"
)

var (
	// ErrType is returned when an input is not one of the accepted Go kinds.
	ErrType = errors.New("unsupported input type")
	// ErrFormat is returned when string input has the wrong lexical shape.
	ErrFormat = errors.New("malformed input")
	// ErrRange is returned for out-of-range magnitudes and non-integral numbers.
	ErrRange = errors.New("out of range")
	// ErrParse is returned when numeral text contains an unknown character.
	ErrParse = errors.New("unrecognized character")
	// ErrConfig is returned for invalid options.
	ErrConfig = errors.New("invalid configuration")
)

// ParseError reports the first character the decoder could not interpret.
type ParseError struct {
	Rune   rune
	Offset int // byte offset into the separator-stripped text
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %q at offset %d", ErrParse, e.Rune, e.Offset)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

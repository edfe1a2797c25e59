package db

import (
	"errors"
	"fmt"
)

// ErrConversionNotFound is returned by GetConversion when no row has the
// requested id. Repositories translate their driver's no-rows error into it.
var ErrConversionNotFound = errors.New("conversion not found")

// ConversionNotFound wraps ErrConversionNotFound with the missing id.
func ConversionNotFound(id int64) error {
	return fmt.Errorf("%w: id %d", ErrConversionNotFound, id)
}

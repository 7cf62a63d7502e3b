package fixedpoint

import "errors"

var (
	// ErrZeroPrice indicates a converter was constructed with a zero price.
	ErrZeroPrice = errors.New("fixedpoint: zero price")

	// ErrOverflow indicates an intermediate product exceeds 256 bits.
	ErrOverflow = errors.New("fixedpoint: arithmetic overflow")
)

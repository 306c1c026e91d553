package cli

import "errors"

var (
	errNoValues       = errors.New("at least one value is required")
	errNotAUint32     = errors.New("not a valid uint32")
	errTooFewOperands = errors.New("requires exactly two bitset file operands")
)

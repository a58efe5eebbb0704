package engine

import "errors"

var (
	ErrInvalidRange     = errors.New("invalid range: start is after end")
	ErrEmptyGroup       = errors.New("no records to aggregate")
	ErrUnknownDimension = errors.New("unknown breakdown dimension")
)

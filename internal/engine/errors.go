package engine

import "errors"

// Input validation errors. Every error returned by Pack or FindSmallest
// wraps exactly one of these, so callers can branch with errors.Is.
var (
	ErrInvalidContainer = errors.New("container dimensions must be positive numbers")
	ErrInvalidItem      = errors.New("item dimensions must be positive numbers")
	ErrInvalidQuantity  = errors.New("item quantity must be an integer greater than 0")
	ErrInvalidPadding   = errors.New("invalid padding")
	ErrNoItems          = errors.New("at least one item is required")
	ErrNoCandidates     = errors.New("at least one candidate box is required")
)

// ErrInternalState means the free-space store lost track of a space it
// handed out. It indicates a bug, not bad input.
var ErrInternalState = errors.New("internal packing state error")

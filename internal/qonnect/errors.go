package qonnect

import "errors"

// Every rejected move maps to exactly one of these. They are all
// recoverable: the move is refused and the session state is untouched.
var (
	ErrInvalidLink       = errors.New("invalid link")
	ErrIllegalGeneration = errors.New("cell is not chain-adjacent")
	ErrDuplicateLink     = errors.New("square already occupied")
	ErrMissingLink       = errors.New("no link at square")
	ErrIllegalSwap       = errors.New("illegal swap")
	ErrSessionOver       = errors.New("session already ended")
)

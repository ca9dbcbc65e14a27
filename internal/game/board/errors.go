package board

import (
	"errors"
	"fmt"
)

// ErrInvariant marks internal contract failures. They are unreachable from
// valid inputs and abort the match when detected.
var ErrInvariant = errors.New("board invariant violated")

// InvariantError describes a detected invariant violation.
type InvariantError struct {
	Op     string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvariant, e.Op, e.Detail)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariant
}

// invariant panics with an *InvariantError. The match scheduler recovers it.
func invariant(op, format string, args ...any) {
	panic(&InvariantError{Op: op, Detail: fmt.Sprintf(format, args...)})
}

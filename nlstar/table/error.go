package table

import (
	"errors"
	"fmt"
)

// ErrInvariant is the sentinel wrapped by every InvariantViolation. It
// signals an internal assertion failure in the table's bookkeeping, never
// a caller error.
var ErrInvariant = errors.New("observation table invariant violated")

// InvariantViolation reports which invariant failed and where. It should
// never be seen outside of a bug in this package.
type InvariantViolation struct {
	Op     string
	Detail string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Detail)
}

func (e *InvariantViolation) Unwrap() error {
	return ErrInvariant
}

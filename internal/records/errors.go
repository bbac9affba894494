package records

import (
	"errors"
	"fmt"
)

// ErrMissingField is matched by every MissingFieldError.
var ErrMissingField = errors.New("missing required field")

type MissingFieldError struct {
	Record string
	ID     int64
	Field  string
}

func (e *MissingFieldError) Error() string {
	if e.ID > 0 {
		return fmt.Sprintf("%s %d: %s: %s", e.Record, e.ID, ErrMissingField, e.Field)
	}
	return fmt.Sprintf("%s: %s: %s", e.Record, ErrMissingField, e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

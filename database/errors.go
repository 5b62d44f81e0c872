package database

import "errors"

var (
	// ErrNotFound matches any NotFoundError via errors.Is.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned for owner-gated board operations when the
	// acting user is not the board's owner. A missing board reports the same
	// error so existence in another account is not leaked.
	ErrUnauthorized = errors.New("unauthorized")
)

// NotFoundError reports a missing board, column or task. A column or task
// referenced under the wrong parent is reported identically to a true
// absence.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError reports malformed input along with the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

package moltbook

import (
	"errors"
	"fmt"
)

// NotFoundError is returned when a lookup endpoint answers with a non-success
// payload. Lookups never silently degrade to empty results; only the list
// endpoints treat zero items as a valid outcome.
type NotFoundError struct {
	Kind   string // "agent" or "submolt"
	Name   string
	Reason string // upstream error message, if any
}

func (e *NotFoundError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s %q not found: %s", e.Kind, e.Name, e.Reason)
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

package analyze

import (
	"errors"
	"fmt"
)

// InsufficientDataError is the structured "fewer than 2 snapshots" result.
// Growth and velocity queries return it instead of misleading zeros so callers
// can render a friendly hint; it is control flow, not a crash path.
type InsufficientDataError struct {
	Available int
	Hint      string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("need at least 2 snapshots for growth analysis (have %d)", e.Available)
}

// IsInsufficientData reports whether err is an InsufficientDataError.
func IsInsufficientData(err error) bool {
	var ide *InsufficientDataError
	return errors.As(err, &ide)
}

func insufficient(available int) *InsufficientDataError {
	return &InsufficientDataError{
		Available: available,
		Hint:      "take snapshots periodically with `moltscope snapshot` to collect data",
	}
}

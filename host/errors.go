package host

import (
	"errors"
	"fmt"
)

// ErrMissingCallback is wrapped by every ContractError.
var ErrMissingCallback = errors.New("missing host callback")

// ContractError reports a required host callback that was nil at the point
// it was first needed. It is raised with panic: it is a host programming
// error, not a runtime condition.
type ContractError struct {
	// Callback is the Source field name.
	Callback string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("host contract: %s: %v", e.Callback, ErrMissingCallback)
}

func (e *ContractError) Unwrap() error { return ErrMissingCallback }

func missing(name string) *ContractError { return &ContractError{Callback: name} }

package messenger

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingExtension matches every *CapabilityError.
	ErrMissingExtension = errors.New("messenger: required extension not enabled")
	// ErrClosed is returned by Close on a subscription that is already torn down.
	ErrClosed = errors.New("messenger: subscription already closed")
	// ErrNilCallback is returned by New when no callback is given.
	ErrNilCallback = errors.New("messenger: nil callback")
	// ErrNilContext is returned by New when no context is given.
	ErrNilContext = errors.New("messenger: nil context")
)

// CapabilityError reports that the context was created without an extension the
// messenger needs. No native call is made when it is returned.
type CapabilityError struct {
	Extension string
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("the `%s` extension was not enabled", e.Extension)
}

// Is makes errors.Is(err, ErrMissingExtension) hold for any CapabilityError.
func (e *CapabilityError) Is(target error) bool {
	return target == ErrMissingExtension
}

package contracts

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTeam is returned by encoders for names outside their vocabulary
	ErrUnknownTeam = errors.New("unknown team")

	// ErrUnknownFormation is returned when no formation row matches
	ErrUnknownFormation = errors.New("unknown formation")
)

// ValidationError reports a malformed request field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// SignalError reports that a signal provider could not produce an outcome.
// The whole prediction fails; no partial vote is returned.
type SignalError struct {
	Signal SignalName
	Err    error
}

func (e *SignalError) Error() string {
	return fmt.Sprintf("signal %s failed: %v", e.Signal, e.Err)
}

func (e *SignalError) Unwrap() error {
	return e.Err
}

package wheel

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned for invalid wheel configuration.
	ErrConfiguration = errors.New("wheel: invalid configuration")
	// ErrState is returned when an operation is not allowed in the current phase.
	ErrState = errors.New("wheel: invalid state")
	// ErrClosed reports use of a closed controller.
	ErrClosed = fmt.Errorf("%w: controller closed", ErrState)
)

func configErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

func stateErr(op string, phase Phase) error {
	return fmt.Errorf("%w: %s not allowed while %s", ErrState, op, phase)
}

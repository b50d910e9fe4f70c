package universe

import "errors"

var (
	//ErrInvalidPosition is returned for coordinates outside [0, size)
	ErrInvalidPosition = errors.New("invalid position")

	//ErrInvalidStateTransition is returned when an operation is not allowed in the current running state
	ErrInvalidStateTransition = errors.New("invalid state transition")

	//ErrInvalidSize is returned for grid sizes below 1
	ErrInvalidSize = errors.New("invalid grid size")

	//ErrInvalidGenerations is returned for a negative number of generations to compare
	ErrInvalidGenerations = errors.New("invalid number of generations")

	ErrUnknownEngine   = errors.New("unknown engine")
	ErrUnknownTemplate = errors.New("unknown template")
)

package errors

import "errors"

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrUnknownJobType     = errors.New("unknown job type")
	ErrUnknownStatus      = errors.New("unknown status")
	ErrUnknownLookupTable = errors.New("unknown lookup table")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
)

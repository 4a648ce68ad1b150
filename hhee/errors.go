package hhee

import "errors"

var (
	// ErrInvalidTransition signals a mutator or state-machine operation whose
	// precondition does not hold for the day's current state.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrValidation signals a submission-time rule violation for a single day,
	// such as a pending-correction flag with no reason. The day is dropped
	// from the batch; the batch itself proceeds.
	ErrValidation = errors.New("validation failed")

	// ErrNothingToSubmit is reported when no day in the loaded period has an
	// enabled slot, a correction flag, or a revalidation. No network call is
	// made in that case.
	ErrNothingToSubmit = errors.New("no days with changes to submit")

	// ErrEmployeeNotFound is returned by the attendance provider when the
	// requested identifier is unknown.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrInvalidRange is returned when a period query has start after end.
	ErrInvalidRange = errors.New("start date after end date")

	// ErrUnknownDate is returned when an edit references a date outside the
	// loaded period.
	ErrUnknownDate = errors.New("date not in loaded period")
)

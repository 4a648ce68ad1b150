package hhee

import "fmt"

// NextState applies the day-level state machine to a submission record. It is
// driven only by successful batch submissions: a correction flag moves the
// day to pending (the reason must be present), any decided category validates
// it, and a clean record over a pending day re-opens it. Approvals are
// additive; nothing here ever reduces an already persisted amount.
func NextState(current DayState, rec SubmissionRecord) (DayState, error) {
	if rec.FlaggedForCorrection {
		if rec.Reason == "" {
			return current, fmt.Errorf("%w: day %s flagged for correction without a reason", ErrValidation, rec.Date)
		}
		if current == StateValidated {
			return current, fmt.Errorf("%w: day %s is already validated", ErrValidation, rec.Date)
		}
		return StatePendingCorrection, nil
	}

	if rec.Decided() {
		return StateValidated, nil
	}

	// A clean, undecided record only ever reaches the store after a
	// revalidation; it confirms the day back to not-saved.
	return StateNotSaved, nil
}

package hhee

// Eligibility says which category slots of a day may be offered for editing.
// It is the single place the gating rules live; both the draft builder and
// the mutator consult it.
type Eligibility struct {
	Before bool
	After  bool
	Rest   bool
}

// For returns the eligibility of a category.
func (e Eligibility) For(c Category) bool {
	switch c {
	case CategoryBefore:
		return e.Before
	case CategoryAfter:
		return e.After
	case CategoryRest:
		return e.Rest
	}
	return false
}

// Any reports whether at least one slot is editable.
func (e Eligibility) Any() bool {
	return e.Before || e.After || e.Rest
}

// EligibilityFor computes the slot gating for a day in a given effective
// state. A category is editable only when its calculated candidate is
// positive, GeoVictoria has not already authorized it, and no prior approval
// through the portal settled it. On a rest day an external authorization in
// either shift category settles the whole day. A day pending correction
// offers nothing until re-validated.
func EligibilityFor(d *DayRecord, state DayState) Eligibility {
	if state == StatePendingCorrection {
		return Eligibility{}
	}

	var e Eligibility
	if d.IsRestDay() {
		e.Rest = d.CalculatedRest > 0 && d.AuthorizedBefore+d.AuthorizedAfter == 0
		if state == StateValidated && d.ApprovedRest > 0 {
			e.Rest = false
		}
		return e
	}

	e.Before = d.CalculatedBefore > 0 && d.AuthorizedBefore == 0
	e.After = d.CalculatedAfter > 0 && d.AuthorizedAfter == 0
	if state == StateValidated {
		// Incremental approval: categories settled in a prior session stay
		// closed, the rest remain open.
		if d.ApprovedBefore > 0 {
			e.Before = false
		}
		if d.ApprovedAfter > 0 {
			e.After = false
		}
	}
	return e
}

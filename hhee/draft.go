package hhee

import "fmt"

// Slot is one togglable category of a draft. Value is meaningful only while
// Enabled; disabling resets it to the day's calculated candidate.
type Slot struct {
	Enabled bool    `json:"habilitado"`
	Value   float64 `json:"valor"`
}

// Draft is the editable validation state of one day. It is owned by the
// review session and discarded on a fresh query or a successful submission.
type Draft struct {
	day *DayRecord

	slots map[Category]*Slot

	PendingCorrection bool   `json:"pendiente"`
	CorrectionReason  string `json:"motivo"`

	// Revalidated is set by MarkRevalidated on a pending-correction day and
	// makes the draft behave as if the day were not yet saved. The persisted
	// state only changes on the next successful submission.
	Revalidated bool `json:"revalidado"`
}

// NewDraft builds the initial draft for a day: every slot disabled with its
// value at the calculated ceiling, correction flag seeded from the persisted
// state.
func NewDraft(d *DayRecord) *Draft {
	dr := &Draft{
		day: d,
		slots: map[Category]*Slot{
			CategoryBefore: {Value: d.Calculated(CategoryBefore)},
			CategoryAfter:  {Value: d.Calculated(CategoryAfter)},
			CategoryRest:   {Value: d.Calculated(CategoryRest)},
		},
	}
	if d.State == StatePendingCorrection {
		dr.PendingCorrection = true
		dr.CorrectionReason = d.CorrectionReason
	}
	return dr
}

// Day returns the record the draft was built from.
func (dr *Draft) Day() *DayRecord { return dr.day }

// Slot returns a copy of the named slot.
func (dr *Draft) Slot(c Category) Slot {
	if s, ok := dr.slots[c]; ok {
		return *s
	}
	return Slot{}
}

// EffectiveState is the state the draft behaves as: a revalidated day acts as
// not-saved even though the persisted state is still pending correction.
func (dr *Draft) EffectiveState() DayState {
	if dr.Revalidated && dr.day.State == StatePendingCorrection {
		return StateNotSaved
	}
	return dr.day.State
}

// Eligibility returns the current slot gating for the draft.
func (dr *Draft) Eligibility() Eligibility {
	return EligibilityFor(dr.day, dr.EffectiveState())
}

// SetEnabled toggles a category slot. Disabling discards any edited value and
// restores the calculated candidate.
func (dr *Draft) SetEnabled(c Category, enabled bool) error {
	slot, ok := dr.slots[c]
	if !ok {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidTransition, c)
	}
	if dr.PendingCorrection {
		return fmt.Errorf("%w: day %s is flagged for correction", ErrInvalidTransition, dr.day.Date)
	}
	if !dr.Eligibility().For(c) {
		return fmt.Errorf("%w: category %q is not editable on %s", ErrInvalidTransition, c, dr.day.Date)
	}
	slot.Enabled = enabled
	if !enabled {
		slot.Value = dr.day.Calculated(c)
	}
	return nil
}

// SetValue edits an enabled slot. Out-of-range input is clamped to
// [0, calculated candidate], never rejected.
func (dr *Draft) SetValue(c Category, value float64) error {
	slot, ok := dr.slots[c]
	if !ok {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidTransition, c)
	}
	if dr.PendingCorrection {
		return fmt.Errorf("%w: day %s is flagged for correction", ErrInvalidTransition, dr.day.Date)
	}
	if !slot.Enabled {
		return fmt.Errorf("%w: category %q is not enabled on %s", ErrInvalidTransition, c, dr.day.Date)
	}
	if value < 0 {
		value = 0
	}
	if max := dr.day.Calculated(c); value > max {
		value = max
	}
	slot.Value = value
	return nil
}

// MarkPendingCorrection flags or unflags the day for correction. The reason
// is only required at submission time. Unflagging clears the reason.
func (dr *Draft) MarkPendingCorrection(pending bool, reason string) error {
	if dr.EffectiveState() == StateValidated {
		return fmt.Errorf("%w: day %s is already validated", ErrInvalidTransition, dr.day.Date)
	}
	dr.PendingCorrection = pending
	if pending {
		dr.CorrectionReason = reason
	} else {
		dr.CorrectionReason = ""
	}
	return nil
}

// MarkRevalidated re-opens a pending-correction day on the client side: all
// slots reset to calculated candidates and disabled, the correction flag and
// reason clear, and the draft behaves as not-saved until submitted.
func (dr *Draft) MarkRevalidated() error {
	if dr.day.State != StatePendingCorrection {
		return fmt.Errorf("%w: day %s is not pending correction", ErrInvalidTransition, dr.day.Date)
	}
	for c, slot := range dr.slots {
		slot.Enabled = false
		slot.Value = dr.day.Calculated(c)
	}
	dr.PendingCorrection = false
	dr.CorrectionReason = ""
	dr.Revalidated = true
	return nil
}

// Dirty reports whether the draft would contribute a submission record.
func (dr *Draft) Dirty() bool {
	for _, slot := range dr.slots {
		if slot.Enabled {
			return true
		}
	}
	return dr.PendingCorrection || dr.Revalidated
}

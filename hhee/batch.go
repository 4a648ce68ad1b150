package hhee

import "fmt"

// SubmissionRecord is the wire shape of one day's decision, sent to the
// persistence collaborator.
type SubmissionRecord struct {
	RUT                  string  `json:"rut"`
	Date                 string  `json:"fecha"` // 2006-01-02
	EmployeeName         string  `json:"nombre_apellido"`
	Campaign             string  `json:"campana"`
	FlaggedForCorrection bool    `json:"pendiente_correccion"`
	Reason               string  `json:"motivo"`
	ApprovedBefore       float64 `json:"hhee_aprobadas_inicio"`
	ApprovedAfter        float64 `json:"hhee_aprobadas_fin"`
	ApprovedRest         float64 `json:"hhee_aprobadas_descanso"`

	// decided marks a record that carries at least one explicitly enabled
	// category. An enabled-but-zero approval is a real decision, but it is
	// indistinguishable from "no change" on the wire, so the assembler keeps
	// the distinction here.
	decided bool
}

// Decided reports whether the record validates its day: an explicitly enabled
// category, or any positive amount.
func (r SubmissionRecord) Decided() bool {
	return r.decided || r.ApprovedBefore > 0 || r.ApprovedAfter > 0 || r.ApprovedRest > 0
}

// DayIssue is a per-day submission problem. The day is excluded from the
// batch; the rest of the batch proceeds.
type DayIssue struct {
	Date string `json:"fecha"`
	Err  error  `json:"-"`
}

// Message renders the issue for API responses.
func (i DayIssue) Message() string {
	return fmt.Sprintf("%s: %v", i.Date, i.Err)
}

// AssembleBatch walks the session's drafts in period order and produces the
// minimal submission payload: only days with an enabled slot, a correction
// flag, or a revalidation. A flagged day with an empty reason is reported as
// an issue and skipped. When nothing qualifies it returns ErrNothingToSubmit
// so no network call is made for a no-op.
func (s *Session) AssembleBatch() ([]SubmissionRecord, []DayIssue, error) {
	var records []SubmissionRecord
	var issues []DayIssue

	for _, day := range s.Days {
		draft, ok := s.drafts[day.Date]
		if !ok || !draft.Dirty() {
			continue
		}

		if draft.PendingCorrection && draft.CorrectionReason == "" {
			issues = append(issues, DayIssue{
				Date: day.Date,
				Err:  fmt.Errorf("%w: correction flag requires a reason", ErrValidation),
			})
			continue
		}

		rec := SubmissionRecord{
			RUT:                  s.RUT,
			Date:                 day.Date,
			EmployeeName:         day.EmployeeName,
			Campaign:             day.Campaign,
			FlaggedForCorrection: draft.PendingCorrection,
			Reason:               draft.CorrectionReason,
		}
		for _, c := range Categories {
			slot := draft.Slot(c)
			if !slot.Enabled {
				continue
			}
			rec.decided = true
			switch c {
			case CategoryBefore:
				rec.ApprovedBefore = slot.Value
			case CategoryAfter:
				rec.ApprovedAfter = slot.Value
			case CategoryRest:
				rec.ApprovedRest = slot.Value
			}
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, issues, ErrNothingToSubmit
	}
	return records, issues, nil
}

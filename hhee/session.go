package hhee

import "fmt"

// PeriodResult is what a period query returns: the employee's display data
// and one merged record per calendar day.
type PeriodResult struct {
	RUT          string       `json:"rut"`
	EmployeeName string       `json:"nombre_agente"`
	Days         []*DayRecord `json:"datos_periodo"`
}

// Session owns the drafts for one loaded period. A fresh query replaces the
// whole session, discarding unsaved edits (last query wins, no merge).
type Session struct {
	RUT          string
	EmployeeName string
	Days         []*DayRecord

	drafts map[string]*Draft
}

// NewSession builds a session from a period result, with one initial draft
// per day.
func NewSession(res *PeriodResult) *Session {
	s := &Session{
		RUT:          res.RUT,
		EmployeeName: res.EmployeeName,
		Days:         res.Days,
		drafts:       make(map[string]*Draft, len(res.Days)),
	}
	for _, day := range res.Days {
		s.drafts[day.Date] = NewDraft(day)
	}
	return s
}

// Draft returns the editable draft for a date in the loaded period.
func (s *Session) Draft(date string) (*Draft, error) {
	draft, ok := s.drafts[date]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDate, date)
	}
	return draft, nil
}

// ResetDraft discards a day's edits and rebuilds its draft from the record.
func (s *Session) ResetDraft(date string) error {
	for _, day := range s.Days {
		if day.Date == date {
			s.drafts[date] = NewDraft(day)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownDate, date)
}

package hhee

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AttendanceProvider is the external time/attendance and payroll collaborator.
// It produces the raw per-day data: theoretical shifts, clock marks, overtime
// candidates and externally authorized amounts.
type AttendanceProvider interface {
	EmployeePeriod(ctx context.Context, rut string, start, end time.Time) (*PeriodResult, error)
}

// SavedValidation is one persisted validation row for an employee day, as
// returned by the persistence collaborator. Category is empty for rows that
// only carry a correction flag.
type SavedValidation struct {
	RUT      string
	Date     string
	Category Category
	Hours    float64
	State    DayState
	Reason   string
}

// PendingDay is one day currently flagged for correction, across employees.
type PendingDay struct {
	RUT          string `json:"rut"`
	EmployeeName string `json:"nombre_apellido"`
	Date         string `json:"fecha"`
	Reason       string `json:"motivo"`
}

// ValidationStore is the persistence collaborator for decisions made through
// the portal.
type ValidationStore interface {
	SavedValidations(ctx context.Context, rut string, start, end time.Time) ([]SavedValidation, error)
	PendingCorrections(ctx context.Context) ([]PendingDay, error)
	SaveBatch(ctx context.Context, batchID string, records []SubmissionRecord) error
}

// SubmitResult summarizes a batch submission.
type SubmitResult struct {
	BatchID string     `json:"batch_id"`
	Saved   int        `json:"guardados"`
	Issues  []DayIssue `json:"-"`
	Message string     `json:"message"`
}

// Service orchestrates the reconciliation workflow. It is synchronous; its
// only suspension points are the three collaborator calls.
type Service struct {
	attendance AttendanceProvider
	store      ValidationStore
}

// NewService wires the engine to its collaborators.
func NewService(attendance AttendanceProvider, store ValidationStore) *Service {
	return &Service{attendance: attendance, store: store}
}

// LoadPeriod queries the attendance provider for an employee period, merges
// in previously persisted validations and returns a fresh review session.
// Any prior session for the employee is simply abandoned by the caller.
func (s *Service) LoadPeriod(ctx context.Context, rut string, start, end time.Time) (*Session, error) {
	if start.After(end) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange,
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	res, err := s.attendance.EmployeePeriod(ctx, rut, start, end)
	if err != nil {
		return nil, err
	}

	saved, err := s.store.SavedValidations(ctx, rut, start, end)
	if err != nil {
		return nil, fmt.Errorf("loading saved validations: %w", err)
	}
	mergeSaved(res.Days, saved)

	res.RUT = rut
	return NewSession(res), nil
}

// mergeSaved folds persisted validation rows into the provider's day records:
// approved amounts per category, and the day-level state. Any pending row
// makes the whole day pending; otherwise any validated row validates it.
func mergeSaved(days []*DayRecord, saved []SavedValidation) {
	byDate := make(map[string][]SavedValidation)
	for _, v := range saved {
		byDate[v.Date] = append(byDate[v.Date], v)
	}

	for _, day := range days {
		rows := byDate[day.Date]
		if len(rows) == 0 {
			day.State = StateNotSaved
			continue
		}

		state := StateNotSaved
		for _, v := range rows {
			switch v.Category {
			case CategoryBefore:
				day.ApprovedBefore = v.Hours
			case CategoryAfter:
				day.ApprovedAfter = v.Hours
			case CategoryRest:
				day.ApprovedRest = v.Hours
			}
			switch v.State {
			case StatePendingCorrection:
				state = StatePendingCorrection
				day.CorrectionReason = v.Reason
			case StateValidated:
				if state != StatePendingCorrection {
					state = StateValidated
				}
			}
		}
		day.State = state
	}
}

// PendingCorrections returns every day flagged for correction across all
// employees, for the remediation workflow.
func (s *Service) PendingCorrections(ctx context.Context) ([]PendingDay, error) {
	return s.store.PendingCorrections(ctx)
}

// Submit assembles the session's batch and persists it. Per-day validation
// problems are returned as issues without aborting the batch; an empty batch
// returns ErrNothingToSubmit before any network call.
func (s *Service) Submit(ctx context.Context, session *Session) (*SubmitResult, error) {
	records, issues, err := session.AssembleBatch()
	if err != nil {
		return &SubmitResult{Issues: issues}, err
	}

	batchID := uuid.NewString()
	if err := s.store.SaveBatch(ctx, batchID, records); err != nil {
		return nil, fmt.Errorf("saving batch %s: %w", batchID, err)
	}

	return &SubmitResult{
		BatchID: batchID,
		Saved:   len(records),
		Issues:  issues,
		Message: fmt.Sprintf("Se guardaron %d día(s) correctamente.", len(records)),
	}, nil
}

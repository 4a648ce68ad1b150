package hhee

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendance struct {
	result *PeriodResult
	err    error
}

func (f *fakeAttendance) EmployeePeriod(_ context.Context, _ string, _, _ time.Time) (*PeriodResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// fakeStore keeps validation rows in memory and applies the same state
// transitions the real store does.
type fakeStore struct {
	saved   []SavedValidation
	pending []PendingDay
	batches map[string][]SubmissionRecord
	err     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{batches: make(map[string][]SubmissionRecord)}
}

func (f *fakeStore) SavedValidations(_ context.Context, rut string, _, _ time.Time) ([]SavedValidation, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []SavedValidation
	for _, v := range f.saved {
		if v.RUT == rut {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeStore) PendingCorrections(_ context.Context) ([]PendingDay, error) {
	return f.pending, f.err
}

func (f *fakeStore) SaveBatch(_ context.Context, batchID string, records []SubmissionRecord) error {
	if f.err != nil {
		return f.err
	}
	f.batches[batchID] = records
	return nil
}

func (f *fakeStore) savedBatch(t *testing.T) []SubmissionRecord {
	t.Helper()
	require.Len(t, f.batches, 1)
	for _, records := range f.batches {
		return records
	}
	return nil
}

func periodOf(days ...*DayRecord) *fakeAttendance {
	return &fakeAttendance{result: &PeriodResult{
		EmployeeName: "Ana Rojas",
		Days:         days,
	}}
}

var (
	periodStart = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	periodEnd   = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
)

func TestLoadPeriodRejectsInvertedRange(t *testing.T) {
	svc := NewService(periodOf(), newFakeStore())
	_, err := svc.LoadPeriod(context.Background(), "12345678-9", periodEnd, periodStart)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestLoadPeriodMergesSavedValidations(t *testing.T) {
	day := shiftDay(0.5, 1.0)
	store := newFakeStore()
	store.saved = []SavedValidation{
		{RUT: "12345678-9", Date: day.Date, Category: CategoryBefore, Hours: 0.5, State: StateValidated},
	}

	svc := NewService(periodOf(day), store)
	session, err := svc.LoadPeriod(context.Background(), "12345678-9", periodStart, periodEnd)
	require.NoError(t, err)

	merged := session.Days[0]
	assert.Equal(t, StateValidated, merged.State)
	assert.Equal(t, 0.5, merged.ApprovedBefore)

	// Only the untouched category remains editable.
	draft, err := session.Draft(day.Date)
	require.NoError(t, err)
	assert.Equal(t, Eligibility{After: true}, draft.Eligibility())
}

func TestLoadPeriodPendingRowDominates(t *testing.T) {
	day := shiftDay(0.5, 1.0)
	store := newFakeStore()
	store.saved = []SavedValidation{
		{RUT: "12345678-9", Date: day.Date, Category: CategoryBefore, Hours: 0.5, State: StateValidated},
		{RUT: "12345678-9", Date: day.Date, State: StatePendingCorrection, Reason: "Pendiente de corrección de marcas"},
	}

	svc := NewService(periodOf(day), store)
	session, err := svc.LoadPeriod(context.Background(), "12345678-9", periodStart, periodEnd)
	require.NoError(t, err)

	assert.Equal(t, StatePendingCorrection, session.Days[0].State)
	assert.Equal(t, "Pendiente de corrección de marcas", session.Days[0].CorrectionReason)
}

// Scenario A: both categories eligible, approved in full, day validates.
func TestSubmitApprovesBothCategories(t *testing.T) {
	day := shiftDay(0.5, 1.0)
	store := newFakeStore()
	svc := NewService(periodOf(day), store)

	session, err := svc.LoadPeriod(context.Background(), "12345678-9", periodStart, periodEnd)
	require.NoError(t, err)

	draft, _ := session.Draft(day.Date)
	require.NoError(t, draft.SetEnabled(CategoryBefore, true))
	require.NoError(t, draft.SetValue(CategoryBefore, 0.5))
	require.NoError(t, draft.SetEnabled(CategoryAfter, true))
	require.NoError(t, draft.SetValue(CategoryAfter, 1.0))

	res, err := svc.Submit(context.Background(), session)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Saved)
	assert.NotEmpty(t, res.BatchID)

	records := store.savedBatch(t)
	require.Len(t, records, 1)
	assert.Equal(t, 0.5, records[0].ApprovedBefore)
	assert.Equal(t, 1.0, records[0].ApprovedAfter)

	next, err := NextState(StateNotSaved, records[0])
	require.NoError(t, err)
	assert.Equal(t, StateValidated, next)
}

// Scenario B: an externally authorized category is never offered.
func TestExternallyAuthorizedCategoryStaysClosed(t *testing.T) {
	day := shiftDay(0.5, 1.0)
	day.AuthorizedAfter = 1.0

	svc := NewService(periodOf(day), newFakeStore())
	session, err := svc.LoadPeriod(context.Background(), "12345678-9", periodStart, periodEnd)
	require.NoError(t, err)

	draft, _ := session.Draft(day.Date)
	assert.Equal(t, Eligibility{Before: true}, draft.Eligibility())
	assert.ErrorIs(t, draft.SetEnabled(CategoryAfter, true), ErrInvalidTransition)
}

// Scenario C: rest day capped at its calculated total.
func TestRestDayCappedAtCalculatedTotal(t *testing.T) {
	day := restDay(2.0)
	svc := NewService(periodOf(day), newFakeStore())
	session, err := svc.LoadPeriod(context.Background(), "12345678-9", periodStart, periodEnd)
	require.NoError(t, err)

	draft, _ := session.Draft(day.Date)
	assert.Equal(t, Eligibility{Rest: true}, draft.Eligibility())

	require.NoError(t, draft.SetEnabled(CategoryRest, true))
	require.NoError(t, draft.SetValue(CategoryRest, 5.0))
	assert.Equal(t, 2.0, draft.Slot(CategoryRest).Value)
}

// Scenario D: flag for correction, then revalidate back to an editable day.
func TestCorrectionRoundTrip(t *testing.T) {
	day := shiftDay(0.5, 1.0)
	store := newFakeStore()
	svc := NewService(periodOf(day), store)

	session, err := svc.LoadPeriod(context.Background(), "12345678-9", periodStart, periodEnd)
	require.NoError(t, err)

	draft, _ := session.Draft(day.Date)
	require.NoError(t, draft.MarkPendingCorrection(true, "Cambio de turno"))

	res, err := svc.Submit(context.Background(), session)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Saved)

	records := store.savedBatch(t)
	next, err := NextState(StateNotSaved, records[0])
	require.NoError(t, err)
	require.Equal(t, StatePendingCorrection, next)

	// A fresh query would now return the day as pending; revalidating it
	// yields an editable not-saved draft with everything reset.
	day.State = StatePendingCorrection
	day.CorrectionReason = "Cambio de turno"
	reopened := NewDraft(day)
	require.NoError(t, reopened.MarkRevalidated())
	assert.Equal(t, StateNotSaved, reopened.EffectiveState())
	assert.True(t, reopened.Eligibility().Any())
	for _, c := range Categories {
		assert.False(t, reopened.Slot(c).Enabled)
		assert.Equal(t, day.Calculated(c), reopened.Slot(c).Value)
	}
}

func TestSubmitEmptySessionMakesNoCall(t *testing.T) {
	day := shiftDay(0.5, 1.0)
	store := newFakeStore()
	svc := NewService(periodOf(day), store)

	session, err := svc.LoadPeriod(context.Background(), "12345678-9", periodStart, periodEnd)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), session)
	assert.ErrorIs(t, err, ErrNothingToSubmit)
	assert.Empty(t, store.batches, "empty batch must not reach the store")
}

func TestSubmitReportsPerDayIssues(t *testing.T) {
	bad := shiftDay(0.5, 1.0)
	good := shiftDay(0.5, 1.0)
	good.Date = "2025-06-11"

	store := newFakeStore()
	svc := NewService(periodOf(bad, good), store)
	session, err := svc.LoadPeriod(context.Background(), "12345678-9", periodStart, periodEnd)
	require.NoError(t, err)

	d1, _ := session.Draft(bad.Date)
	require.NoError(t, d1.MarkPendingCorrection(true, ""))
	d2, _ := session.Draft(good.Date)
	require.NoError(t, d2.SetEnabled(CategoryBefore, true))

	res, err := svc.Submit(context.Background(), session)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Saved)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, bad.Date, res.Issues[0].Date)
}

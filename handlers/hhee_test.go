package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Charlydk/Portal-GTR-sub000/hhee"
)

func testSession(days ...*hhee.DayRecord) *hhee.Session {
	return hhee.NewSession(&hhee.PeriodResult{
		RUT:          "12345678-9",
		EmployeeName: "Ana Rojas",
		Days:         days,
	})
}

func testDay() *hhee.DayRecord {
	return &hhee.DayRecord{
		Date:             "2025-06-10",
		TheoreticalStart: "09:00",
		TheoreticalEnd:   "18:00",
		ClockIn:          "08:30",
		ClockOut:         "19:00",
		CalculatedBefore: 0.5,
		CalculatedAfter:  1.0,
		State:            hhee.StateNotSaved,
	}
}

func TestApplyEditEnablesAndClampsValues(t *testing.T) {
	session := testSession(testDay())

	err := applyEdit(session, dayEdit{
		Date:   "2025-06-10",
		Before: &slotEdit{Enabled: true, Value: "00:30"},
		After:  &slotEdit{Enabled: true, Value: "02:30"}, // above the 1.0h ceiling
	})
	require.NoError(t, err)

	draft, err := session.Draft("2025-06-10")
	require.NoError(t, err)
	assert.Equal(t, 0.5, draft.Slot(hhee.CategoryBefore).Value)
	assert.Equal(t, 1.0, draft.Slot(hhee.CategoryAfter).Value, "out-of-range input clamps silently")
}

func TestApplyEditPendingFlag(t *testing.T) {
	session := testSession(testDay())

	err := applyEdit(session, dayEdit{
		Date:    "2025-06-10",
		Pending: true,
		Reason:  "Pendiente de cambio de turno",
	})
	require.NoError(t, err)

	draft, _ := session.Draft("2025-06-10")
	assert.True(t, draft.PendingCorrection)
	assert.Equal(t, "Pendiente de cambio de turno", draft.CorrectionReason)
}

func TestApplyEditRevalidateThenApprove(t *testing.T) {
	day := testDay()
	day.State = hhee.StatePendingCorrection
	day.CorrectionReason = "Pendiente de corrección de marcas"
	session := testSession(day)

	err := applyEdit(session, dayEdit{
		Date:        "2025-06-10",
		Revalidated: true,
		Before:      &slotEdit{Enabled: true, Value: "00:15"},
	})
	require.NoError(t, err)

	draft, _ := session.Draft("2025-06-10")
	assert.True(t, draft.Revalidated)
	assert.False(t, draft.PendingCorrection)
	assert.Equal(t, 0.25, draft.Slot(hhee.CategoryBefore).Value)
}

func TestApplyEditUnknownDate(t *testing.T) {
	session := testSession(testDay())
	err := applyEdit(session, dayEdit{Date: "2025-07-01"})
	assert.ErrorIs(t, err, hhee.ErrUnknownDate)
}

func TestApplyEditBadTimeValue(t *testing.T) {
	session := testSession(testDay())
	err := applyEdit(session, dayEdit{
		Date:   "2025-06-10",
		Before: &slotEdit{Enabled: true, Value: "media hora"},
	})
	assert.Error(t, err)
}

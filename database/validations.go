package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Charlydk/Portal-GTR-sub000/hhee"
	"github.com/Charlydk/Portal-GTR-sub000/models"
)

const dateLayout = "2006-01-02"

// ValidationStore persists HHEE decisions in postgres. It implements
// hhee.ValidationStore: one row per (rut, date, category), plus a flag row
// with an empty category when a day is sent back for correction.
type ValidationStore struct {
	db        *gorm.DB
	analystID uint
}

func NewValidationStore(db *gorm.DB) *ValidationStore {
	return &ValidationStore{db: db}
}

// ForAnalyst returns a store that stamps saved rows with the reviewer's id.
func (s *ValidationStore) ForAnalyst(id uint) *ValidationStore {
	return &ValidationStore{db: s.db, analystID: id}
}

func (s *ValidationStore) SavedValidations(ctx context.Context, rut string, start, end time.Time) ([]hhee.SavedValidation, error) {
	var rows []models.HHEEValidation
	err := s.db.WithContext(ctx).
		Where("rut = ? AND date BETWEEN ? AND ?", rut, start, end).
		Order("date asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]hhee.SavedValidation, 0, len(rows))
	for _, row := range rows {
		out = append(out, hhee.SavedValidation{
			RUT:      row.RUT,
			Date:     row.Date.Format(dateLayout),
			Category: hhee.Category(row.Category),
			Hours:    row.Hours,
			State:    hhee.DayState(row.State),
			Reason:   row.Reason,
		})
	}
	return out, nil
}

func (s *ValidationStore) PendingCorrections(ctx context.Context) ([]hhee.PendingDay, error) {
	var rows []models.HHEEValidation
	err := s.db.WithContext(ctx).
		Where("state = ?", string(hhee.StatePendingCorrection)).
		Order("date asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]hhee.PendingDay, 0, len(rows))
	for _, row := range rows {
		out = append(out, hhee.PendingDay{
			RUT:          row.RUT,
			EmployeeName: row.EmployeeName,
			Date:         row.Date.Format(dateLayout),
			Reason:       row.Reason,
		})
	}
	return out, nil
}

// SaveBatch applies one submission atomically. Each record moves its day
// through the state machine; a record whose transition fails is skipped, the
// rest of the batch still commits.
func (s *ValidationStore) SaveBatch(ctx context.Context, batchID string, records []hhee.SubmissionRecord) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, rec := range records {
			if err := s.saveRecord(tx, batchID, rec); err != nil {
				log.Printf("batch %s: skipping day %s: %v", batchID, rec.Date, err)
			}
		}
		return nil
	})
}

func (s *ValidationStore) saveRecord(tx *gorm.DB, batchID string, rec hhee.SubmissionRecord) error {
	date, err := time.Parse(dateLayout, rec.Date)
	if err != nil {
		return fmt.Errorf("bad date %q: %w", rec.Date, err)
	}

	var existing []models.HHEEValidation
	if err := tx.Where("rut = ? AND date = ?", rec.RUT, date).Find(&existing).Error; err != nil {
		return err
	}

	next, err := hhee.NextState(dayStateOf(existing), rec)
	if err != nil {
		return err
	}

	switch next {
	case hhee.StatePendingCorrection:
		return s.upsert(tx, batchID, rec, date, "", 0, hhee.StatePendingCorrection)

	case hhee.StateNotSaved:
		// Revalidated day: drop the flag row, keep any prior approvals.
		return tx.Where("rut = ? AND date = ? AND state = ?",
			rec.RUT, date, string(hhee.StatePendingCorrection)).
			Delete(&models.HHEEValidation{}).Error

	case hhee.StateValidated:
		// Clear a leftover flag row before writing approvals.
		if err := tx.Where("rut = ? AND date = ? AND state = ?",
			rec.RUT, date, string(hhee.StatePendingCorrection)).
			Delete(&models.HHEEValidation{}).Error; err != nil {
			return err
		}
		wrote := false
		for c, hours := range map[hhee.Category]float64{
			hhee.CategoryBefore: rec.ApprovedBefore,
			hhee.CategoryAfter:  rec.ApprovedAfter,
			hhee.CategoryRest:   rec.ApprovedRest,
		} {
			if hours <= 0 {
				continue
			}
			if err := s.upsert(tx, batchID, rec, date, string(c), hours, hhee.StateValidated); err != nil {
				return err
			}
			wrote = true
		}
		if !wrote {
			// Explicit approve-zero decision still validates the day.
			return s.upsert(tx, batchID, rec, date, "", 0, hhee.StateValidated)
		}
		return nil
	}
	return nil
}

func (s *ValidationStore) upsert(tx *gorm.DB, batchID string, rec hhee.SubmissionRecord, date time.Time, category string, hours float64, state hhee.DayState) error {
	row := models.HHEEValidation{
		RUT:          rec.RUT,
		Date:         date,
		Category:     category,
		Hours:        hours,
		State:        string(state),
		Reason:       rec.Reason,
		EmployeeName: rec.EmployeeName,
		Campaign:     rec.Campaign,
		BatchID:      batchID,
		AnalystID:    s.analystID,
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "rut"}, {Name: "date"}, {Name: "category"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"hours", "state", "reason", "batch_id", "analyst_id", "updated_at", "deleted_at",
		}),
	}).Create(&row).Error
}

// dayStateOf derives the persisted day-level state from its rows: any pending
// row dominates, otherwise any validated row.
func dayStateOf(rows []models.HHEEValidation) hhee.DayState {
	state := hhee.StateNotSaved
	for _, row := range rows {
		switch hhee.DayState(row.State) {
		case hhee.StatePendingCorrection:
			return hhee.StatePendingCorrection
		case hhee.StateValidated:
			state = hhee.StateValidated
		}
	}
	return state
}

// ValidationsInRange lists persisted validations for the export report.
func (s *ValidationStore) ValidationsInRange(ctx context.Context, start, end time.Time) ([]models.HHEEValidation, error) {
	var rows []models.HHEEValidation
	err := s.db.WithContext(ctx).
		Preload("Analyst").
		Where("date BETWEEN ? AND ?", start, end).
		Order("rut asc, date asc").
		Find(&rows).Error
	return rows, err
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// HHEEValidation is one persisted overtime decision: a category approval for
// an employee day, or a correction flag row (empty category) when the day was
// sent back for remediation. A day can accumulate one row per category across
// sessions; approvals are additive and never reduced.
type HHEEValidation struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	RUT          string    `gorm:"not null;size:12;uniqueIndex:idx_validation_day" json:"rut"`
	Date         time.Time `gorm:"not null;type:date;uniqueIndex:idx_validation_day" json:"fecha"`
	Category     string    `gorm:"size:20;uniqueIndex:idx_validation_day" json:"tipo_hhee"`
	Hours        float64   `json:"cantidad_horas"`
	State        string    `gorm:"not null;size:40;index" json:"estado"`
	Reason       string    `gorm:"size:500" json:"motivo"`
	EmployeeName string    `gorm:"size:200" json:"nombre_apellido"`
	Campaign     string    `gorm:"size:200" json:"campana"`
	BatchID      string    `gorm:"size:36;index" json:"batch_id"`

	AnalystID uint     `gorm:"index" json:"analista_id"`
	Analyst   *Analyst `gorm:"foreignKey:AnalystID" json:"analista,omitempty"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleAnalista    Role = "ANALISTA"
	RoleSupervisor  Role = "SUPERVISOR"
	RoleResponsable Role = "RESPONSABLE"
)

// Analyst is a portal user (GTR analyst, supervisor or responsable).
type Analyst struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Email        string         `gorm:"uniqueIndex;not null;size:200" json:"email"`
	FirstName    string         `gorm:"not null;size:100" json:"nombre"`
	LastName     string         `gorm:"not null;size:100" json:"apellido"`
	BmsID        int            `gorm:"uniqueIndex" json:"bms_id"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Role         Role           `gorm:"not null;size:20" json:"role"`
	Active       bool           `gorm:"default:true" json:"esta_activo"`
}

func (a *Analyst) DisplayName() string {
	if a.FirstName == "" && a.LastName == "" {
		return a.Email
	}
	return a.FirstName + " " + a.LastName
}

func (a *Analyst) IsSupervisor() bool {
	return a.Role == RoleSupervisor
}

func (a *Analyst) IsResponsable() bool {
	return a.Role == RoleResponsable
}

// CanManageAnalysts gates account registration.
func (a *Analyst) CanManageAnalysts() bool {
	return a.Role == RoleResponsable || a.Role == RoleSupervisor
}

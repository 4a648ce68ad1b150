package hhee

// DayState is the persisted approval state of one employee day.
type DayState string

const (
	StateNotSaved          DayState = "No Guardado"
	StatePendingCorrection DayState = "Pendiente por Corrección"
	StateValidated         DayState = "Validado"
)

// Category identifies one of the three approvable overtime buckets.
type Category string

const (
	CategoryBefore Category = "antes"
	CategoryAfter  Category = "despues"
	CategoryRest   Category = "descanso"
)

// Categories lists the buckets in display order.
var Categories = []Category{CategoryBefore, CategoryAfter, CategoryRest}

// DayRecord is the read-only snapshot of one employee calendar day, merged
// from the attendance provider and previously persisted validations. It lives
// only as long as the query result set that produced it.
type DayRecord struct {
	Date         string `json:"fecha"` // 2006-01-02
	EmployeeName string `json:"nombre_apellido"`
	Campaign     string `json:"campana"`

	// Theoretical shift. "00:00"/"00:00" is the rest-day sentinel.
	TheoreticalStart string `json:"inicio_turno_teorico"`
	TheoreticalEnd   string `json:"fin_turno_teorico"`

	// Observed clock marks, empty when absent.
	ClockIn  string `json:"marca_real_inicio"`
	ClockOut string `json:"marca_real_fin"`

	// Overtime candidates in fractional hours, computed upstream from marks
	// vs. the theoretical shift. Always >= 0.
	CalculatedBefore float64 `json:"hhee_inicio_calculadas"`
	CalculatedAfter  float64 `json:"hhee_fin_calculadas"`
	CalculatedRest   float64 `json:"hhee_descanso_calculadas"`

	// Amounts already authorized by GeoVictoria, outside this portal. A
	// positive amount settles its category.
	AuthorizedBefore float64 `json:"hhee_autorizadas_antes_gv"`
	AuthorizedAfter  float64 `json:"hhee_autorizadas_despues_gv"`

	// Amounts approved through this portal in prior sessions.
	ApprovedBefore float64 `json:"hhee_aprobadas_inicio"`
	ApprovedAfter  float64 `json:"hhee_aprobadas_fin"`
	ApprovedRest   float64 `json:"hhee_aprobadas_descanso"`

	State            DayState `json:"estado_final"`
	CorrectionReason string   `json:"motivo_correccion,omitempty"`
}

// IsRestDay reports whether the day carries no ordinary shift.
func (d *DayRecord) IsRestDay() bool {
	return d.TheoreticalStart == "00:00" && d.TheoreticalEnd == "00:00"
}

// HasMarks reports whether any real clock mark was observed.
func (d *DayRecord) HasMarks() bool {
	return d.ClockIn != "" || d.ClockOut != ""
}

// Calculated returns the candidate amount for a category. Rest-day candidates
// only exist on rest days, before/after only on shift days.
func (d *DayRecord) Calculated(c Category) float64 {
	switch c {
	case CategoryBefore:
		return d.CalculatedBefore
	case CategoryAfter:
		return d.CalculatedAfter
	case CategoryRest:
		if d.IsRestDay() {
			return d.CalculatedRest
		}
	}
	return 0
}

// Approved returns the amount already persisted for a category.
func (d *DayRecord) Approved(c Category) float64 {
	switch c {
	case CategoryBefore:
		return d.ApprovedBefore
	case CategoryAfter:
		return d.ApprovedAfter
	case CategoryRest:
		return d.ApprovedRest
	}
	return 0
}

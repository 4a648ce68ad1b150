package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Charlydk/Portal-GTR-sub000/config"
	"github.com/Charlydk/Portal-GTR-sub000/database"
	"github.com/Charlydk/Portal-GTR-sub000/hhee"
	"github.com/Charlydk/Portal-GTR-sub000/middleware"
	"github.com/Charlydk/Portal-GTR-sub000/timeutil"
)

const dateLayout = "2006-01-02"

type HHEEHandler struct {
	config     *config.Config
	attendance hhee.AttendanceProvider
	store      *database.ValidationStore
}

func NewHHEEHandler(cfg *config.Config, attendance hhee.AttendanceProvider, store *database.ValidationStore) *HHEEHandler {
	return &HHEEHandler{
		config:     cfg,
		attendance: attendance,
		store:      store,
	}
}

func (h *HHEEHandler) serviceFor(r *http.Request) *hhee.Service {
	analyst := middleware.GetAnalystFromContext(r.Context())
	store := h.store
	if analyst != nil {
		store = store.ForAnalyst(analyst.ID)
	}
	return hhee.NewService(h.attendance, store)
}

type periodRequest struct {
	RUT       string `json:"rut" validate:"required"`
	StartDate string `json:"fecha_inicio" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"fecha_fin" validate:"required,datetime=2006-01-02"`
}

func (req periodRequest) parse() (start, end time.Time, err error) {
	start, err = time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return
	}
	end, err = time.Parse(dateLayout, req.EndDate)
	return
}

type periodResponse struct {
	EmployeeName string            `json:"nombre_agente"`
	Days         []*hhee.DayRecord `json:"datos_periodo"`
}

// Query loads an employee period: GeoVictoria data merged with previously
// saved validations.
func (h *HHEEHandler) Query(w http.ResponseWriter, r *http.Request) {
	var req periodRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Consulta inválida: revise RUT y fechas")
		return
	}
	start, end, err := req.parse()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Formato de fecha inválido")
		return
	}

	session, err := h.serviceFor(r).LoadPeriod(r.Context(), req.RUT, start, end)
	if err != nil {
		h.writeQueryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, periodResponse{
		EmployeeName: session.EmployeeName,
		Days:         session.Days,
	})
}

func (h *HHEEHandler) writeQueryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, hhee.ErrInvalidRange):
		writeError(w, http.StatusBadRequest, "La fecha de inicio es posterior a la fecha de fin.")
	case errors.Is(err, hhee.ErrEmployeeNotFound):
		writeError(w, http.StatusNotFound, "No se encontraron datos en GeoVictoria para el RUT y período seleccionados.")
	default:
		writeError(w, http.StatusServiceUnavailable, "No se pudo comunicar con el servicio externo (GeoVictoria).")
	}
}

// Pending lists every day flagged for correction, across employees.
func (h *HHEEHandler) Pending(w http.ResponseWriter, r *http.Request) {
	days, err := h.serviceFor(r).PendingCorrections(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "No se pudieron cargar los días pendientes")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"dias": days})
}

type slotEdit struct {
	Enabled bool   `json:"habilitado"`
	Value   string `json:"valor"` // HH:MM
}

type dayEdit struct {
	Date        string    `json:"fecha" validate:"required,datetime=2006-01-02"`
	Revalidated bool      `json:"revalidado"`
	Before      *slotEdit `json:"antes"`
	After       *slotEdit `json:"despues"`
	Rest        *slotEdit `json:"descanso"`
	Pending     bool      `json:"pendiente"`
	Reason      string    `json:"motivo"`
}

type submitRequest struct {
	periodRequest
	Days []dayEdit `json:"dias" validate:"required,dive"`
}

type submitResponse struct {
	Message string   `json:"message"`
	Saved   int      `json:"guardados"`
	BatchID string   `json:"batch_id,omitempty"`
	Issues  []string `json:"avisos,omitempty"`
}

// Submit replays the reviewer's edits through the draft engine and persists
// the assembled batch. Per-day problems are reported as avisos; they never
// abort the rest of the batch.
func (h *HHEEHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Envío inválido: revise los datos")
		return
	}
	start, end, err := req.parse()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Formato de fecha inválido")
		return
	}

	svc := h.serviceFor(r)
	session, err := svc.LoadPeriod(r.Context(), req.RUT, start, end)
	if err != nil {
		h.writeQueryError(w, err)
		return
	}

	var issues []string
	for _, edit := range req.Days {
		if err := applyEdit(session, edit); err != nil {
			issues = append(issues, fmt.Sprintf("%s: %v", edit.Date, err))
			// A half-applied day must not submit.
			session.ResetDraft(edit.Date)
		}
	}

	res, err := svc.Submit(r.Context(), session)
	if res != nil {
		for _, issue := range res.Issues {
			issues = append(issues, issue.Message())
		}
	}
	if err != nil {
		if errors.Is(err, hhee.ErrNothingToSubmit) {
			writeJSON(w, http.StatusOK, submitResponse{
				Message: "No hay cambios para guardar.",
				Issues:  issues,
			})
			return
		}
		writeError(w, http.StatusServiceUnavailable, "No se pudieron guardar las validaciones")
		return
	}

	writeJSON(w, http.StatusOK, submitResponse{
		Message: res.Message,
		Saved:   res.Saved,
		BatchID: res.BatchID,
		Issues:  issues,
	})
}

// applyEdit drives one day's draft through the mutator in workflow order:
// revalidation first, then category slots, then the correction flag (which
// freezes the slots).
func applyEdit(session *hhee.Session, edit dayEdit) error {
	draft, err := session.Draft(edit.Date)
	if err != nil {
		return err
	}

	if edit.Revalidated {
		if err := draft.MarkRevalidated(); err != nil {
			return err
		}
	}

	slots := map[hhee.Category]*slotEdit{
		hhee.CategoryBefore: edit.Before,
		hhee.CategoryAfter:  edit.After,
		hhee.CategoryRest:   edit.Rest,
	}
	for _, c := range hhee.Categories {
		se := slots[c]
		if se == nil || !se.Enabled {
			continue
		}
		if err := draft.SetEnabled(c, true); err != nil {
			return err
		}
		if se.Value == "" {
			continue
		}
		hours, err := timeutil.ToFractionalHours(se.Value)
		if err != nil {
			return err
		}
		if err := draft.SetValue(c, hours); err != nil {
			return err
		}
	}

	if edit.Pending {
		return draft.MarkPendingCorrection(true, edit.Reason)
	}
	return nil
}

// ExportCSV reports persisted validations for a period, for payroll upload.
func (h *HHEEHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	startStr := r.URL.Query().Get("fecha_inicio")
	endStr := r.URL.Query().Get("fecha_fin")

	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "fecha_inicio inválida")
		return
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "fecha_fin inválida")
		return
	}

	rows, err := h.store.ValidationsInRange(r.Context(), start, end)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "No se pudo generar el reporte")
		return
	}

	filename := fmt.Sprintf("hhee_%s_%s.csv", start.Format(dateLayout), end.Format(dateLayout))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	writer := csv.NewWriter(w)
	defer writer.Flush()

	writer.Write([]string{"RUT", "Empleado", "Campaña", "Fecha", "Tipo", "Horas", "Estado", "Motivo", "Validador"})
	for _, row := range rows {
		validator := ""
		if row.Analyst != nil {
			validator = row.Analyst.DisplayName()
		}
		writer.Write([]string{
			row.RUT,
			row.EmployeeName,
			row.Campaign,
			row.Date.Format(dateLayout),
			row.Category,
			timeutil.ToTimeOfDay(row.Hours),
			row.State,
			row.Reason,
			validator,
		})
	}
}

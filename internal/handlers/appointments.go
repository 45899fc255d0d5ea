package handlers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"clinica-backend/internal/models"
	"clinica-backend/internal/scheduler"
	"clinica-backend/internal/utils"
)

// AppointmentHandler handles appointment related requests, delegating
// the booking rules to the scheduler.
type AppointmentHandler struct {
	Scheduler *scheduler.Scheduler
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(s *scheduler.Scheduler) *AppointmentHandler {
	return &AppointmentHandler{Scheduler: s}
}

// AppointmentRequest represents the request body for creating or
// editing an appointment. Required-field checks live in the scheduler
// so rejections can name the missing fields.
type AppointmentRequest struct {
	DoctorID  string `json:"medico"`
	PatientID string `json:"paciente"`
	Date      string `json:"fecha"`
	Hour      string `json:"hora"`
	Specialty string `json:"especialidad"`
	Reason    string `json:"motivo"`
}

func (r AppointmentRequest) input() scheduler.CreateInput {
	return scheduler.CreateInput{
		DoctorID:  r.DoctorID,
		PatientID: r.PatientID,
		Date:      r.Date,
		Hour:      r.Hour,
		Specialty: r.Specialty,
		Reason:    r.Reason,
	}
}

// CreateAppointment handles booking a new appointment.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req AppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appt, err := h.Scheduler.Create(c.Request.Context(), req.input())
	if err != nil {
		respondSchedulerError(c, err)
		return
	}
	utils.Created(c, "Cita agendada con éxito", appt)
}

// EditAppointment handles rewriting an appointment's booking fields.
func (h *AppointmentHandler) EditAppointment(c *gin.Context) {
	var req AppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appt, err := h.Scheduler.Edit(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		respondSchedulerError(c, err)
		return
	}
	utils.Success(c, "Cita actualizada con éxito", appt)
}

// GetAppointments handles the paginated appointment listing.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("pagina", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("porPagina", "10"))
	if perPage < 1 {
		perPage = 10
	}

	citas, total, err := h.Scheduler.List(c.Request.Context(), page, perPage)
	if err != nil {
		respondSchedulerError(c, err)
		return
	}

	utils.Success(c, "Citas obtenidas con éxito", gin.H{
		"citas":   citas,
		"total":   total,
		"paginas": int(math.Ceil(float64(total) / float64(perPage))),
	})
}

// UpdateStatusRequest carries the target status for a transition.
type UpdateStatusRequest struct {
	Status models.AppointmentStatus `json:"estado"`
}

// UpdateAppointmentStatus handles transitioning an appointment's status.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appt, err := h.Scheduler.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondSchedulerError(c, err)
		return
	}
	utils.Success(c, "Estado de la cita actualizado", appt)
}

// CancelAppointment handles releasing a slot without deleting anything.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	appt, err := h.Scheduler.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondSchedulerError(c, err)
		return
	}
	utils.Success(c, "Cita cancelada con éxito", appt)
}

// FilterRequest represents the filtered-search body; absent fields are
// not applied.
type FilterRequest struct {
	Specialty string `json:"especialidad"`
	DoctorID  string `json:"medico"`
	PatientID string `json:"paciente"`
	Hour      string `json:"hora"`
	Status    string `json:"estado"`
	Date      string `json:"fecha"`
}

// FilterAppointments handles the filtered search. Filters come from the
// JSON body, or from query parameters when no body is sent.
func (h *AppointmentHandler) FilterAppointments(c *gin.Context) {
	var req FilterRequest
	if c.Request.ContentLength > 0 {
		if !utils.BindAndValidate(c, &req) {
			return
		}
	} else {
		req = FilterRequest{
			Specialty: c.Query("especialidad"),
			DoctorID:  c.Query("medico"),
			PatientID: c.Query("paciente"),
			Hour:      c.Query("hora"),
			Status:    c.Query("estado"),
			Date:      c.Query("fecha"),
		}
	}

	citas, err := h.Scheduler.ListFiltered(c.Request.Context(), scheduler.Filters{
		Specialty: req.Specialty,
		DoctorID:  req.DoctorID,
		PatientID: req.PatientID,
		Hour:      req.Hour,
		Status:    req.Status,
		Date:      req.Date,
	})
	if err != nil {
		respondSchedulerError(c, err)
		return
	}
	utils.Success(c, "Citas filtradas con éxito", citas)
}

// GetAvailability handles the free-slot listing for a doctor.
func (h *AppointmentHandler) GetAvailability(c *gin.Context) {
	slotMinutes := 0
	if raw := c.Query("slotDuration"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			utils.BadRequest(c, "Duración de slot inválida")
			return
		}
		slotMinutes = v
	}

	days, err := h.Scheduler.Availability(c.Request.Context(), c.Param("medicoId"),
		c.Query("startDate"), c.Query("endDate"), slotMinutes)
	if err != nil {
		respondSchedulerError(c, err)
		return
	}
	utils.Success(c, "Disponibilidad obtenida con éxito", days)
}

// GetPendingByDoctor handles a doctor's Pendiente appointments with the
// patient name resolved.
func (h *AppointmentHandler) GetPendingByDoctor(c *gin.Context) {
	citas, err := h.Scheduler.ListForDoctor(c.Request.Context(), c.Param("medicoId"), models.StatusPending)
	if err != nil {
		respondSchedulerError(c, err)
		return
	}
	utils.Success(c, "Citas del médico obtenidas con éxito", citas)
}

// GetAcceptedByDoctor handles a doctor's Confirmada/Atendida appointments.
func (h *AppointmentHandler) GetAcceptedByDoctor(c *gin.Context) {
	citas, err := h.Scheduler.ListForDoctor(c.Request.Context(), c.Param("medicoId"),
		models.StatusConfirmed, models.StatusAttended)
	if err != nil {
		respondSchedulerError(c, err)
		return
	}
	utils.Success(c, "Citas del médico obtenidas con éxito", citas)
}

// GetAppointmentsByPatient handles a patient's appointment listing.
func (h *AppointmentHandler) GetAppointmentsByPatient(c *gin.Context) {
	citas, err := h.Scheduler.ListForPatient(c.Request.Context(), c.Param("usuarioId"))
	if err != nil {
		respondSchedulerError(c, err)
		return
	}
	utils.Success(c, "Citas del usuario obtenidas con éxito", citas)
}

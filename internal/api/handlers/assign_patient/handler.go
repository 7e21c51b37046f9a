package assign_patient

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/api/handlers"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/service/appointments"
	appointmentsModels "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/service/appointments/models"
)

const (
	msgInvalidRequestBody  = "cuerpo de solicitud inválido"
	msgAppointmentNotFound = "cita no encontrada"
	msgPatientNotFound     = "paciente no encontrado"
	msgInvalidInput        = "datos de solicitud inválidos"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleAssign PUT /api/v1/admin/appointments/{id}/patient
func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req appointmentsModels.AssignPatientRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/appointments/{id}/patient - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AssignPatient(r.Context(), id, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /admin/appointments/{id}/patient", id, err)
		return
	}

	h.logger.Info("PUT /admin/appointments/{id}/patient - Patient assigned: appointment_id=%s, patient_id=%s", id, req.PatientID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUnassign DELETE /api/v1/admin/appointments/{id}/patient
func (h *Handler) HandleUnassign(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	result, err := h.service.UnassignPatient(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, "DELETE /admin/appointments/{id}/patient", id, err)
		return
	}

	h.logger.Info("DELETE /admin/appointments/{id}/patient - Patient unassigned: appointment_id=%s", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleCreateAndAssign POST /api/v1/admin/appointments/{id}/patient
// Создает карточку пациента и привязывает запись одной операцией
func (h *Handler) HandleCreateAndAssign(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req appointmentsModels.CreatePatientRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/appointments/{id}/patient - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreatePatientAndAssign(r.Context(), id, &req)
	if err != nil {
		h.respondServiceError(w, "POST /admin/appointments/{id}/patient", id, err)
		return
	}

	h.logger.Info("POST /admin/appointments/{id}/patient - Patient created and assigned: appointment_id=%s", id)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route, appointmentID string, err error) {
	switch {
	case errors.Is(err, appointments.ErrAppointmentNotFound):
		h.logger.Warn("%s - Appointment not found: appointment_id=%s", route, appointmentID)
		handlers.RespondNotFound(w, msgAppointmentNotFound)

	case errors.Is(err, appointments.ErrPatientNotFound):
		h.logger.Warn("%s - Patient not found: appointment_id=%s", route, appointmentID)
		handlers.RespondNotFound(w, msgPatientNotFound)

	case errors.Is(err, appointments.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: appointment_id=%s, error=%v", route, appointmentID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Failed: appointment_id=%s, error=%v", route, appointmentID, err)
		handlers.RespondInternalError(w)
	}
}

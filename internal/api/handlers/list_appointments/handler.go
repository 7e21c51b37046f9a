package list_appointments

import (
	"errors"
	"net/http"
	"time"

	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/api/handlers"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/domain"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/service/appointments"
	appointmentsModels "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/service/appointments/models"
)

const (
	msgInvalidStatus = "estado de cita inválido"
	msgInvalidDate   = "formato de fecha inválido, se espera YYYY-MM-DD"
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

// Handle GET /api/v1/admin/appointments
// Query params: status, startDate, endDate, includeCancelled (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &appointmentsModels.ListAppointmentsRequest{
		IncludeCancelled: query.Get("includeCancelled") == "true",
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if startDateStr := query.Get("startDate"); startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			h.logger.Warn("GET /admin/appointments - Invalid start date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &startDate
	}

	if endDateStr := query.Get("endDate"); endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			h.logger.Warn("GET /admin/appointments - Invalid end date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &endDate
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidStatus):
			h.logger.Warn("GET /admin/appointments - Invalid status filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)
		default:
			h.logger.Error("GET /admin/appointments - Failed to list appointments: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

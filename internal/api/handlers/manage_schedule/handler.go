package manage_schedule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/api/handlers"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/service/schedule"
)

const (
	msgInvalidRequestBody = "cuerpo de solicitud inválido"
	msgInvalidDate        = "formato de fecha inválido, se espera YYYY-MM-DD"
	msgWindowNotFound     = "ventana de disponibilidad no encontrada"
	msgBlockNotFound      = "bloqueo no encontrado"
	msgWindowOverlap      = "la ventana se superpone con una ventana existente"
	msgInvalidTimeRange   = "rango horario inválido"
	msgInvalidInput       = "datos de solicitud inválidos"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreateWindow POST /api/v1/admin/schedule/windows
func (h *Handler) HandleCreateWindow(w http.ResponseWriter, r *http.Request) {
	var req CreateWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/schedule/windows - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateWindow(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrWindowOverlap):
			h.logger.Warn("POST /admin/schedule/windows - Window overlap: dayOfWeek=%d, %s-%s",
				req.DayOfWeek, req.StartTime, req.EndTime)
			handlers.RespondError(w, http.StatusConflict, msgWindowOverlap)

		case errors.Is(err, schedule.ErrInvalidTimeRange):
			h.logger.Warn("POST /admin/schedule/windows - Invalid time range: %s-%s", req.StartTime, req.EndTime)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /admin/schedule/windows - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /admin/schedule/windows - Failed to create window: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/schedule/windows - Window created: window_id=%s", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleDeleteWindow DELETE /api/v1/admin/schedule/windows/{id}
func (h *Handler) HandleDeleteWindow(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.service.DeleteWindow(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, schedule.ErrWindowNotFound):
			h.logger.Warn("DELETE /admin/schedule/windows/{id} - Window not found: window_id=%s", id)
			handlers.RespondNotFound(w, msgWindowNotFound)
		default:
			h.logger.Error("DELETE /admin/schedule/windows/{id} - Failed to delete window: window_id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// HandleBlockDate POST /api/v1/admin/schedule/blocked-dates
func (h *Handler) HandleBlockDate(w http.ResponseWriter, r *http.Request) {
	var req BlockDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/schedule/blocked-dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /admin/schedule/blocked-dates - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.BlockDate(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /admin/schedule/blocked-dates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("POST /admin/schedule/blocked-dates - Failed to block date: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/schedule/blocked-dates - Date blocked: block_id=%s, date=%s", result.ID, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleUnblockDate DELETE /api/v1/admin/schedule/blocked-dates/{id}
func (h *Handler) HandleUnblockDate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.service.UnblockDate(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, schedule.ErrBlockNotFound):
			h.logger.Warn("DELETE /admin/schedule/blocked-dates/{id} - Block not found: block_id=%s", id)
			handlers.RespondNotFound(w, msgBlockNotFound)
		default:
			h.logger.Error("DELETE /admin/schedule/blocked-dates/{id} - Failed to unblock date: block_id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// HandleBlockSlot POST /api/v1/admin/schedule/blocked-slots
func (h *Handler) HandleBlockSlot(w http.ResponseWriter, r *http.Request) {
	var req BlockSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/schedule/blocked-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /admin/schedule/blocked-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.BlockSlot(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidTimeRange):
			h.logger.Warn("POST /admin/schedule/blocked-slots - Invalid time range: %s-%s", req.StartTime, req.EndTime)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /admin/schedule/blocked-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /admin/schedule/blocked-slots - Failed to block slot: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/schedule/blocked-slots - Slot blocked: block_id=%s, date=%s, %s-%s",
		result.ID, req.Date, req.StartTime, req.EndTime)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleUnblockSlot DELETE /api/v1/admin/schedule/blocked-slots/{id}
func (h *Handler) HandleUnblockSlot(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.service.UnblockSlot(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, schedule.ErrBlockNotFound):
			h.logger.Warn("DELETE /admin/schedule/blocked-slots/{id} - Block not found: block_id=%s", id)
			handlers.RespondNotFound(w, msgBlockNotFound)
		default:
			h.logger.Error("DELETE /admin/schedule/blocked-slots/{id} - Failed to unblock slot: block_id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

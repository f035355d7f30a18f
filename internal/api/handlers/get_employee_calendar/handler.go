package get_employee_calendar

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
)

const (
	msgInvalidEmployeeID = "некорректный ID сотрудника"
	msgMissingActorID    = "отсутствует ID сотрудника"
	msgMissingFrom       = "дата начала обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange      = "некорректный период, максимум 31 день"
	msgEmployeeNotFound  = "сотрудник не найден"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/employees/{employeeId}/calendar
// Query params: from (required, YYYY-MM-DD), to (optional, YYYY-MM-DD, включительно)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	employeeID, err := handlers.PathInt64(r, "employeeId")
	if err != nil {
		h.logger.Warn("GET /employees/{id}/calendar - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	actorID, ok := middleware.GetActorID(r.Context())
	if !ok {
		h.logger.Warn("GET /employees/{id}/calendar - Missing actor ID")
		handlers.RespondUnauthorized(w, msgMissingActorID)
		return
	}

	fromStr := r.URL.Query().Get("from")
	if fromStr == "" {
		handlers.RespondBadRequest(w, msgMissingFrom)
		return
	}

	serviceReq, err := ToServiceRequest(actorID, employeeID, fromStr, r.URL.Query().Get("to"))
	if err != nil {
		h.logger.Warn("GET /employees/{id}/calendar - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetEmployeeCalendar(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidTimeRange), errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /employees/{id}/calendar - Invalid range: employee_id=%d, error=%v", employeeID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /employees/{id}/calendar - Access denied: employee_id=%d, actor_id=%d", employeeID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrEmployeeNotFound):
			h.logger.Warn("GET /employees/{id}/calendar - Employee not found: employee_id=%d", employeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		default:
			h.logger.Error("GET /employees/{id}/calendar - Failed to build calendar: employee_id=%d, error=%v", employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /employees/{id}/calendar - Calendar built: employee_id=%d, events=%d", employeeID, len(result.Events))
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}

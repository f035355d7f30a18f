package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidServiceID    = "некорректный ID услуги"
	msgInvalidEmployeeID   = "некорректный ID сотрудника"
	msgMissingDate         = "дата обязательна"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgServiceNotFound     = "услуга не найдена"
	msgEmployeeNotFound    = "сотрудник не найден"
	msgEmployeeNotAssigned = "сотрудник не оказывает эту услугу"
	msgMissingActorID      = "отсутствует ID сотрудника"
	msgInvalidSlotsRequest = "некорректные параметры запроса"
)

type Handler struct {
	useCase SlotsCalculator
	policy  domain.Policy
	logger  Logger
}

func NewHandler(useCase SlotsCalculator, policy domain.Policy, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		policy:  policy,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/employees/{employeeId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := handlers.PathInt64(r, "serviceId")
	if err != nil {
		h.logger.Warn("GET /services/{id}/employees/{id}/available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	employeeID, err := handlers.PathInt64(r, "employeeId")
	if err != nil {
		h.logger.Warn("GET /services/{id}/employees/{id}/available-slots - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	actorID, ok := middleware.GetActorID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingActorID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /services/{id}/employees/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(actorID, serviceID, employeeID, dateStr, h.policy)
	if err != nil {
		h.logger.Warn("GET /services/{id}/employees/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /services/{id}/employees/{id}/available-slots - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrEmployeeNotFound):
			h.logger.Warn("GET /services/{id}/employees/{id}/available-slots - Employee not found: employee_id=%d", employeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, getAvailableSlots.ErrEmployeeNotAssigned):
			h.logger.Warn("GET /services/{id}/employees/{id}/available-slots - Employee not assigned: service_id=%d, employee_id=%d",
				serviceID, employeeID)
			handlers.RespondBadRequest(w, msgEmployeeNotAssigned)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidSlotsRequest)

		default:
			h.logger.Error("GET /services/{id}/employees/{id}/available-slots - Failed to get slots: service_id=%d, employee_id=%d, error=%v",
				serviceID, employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /services/{id}/employees/{id}/available-slots - Slots retrieved successfully: service_id=%d, employee_id=%d, slots_count=%d",
		serviceID, employeeID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}

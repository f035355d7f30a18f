package assign_employee

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	assignEmployee "github.com/m04kA/SMC-SchedulingService/internal/usecase/assign_employee"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingActorID     = "отсутствует ID сотрудника"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "недостаточно прав для назначения сотрудника"
	msgDisabled           = "назначение сотрудников отключено настройками компании"
	msgEmployeeInvalid    = "сотрудник не найден, неактивен или не оказывает эту услугу"
	msgBookingTerminal    = "бронирование уже завершено или отменено"
	msgEmployeeBusy       = "у сотрудника есть пересекающееся бронирование"
)

type Handler struct {
	useCase AssignEmployeeUseCase
	policy  domain.Policy
	logger  Logger
}

func NewHandler(useCase AssignEmployeeUseCase, policy domain.Policy, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		policy:  policy,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/assignment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/assignment - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actorID, ok := middleware.GetActorID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingActorID)
		return
	}

	var req AssignEmployeeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/assignment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var result *assignEmployee.Response
	err = handlers.WithConflictRetry(func() error {
		var execErr error
		result, execErr = h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID, actorID, h.policy))
		return execErr
	})
	if err != nil {
		switch {
		case errors.Is(err, assignEmployee.ErrAssignmentDisabled):
			h.logger.Warn("PATCH /bookings/{id}/assignment - Assignment disabled by policy")
			handlers.RespondForbidden(w, msgDisabled)

		case errors.Is(err, assignEmployee.ErrForbidden), errors.Is(err, assignEmployee.ErrUnknownActor):
			h.logger.Warn("PATCH /bookings/{id}/assignment - Forbidden: booking_id=%d, actor_id=%d", bookingID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, assignEmployee.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, assignEmployee.ErrEmployeeNotFound),
			errors.Is(err, assignEmployee.ErrEmployeeInactive),
			errors.Is(err, assignEmployee.ErrEmployeeNotAssignedToService):
			h.logger.Warn("PATCH /bookings/{id}/assignment - Invalid employee: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgEmployeeInvalid)

		case errors.Is(err, assignEmployee.ErrBookingTerminal):
			handlers.RespondUnprocessable(w, msgBookingTerminal)

		case errors.Is(err, assignEmployee.ErrEmployeeBusy):
			h.logger.Warn("PATCH /bookings/{id}/assignment - Employee busy: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgEmployeeBusy)

		case errors.Is(err, assignEmployee.ErrBookingChanged):
			h.logger.Warn("PATCH /bookings/{id}/assignment - Conflict after retry: booking_id=%d", bookingID)
			handlers.RespondConflict(w, handlers.MsgBookingChanged)

		default:
			h.logger.Error("PATCH /bookings/{id}/assignment - Failed to assign employee: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/assignment - Assignment updated: booking_id=%d, changed=%t", bookingID, result.Changed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

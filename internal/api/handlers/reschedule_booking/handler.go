package reschedule_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	reschedule "github.com/m04kA/SMC-SchedulingService/internal/usecase/reschedule_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректное время, ожидается RFC 3339 или YYYY-MM-DDTHH:MM"
	msgMissingActorID     = "отсутствует ID сотрудника"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "недостаточно прав для переноса"
	msgDisabled           = "перенос бронирований отключён настройками компании"
	msgBookingTerminal    = "бронирование уже завершено или отменено"
	msgInvalidInterval    = "выбранное время недоступно для записи"
	msgSlotFull           = "выбранное время уже занято"
	msgEmployeeBusy       = "сотрудник занят другой услугой в это время"
)

type Handler struct {
	useCase RescheduleUseCase
	policy  domain.Policy
	logger  Logger
}

func NewHandler(useCase RescheduleUseCase, policy domain.Policy, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		policy:  policy,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/schedule - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actorID, ok := middleware.GetActorID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingActorID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, actorID, h.policy)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/schedule - Invalid date time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	var result *reschedule.Response
	err = handlers.WithConflictRetry(func() error {
		var execErr error
		result, execErr = h.useCase.Execute(r.Context(), useCaseReq)
		return execErr
	})
	if err != nil {
		h.respondError(w, bookingID, actorID, err)
		return
	}

	h.logger.Info("PATCH /bookings/{id}/schedule - Booking rescheduled: booking_id=%d, changed=%t", bookingID, result.Changed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func (h *Handler) respondError(w http.ResponseWriter, bookingID, actorID int64, err error) {
	switch {
	case errors.Is(err, reschedule.ErrReschedulingDisabled):
		handlers.RespondForbidden(w, msgDisabled)

	case errors.Is(err, reschedule.ErrForbidden), errors.Is(err, reschedule.ErrUnknownActor):
		h.logger.Warn("PATCH /bookings/{id}/schedule - Forbidden: booking_id=%d, actor_id=%d", bookingID, actorID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, reschedule.ErrBookingNotFound):
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, reschedule.ErrBookingTerminal):
		handlers.RespondUnprocessable(w, msgBookingTerminal)

	case errors.Is(err, availability.ErrEmployeeBusy):
		h.logger.Warn("PATCH /bookings/{id}/schedule - Employee is busy: booking_id=%d", bookingID)
		handlers.RespondConflict(w, msgEmployeeBusy)

	case errors.Is(err, availability.ErrSlotFull):
		h.logger.Warn("PATCH /bookings/{id}/schedule - Slot is full: booking_id=%d", bookingID)
		handlers.RespondConflict(w, msgSlotFull)

	case errors.Is(err, reschedule.ErrBookingChanged):
		h.logger.Warn("PATCH /bookings/{id}/schedule - Conflict after retry: booking_id=%d", bookingID)
		handlers.RespondConflict(w, handlers.MsgBookingChanged)

	case domain.KindOf(err) == domain.KindValidation:
		h.logger.Warn("PATCH /bookings/{id}/schedule - Rejected interval: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidInterval)

	default:
		h.logger.Error("PATCH /bookings/{id}/schedule - Failed to reschedule: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondDomainError(w, err)
	}
}

package move_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	dragReschedule "github.com/m04kA/SMC-SchedulingService/internal/usecase/drag_reschedule"
	reschedule "github.com/m04kA/SMC-SchedulingService/internal/usecase/reschedule_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingActorID     = "отсутствует ID сотрудника"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "недостаточно прав для переноса"
	msgDisabled           = "перенос бронирований отключён настройками компании"
	msgBookingTerminal    = "бронирование уже завершено или отменено"
	msgInvalidInterval    = "бронирование нельзя перенести на это время"
	msgSlotFull           = "выбранное время уже занято"
	msgEmployeeBusy       = "сотрудник занят другой услугой в это время"
)

type Handler struct {
	useCase DragRescheduleUseCase
	policy  domain.Policy
	logger  Logger
}

func NewHandler(useCase DragRescheduleUseCase, policy domain.Policy, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		policy:  policy,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/move
// Отпускание перетаскиваемого бронирования: смещение привязывается к сетке услуги
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/move - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actorID, ok := middleware.GetActorID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingActorID)
		return
	}

	var req MoveBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/move - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Смещение относительное, поэтому повтор на этом уровне запрещён:
	// движок сам повторяет фиксацию с уже вычисленной абсолютной целью
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID, actorID, h.policy))
	if err != nil {
		switch {
		case errors.Is(err, reschedule.ErrReschedulingDisabled):
			handlers.RespondForbidden(w, msgDisabled)

		case errors.Is(err, reschedule.ErrForbidden), errors.Is(err, reschedule.ErrUnknownActor):
			h.logger.Warn("PATCH /bookings/{id}/move - Forbidden: booking_id=%d, actor_id=%d", bookingID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, dragReschedule.ErrBookingNotFound), errors.Is(err, reschedule.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reschedule.ErrBookingTerminal):
			handlers.RespondUnprocessable(w, msgBookingTerminal)

		case errors.Is(err, availability.ErrEmployeeBusy):
			h.logger.Warn("PATCH /bookings/{id}/move - Employee is busy: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgEmployeeBusy)

		case errors.Is(err, availability.ErrSlotFull):
			h.logger.Warn("PATCH /bookings/{id}/move - Slot is full: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, reschedule.ErrBookingChanged):
			h.logger.Warn("PATCH /bookings/{id}/move - Conflict after retry: booking_id=%d", bookingID)
			handlers.RespondConflict(w, handlers.MsgBookingChanged)

		case domain.KindOf(err) == domain.KindValidation:
			h.logger.Warn("PATCH /bookings/{id}/move - Rejected move: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		default:
			h.logger.Error("PATCH /bookings/{id}/move - Failed to move booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/move - Booking released: booking_id=%d, offset=%s, moved=%t",
		bookingID, result.AppliedOffset, result.Moved)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

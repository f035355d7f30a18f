package update_booking_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	updateStatus "github.com/m04kA/SMC-SchedulingService/internal/usecase/update_booking_status"
)

const (
	msgInvalidBookingID     = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidInput         = "некорректный статус или заметка"
	msgMissingActorID       = "отсутствует ID сотрудника"
	msgNotFound             = "бронирование не найдено"
	msgForbidden            = "недостаточно прав для смены статуса"
	msgTransitionNotAllowed = "переход в этот статус недопустим"
)

type Handler struct {
	useCase UpdateStatusUseCase
	logger  Logger
}

func NewHandler(useCase UpdateStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actorID, ok := middleware.GetActorID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingActorID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// При конфликте версий use case перечитывает бронирование один раз
	var result *updateStatus.Response
	err = handlers.WithConflictRetry(func() error {
		var execErr error
		result, execErr = h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID, actorID))
		return execErr
	})
	if err != nil {
		switch {
		case errors.Is(err, updateStatus.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/status - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, updateStatus.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/status - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateStatus.ErrForbidden), errors.Is(err, updateStatus.ErrUnknownActor):
			h.logger.Warn("PATCH /bookings/{id}/status - Forbidden: booking_id=%d, actor_id=%d", bookingID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateStatus.ErrTransitionNotAllowed):
			h.logger.Warn("PATCH /bookings/{id}/status - Transition not allowed: booking_id=%d, target=%s", bookingID, req.Status)
			handlers.RespondUnprocessable(w, msgTransitionNotAllowed)

		case errors.Is(err, updateStatus.ErrBookingChanged):
			h.logger.Warn("PATCH /bookings/{id}/status - Conflict after retry: booking_id=%d", bookingID)
			handlers.RespondConflict(w, handlers.MsgBookingChanged)

		default:
			h.logger.Error("PATCH /bookings/{id}/status - Failed to update status: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/status - Status updated: booking_id=%d, %s -> %s",
		bookingID, result.FromStatus, result.Booking.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

package move_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	dragReschedule "github.com/m04kA/SMC-SchedulingService/internal/usecase/drag_reschedule"
)

// MoveBookingRequest HTTP request model
// Смещение в минутах, на которое бронирование отпустили в календаре
type MoveBookingRequest struct {
	OffsetMinutes int `json:"offsetMinutes"`
}

// MoveBookingResponse HTTP response model
type MoveBookingResponse struct {
	Booking              *models.BookingResponse `json:"booking"`
	AppliedOffsetMinutes int                     `json:"appliedOffsetMinutes"`
	Moved                bool                    `json:"moved"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *MoveBookingRequest) ToUseCaseRequest(bookingID, actorID int64, policy domain.Policy) *dragReschedule.Request {
	return &dragReschedule.Request{
		BookingID: bookingID,
		ActorID:   actorID,
		Offset:    time.Duration(r.OffsetMinutes) * time.Minute,
		Policy:    policy,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *dragReschedule.Response) *MoveBookingResponse {
	return &MoveBookingResponse{
		Booking:              models.FromDomainBooking(resp.Booking),
		AppliedOffsetMinutes: int(resp.AppliedOffset / time.Minute),
		Moved:                resp.Moved,
	}
}

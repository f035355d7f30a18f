package update_booking_status

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	updateStatus "github.com/m04kA/SMC-SchedulingService/internal/usecase/update_booking_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status         string  `json:"status"`
	Notes          *string `json:"notes,omitempty"`
	NotifyCustomer bool    `json:"notifyCustomer"`
}

// UpdateStatusResponse HTTP response model
type UpdateStatusResponse struct {
	FromStatus string                  `json:"fromStatus"`
	Booking    *models.BookingResponse `json:"booking"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *UpdateStatusRequest) ToUseCaseRequest(bookingID, actorID int64) *updateStatus.Request {
	return &updateStatus.Request{
		BookingID:      bookingID,
		ActorID:        actorID,
		TargetStatus:   domain.BookingStatus(r.Status),
		Notes:          r.Notes,
		NotifyCustomer: r.NotifyCustomer,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateStatus.Response) *UpdateStatusResponse {
	return &UpdateStatusResponse{
		FromStatus: string(resp.FromStatus),
		Booking:    models.FromDomainBooking(resp.Booking),
	}
}

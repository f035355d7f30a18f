package assign_employee

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	assignEmployee "github.com/m04kA/SMC-SchedulingService/internal/usecase/assign_employee"
)

// AssignEmployeeRequest HTTP request model
type AssignEmployeeRequest struct {
	EmployeeID *int64 `json:"employeeId"` // null снимает назначение
}

// AssignEmployeeResponse HTTP response model
type AssignEmployeeResponse struct {
	Booking            *models.BookingResponse `json:"booking"`
	PreviousEmployeeID *int64                  `json:"previousEmployeeId"`
	Changed            bool                    `json:"changed"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *AssignEmployeeRequest) ToUseCaseRequest(bookingID, actorID int64, policy domain.Policy) *assignEmployee.Request {
	return &assignEmployee.Request{
		BookingID:  bookingID,
		ActorID:    actorID,
		EmployeeID: r.EmployeeID,
		Policy:     policy,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *assignEmployee.Response) *AssignEmployeeResponse {
	return &AssignEmployeeResponse{
		Booking:            models.FromDomainBooking(resp.Booking),
		PreviousEmployeeID: resp.PreviousEmployeeID,
		Changed:            resp.Changed,
	}
}

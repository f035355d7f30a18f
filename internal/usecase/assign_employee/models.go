package assign_employee

import "github.com/m04kA/SMC-SchedulingService/internal/domain"

// Request модель запроса на назначение сотрудника
type Request struct {
	BookingID  int64
	ActorID    int64
	EmployeeID *int64 // nil = снять назначение
	Policy     domain.Policy
}

// Response модель ответа
type Response struct {
	Booking            *domain.Booking
	PreviousEmployeeID *int64
	Changed            bool
}

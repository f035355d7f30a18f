package update_booking_status

import "github.com/m04kA/SMC-SchedulingService/internal/domain"

// Request модель запроса на смену статуса
type Request struct {
	BookingID      int64
	ActorID        int64 // ID сотрудника, выполняющего действие
	TargetStatus   domain.BookingStatus
	Notes          *string // Дописывается к заметкам бронирования
	NotifyCustomer bool
}

// Response модель ответа
type Response struct {
	Booking    *domain.Booking
	FromStatus domain.BookingStatus
}

package drag_reschedule

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модель запроса на перенос перетаскиванием (одним вызовом)
type Request struct {
	BookingID int64
	ActorID   int64
	Offset    time.Duration // Смещение, на которое отпустили бронирование
	Policy    domain.Policy
}

// Response модель ответа
type Response struct {
	Booking       *domain.Booking
	AppliedOffset time.Duration // Смещение после привязки к сетке
	Moved         bool
}

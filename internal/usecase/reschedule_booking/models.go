package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID int64
	ActorID   int64
	NewStart  time.Time
	NewEnd    time.Time
	Policy    domain.Policy
}

// Response модель ответа
type Response struct {
	Booking  *domain.Booking
	Previous domain.Interval
	Changed  bool // false, если интервал не изменился и записи не было
}

package drag_reschedule

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/reschedule_booking"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// ServiceCatalog каталог услуг (нужен шаг сетки)
type ServiceCatalog interface {
	GetService(ctx context.Context, serviceID int64) (*domain.Service, error)
}

// Rescheduler фиксация переноса (use case reschedule_booking)
type Rescheduler interface {
	Execute(ctx context.Context, req *reschedule_booking.Request) (*reschedule_booking.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

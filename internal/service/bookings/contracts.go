package bookings

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByEmployeeWithFilter(ctx context.Context, filter domain.EmployeeBookingsFilter) ([]*domain.Booking, error)
}

// EmployeeDirectory интерфейс справочника сотрудников
type EmployeeDirectory interface {
	GetEmployee(ctx context.Context, id int64) (*domain.Employee, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

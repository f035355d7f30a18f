package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByEmployeeWithFilter получает бронирования сотрудника, пересекающиеся с периодом
	GetByEmployeeWithFilter(ctx context.Context, filter domain.EmployeeBookingsFilter) ([]*domain.Booking, error)
}

// ServiceCatalog каталог услуг
type ServiceCatalog interface {
	GetService(ctx context.Context, serviceID int64) (*domain.Service, error)
}

// EmployeeDirectory справочник сотрудников
type EmployeeDirectory interface {
	GetEmployee(ctx context.Context, employeeID int64) (*domain.Employee, error)
}

// Metrics метрики вычисления слотов
type Metrics interface {
	ObserveSlotsCompute(outcome string, d time.Duration)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

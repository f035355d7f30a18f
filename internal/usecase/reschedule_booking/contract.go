package reschedule_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Save(ctx context.Context, booking *domain.Booking, expectedVersion int64) (*domain.Booking, error)
	// FindOverlapping внутри транзакции блокирует найденные строки
	FindOverlapping(ctx context.Context, employeeID int64, start, end time.Time, excludeID *int64) ([]*domain.Booking, error)
}

// ServiceCatalog каталог услуг
type ServiceCatalog interface {
	GetService(ctx context.Context, serviceID int64) (*domain.Service, error)
}

// EmployeeDirectory справочник сотрудников
type EmployeeDirectory interface {
	GetEmployee(ctx context.Context, employeeID int64) (*domain.Employee, error)
}

// TxManager менеджер транзакций
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventSink получатель доменных событий
type EventSink interface {
	Publish(ctx context.Context, event domain.Event) error
}

// Metrics метрики конфликтов и публикации
type Metrics interface {
	RecordConflict(operation string)
	RecordPublishFailure(eventType string)
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

package update_booking_status

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	// Save записывает бронирование, если версия в хранилище равна expectedVersion
	Save(ctx context.Context, booking *domain.Booking, expectedVersion int64) (*domain.Booking, error)
}

// EmployeeDirectory справочник сотрудников (источник прав)
type EmployeeDirectory interface {
	GetEmployee(ctx context.Context, employeeID int64) (*domain.Employee, error)
}

// EventSink получатель доменных событий
type EventSink interface {
	Publish(ctx context.Context, event domain.Event) error
}

// Metrics метрики переходов
type Metrics interface {
	RecordTransition(from, to string)
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

package get_available_slots

import (
	"context"

	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

// SlotsCalculator расчёт свободных слотов сотрудника на день
// Ошибки возвращаются в таксономии use case: услуга, сотрудник и закрепление проверяются до расчёта
type SlotsCalculator interface {
	Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error)
}

// Logger журнал обработчика, формат в стиле printf
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package availability

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrDateOutOfRange дата в прошлом или дальше горизонта бронирования
	ErrDateOutOfRange = fmt.Errorf("%w: date is outside the booking horizon", domain.ErrValidation)

	// ErrDayUnavailable услуга или сотрудник не работают в этот день
	ErrDayUnavailable = fmt.Errorf("%w: service or employee is unavailable on this day", domain.ErrValidation)

	// ErrOutsideWindow интервал выходит за рабочее окно
	ErrOutsideWindow = fmt.Errorf("%w: interval is outside the working window", domain.ErrValidation)

	// ErrInvalidDuration длительность интервала не совпадает с длительностью услуги
	ErrInvalidDuration = fmt.Errorf("%w: interval duration does not match the service duration", domain.ErrValidation)

	// ErrStartInPast начало интервала уже прошло
	ErrStartInPast = fmt.Errorf("%w: interval starts in the past", domain.ErrValidation)

	// ErrSlotFull все места на интервале заняты
	ErrSlotFull = fmt.Errorf("%w: employee has no free capacity in this interval", domain.ErrConflict)

	// ErrEmployeeBusy сотрудник занят бронированием другой услуги
	ErrEmployeeBusy = fmt.Errorf("%w: employee is busy with another service in this interval", domain.ErrConflict)
)

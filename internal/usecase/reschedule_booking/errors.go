package reschedule_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrReschedulingDisabled возвращается, когда перенос выключен политикой
	ErrReschedulingDisabled = fmt.Errorf("%w: rescheduling", domain.ErrFeatureDisabled)

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: booking no longer exists", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда услуга бронирования не найдена
	ErrServiceNotFound = fmt.Errorf("%w: service not found", domain.ErrNotFound)

	// ErrBookingTerminal возвращается при попытке перенести завершённое бронирование
	ErrBookingTerminal = fmt.Errorf("%w: booking in a terminal status cannot be rescheduled", domain.ErrInvalidStateTransition)

	// ErrUnknownActor возвращается, когда инициатор не найден в справочнике сотрудников
	ErrUnknownActor = fmt.Errorf("%w: actor is not a known employee", domain.ErrPermissionDenied)

	// ErrForbidden возвращается, когда сотрудник не может управлять бронированиями
	ErrForbidden = fmt.Errorf("%w: actor cannot manage bookings", domain.ErrPermissionDenied)

	// ErrAssigneeNotFound возвращается, когда назначенный сотрудник пропал из справочника
	ErrAssigneeNotFound = fmt.Errorf("%w: assigned employee not found", domain.ErrValidation)

	// ErrBookingChanged возвращается, когда бронирование изменили параллельно
	ErrBookingChanged = fmt.Errorf("%w: booking was modified concurrently", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)

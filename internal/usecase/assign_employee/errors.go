package assign_employee

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrAssignmentDisabled возвращается, когда назначение выключено политикой
	ErrAssignmentDisabled = fmt.Errorf("%w: assignment", domain.ErrFeatureDisabled)

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: booking no longer exists", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда услуга бронирования не найдена
	ErrServiceNotFound = fmt.Errorf("%w: service not found", domain.ErrNotFound)

	// ErrBookingTerminal возвращается при назначении сотрудника на завершённое бронирование
	ErrBookingTerminal = fmt.Errorf("%w: booking in a terminal status cannot be reassigned", domain.ErrInvalidStateTransition)

	// ErrUnknownActor возвращается, когда инициатор не найден в справочнике сотрудников
	ErrUnknownActor = fmt.Errorf("%w: actor is not a known employee", domain.ErrPermissionDenied)

	// ErrForbidden возвращается, когда сотрудник не может управлять бронированиями
	ErrForbidden = fmt.Errorf("%w: actor cannot manage bookings", domain.ErrPermissionDenied)

	// ErrEmployeeNotFound возвращается, когда назначаемый сотрудник не найден
	ErrEmployeeNotFound = fmt.Errorf("%w: employee not found", domain.ErrValidation)

	// ErrEmployeeInactive возвращается, когда назначаемый сотрудник неактивен
	ErrEmployeeInactive = fmt.Errorf("%w: employee is inactive", domain.ErrValidation)

	// ErrEmployeeNotAssignedToService возвращается, когда сотрудник не закреплён за услугой
	ErrEmployeeNotAssignedToService = fmt.Errorf("%w: employee does not provide this service", domain.ErrValidation)

	// ErrEmployeeBusy возвращается, когда у сотрудника есть пересекающееся бронирование
	ErrEmployeeBusy = fmt.Errorf("%w: employee has an overlapping booking", domain.ErrConflict)

	// ErrBookingChanged возвращается, когда бронирование изменили параллельно
	ErrBookingChanged = fmt.Errorf("%w: booking was modified concurrently", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)

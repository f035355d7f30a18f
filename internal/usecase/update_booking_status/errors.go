package update_booking_status

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: booking no longer exists", domain.ErrNotFound)

	// ErrTransitionNotAllowed возвращается, когда автомат не допускает переход
	ErrTransitionNotAllowed = fmt.Errorf("%w: status transition is not allowed", domain.ErrInvalidStateTransition)

	// ErrUnknownActor возвращается, когда инициатор не найден в справочнике сотрудников
	ErrUnknownActor = fmt.Errorf("%w: actor is not a known employee", domain.ErrPermissionDenied)

	// ErrForbidden возвращается, когда у сотрудника нет права на переход
	ErrForbidden = fmt.Errorf("%w: actor lacks permission for this transition", domain.ErrPermissionDenied)

	// ErrBookingChanged возвращается, когда бронирование изменили параллельно
	ErrBookingChanged = fmt.Errorf("%w: booking was modified concurrently", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)

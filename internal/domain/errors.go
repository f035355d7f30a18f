package domain

import (
	"errors"
	"fmt"
)

// Таксономия ошибок ядра планирования
// Ошибки пакетов оборачивают одну из них, классификация делается через errors.Is
var (
	// ErrValidation некорректные входные данные (неизвестный сотрудник, услуга, интервал вне окна)
	ErrValidation = errors.New("validation error")

	// ErrPermissionDenied у сотрудника нет нужного права
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidStateTransition недопустимый переход статуса, в том числе из терминального
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrConflict проигрыш оптимистичной блокировки или пересечение расписания
	ErrConflict = errors.New("conflict")

	// ErrNotFound бронирование, услуга или сотрудник не найдены
	ErrNotFound = errors.New("not found")

	// ErrFeatureDisabled действие выключено политикой компании
	ErrFeatureDisabled = fmt.Errorf("%w: feature disabled by policy", ErrPermissionDenied)
)

// ErrorKind класс ошибки для вызывающего кода
type ErrorKind string

const (
	KindValidation             ErrorKind = "validation"
	KindPermissionDenied       ErrorKind = "permission_denied"
	KindInvalidStateTransition ErrorKind = "invalid_state_transition"
	KindConflict               ErrorKind = "conflict"
	KindNotFound               ErrorKind = "not_found"
	KindInternal               ErrorKind = "internal"
)

// KindOf определяет класс ошибки
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrPermissionDenied):
		return KindPermissionDenied
	case errors.Is(err, ErrInvalidStateTransition):
		return KindInvalidStateTransition
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	default:
		return KindInternal
	}
}

// IsRetryable возвращает true, если вызывающий код может один раз перечитать данные и повторить операцию
// Повторяется только конфликт, ошибки валидации и прав терминальны
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConflict)
}

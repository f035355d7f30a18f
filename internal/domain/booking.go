package domain

import (
	"fmt"
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusNoShow     BookingStatus = "no_show"
)

// IsValid возвращает true для известного статуса
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// IsTerminal возвращает true для статусов, из которых нет переходов
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// ParseBookingStatus конвертирует строку в BookingStatus с валидацией
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: unknown booking status %q", ErrValidation, s)
	}
	return status, nil
}

// Booking represents a service booking in the system
// Бронирование никогда не удаляется физически: отмена - это терминальный статус
type Booking struct {
	ID          int64
	ServiceID   int64
	EmployeeID  *int64 // nil = сотрудник не назначен
	CustomerID  int64
	StartTime   time.Time
	EndTime     time.Time
	Status      BookingStatus
	Notes       *string
	CancelledAt *time.Time

	// Version увеличивается на каждой записи (оптимистичная блокировка)
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval возвращает интервал бронирования
func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// IsActive returns true if the booking occupies its interval
// Отменённые и неявки не занимают время сотрудника
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled && b.Status != StatusNoShow
}

// IsTerminal returns true if no further status transitions are allowed
func (b *Booking) IsTerminal() bool {
	return b.Status.IsTerminal()
}

// IsAssignedTo returns true if the booking is assigned to the employee
func (b *Booking) IsAssignedTo(employeeID int64) bool {
	return b.EmployeeID != nil && *b.EmployeeID == employeeID
}

// Overlaps returns true if the booking strictly overlaps [start, end)
// Касание границ пересечением не считается
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}

// Clone возвращает глубокую копию бронирования
func (b *Booking) Clone() *Booking {
	clone := *b
	if b.EmployeeID != nil {
		id := *b.EmployeeID
		clone.EmployeeID = &id
	}
	if b.Notes != nil {
		notes := *b.Notes
		clone.Notes = &notes
	}
	if b.CancelledAt != nil {
		at := *b.CancelledAt
		clone.CancelledAt = &at
	}
	return &clone
}

// Validate проверяет инварианты бронирования перед записью
func (b *Booking) Validate() error {
	if !b.StartTime.Before(b.EndTime) {
		return fmt.Errorf("%w: booking start must be before end", ErrValidation)
	}
	if !b.Status.IsValid() {
		return fmt.Errorf("%w: unknown booking status %q", ErrValidation, b.Status)
	}
	if b.Notes != nil && len(*b.Notes) > MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrValidation, MaxNotesLength)
	}
	return nil
}

// EmployeeBookingsFilter фильтр для получения бронирований сотрудника за период
type EmployeeBookingsFilter struct {
	EmployeeID      int64     // Обязательный параметр
	From            time.Time // Начало периода (включительно)
	To              time.Time // Конец периода (не включительно)
	IncludeInactive bool      // Включать ли отменённые и неявки
}

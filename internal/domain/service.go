package domain

import (
	"fmt"
	"slices"
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Service услуга компании (груминг, выгул, передержка и т.п.)
// Ядро планирования читает её только на чтение
type Service struct {
	ID                  int64
	Name                string
	DurationMinutes     int
	AvailableDays       []time.Weekday
	DailyStartTime      types.TimeString
	DailyEndTime        types.TimeString
	BufferBeforeMinutes int
	BufferAfterMinutes  int
	MaxBookingsPerSlot  int
	AdvanceBookingDays  int
	AssignedEmployeeIDs []int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Duration длительность услуги
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// SlotStep шаг сетки слотов: длительность плюс буфер после
// Этим же шагом округляется перетаскивание бронирования
func (s *Service) SlotStep() time.Duration {
	return time.Duration(s.DurationMinutes+s.BufferAfterMinutes) * time.Minute
}

// IsAvailableOn возвращает true, если услуга оказывается в этот день недели
func (s *Service) IsAvailableOn(weekday time.Weekday) bool {
	return slices.Contains(s.AvailableDays, weekday)
}

// HasEmployee возвращает true, если сотрудник закреплён за услугой
func (s *Service) HasEmployee(employeeID int64) bool {
	return slices.Contains(s.AssignedEmployeeIDs, employeeID)
}

// Validate проверяет инварианты конфигурации услуги
func (s *Service) Validate() error {
	if s.DurationMinutes < MinServiceDurationMinutes || s.DurationMinutes > MaxServiceDurationMinutes {
		return fmt.Errorf("%w: service duration must be between %d and %d minutes",
			ErrValidation, MinServiceDurationMinutes, MaxServiceDurationMinutes)
	}
	if s.BufferBeforeMinutes < 0 || s.BufferAfterMinutes < 0 {
		return fmt.Errorf("%w: buffer time must not be negative", ErrValidation)
	}
	if s.MaxBookingsPerSlot < MinBookingsPerSlot {
		return fmt.Errorf("%w: maxBookingsPerSlot must be at least %d", ErrValidation, MinBookingsPerSlot)
	}
	if s.AdvanceBookingDays < 0 {
		return fmt.Errorf("%w: advanceBookingDays must not be negative", ErrValidation)
	}
	if err := s.DailyStartTime.Validate(); err != nil {
		return fmt.Errorf("%w: dailyStartTime: %v", ErrValidation, err)
	}
	if err := s.DailyEndTime.Validate(); err != nil {
		return fmt.Errorf("%w: dailyEndTime: %v", ErrValidation, err)
	}
	if !s.DailyStartTime.IsBefore(s.DailyEndTime) {
		return fmt.Errorf("%w: dailyStartTime must be before dailyEndTime", ErrValidation)
	}
	return nil
}

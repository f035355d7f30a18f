package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/authorizer"
)

// Request модели

// GetCalendarRequest запрос календаря сотрудника
type GetCalendarRequest struct {
	ActorID    int64
	EmployeeID int64
	From       time.Time // Первый день периода
	To         time.Time // Последний день периода (включительно)
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64   `json:"id"`
	ServiceID       int64   `json:"serviceId"`
	EmployeeID      *int64  `json:"employeeId"`
	CustomerID      int64   `json:"customerId"`
	BookingDate     string  `json:"bookingDate"` // "2025-10-15"
	StartTime       string  `json:"startTime"`   // "10:00"
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`
	Version         int64   `json:"version"`

	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CalendarEventResponse событие календаря
type CalendarEventResponse struct {
	Kind      string    `json:"kind"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	BookingID *int64    `json:"bookingId,omitempty"`
	ServiceID *int64    `json:"serviceId,omitempty"`
	Status    *string   `json:"status,omitempty"`
	Label     string    `json:"label,omitempty"`
}

// CalendarResponse календарь сотрудника за период
type CalendarResponse struct {
	EmployeeID int64                   `json:"employeeId"`
	From       string                  `json:"from"`
	To         string                  `json:"to"`
	Events     []CalendarEventResponse `json:"events"`
}

// CapabilitiesResponse флаги возможностей сотрудника для интерфейса
type CapabilitiesResponse struct {
	EmployeeID        int64    `json:"employeeId"`
	Role              string   `json:"role"`
	CanViewBookings   bool     `json:"canViewBookings"`
	CanViewAll        bool     `json:"canViewAll"`
	CanManageBookings bool     `json:"canManageBookings"`
	CanStart          bool     `json:"canStart"`
	CanComplete       bool     `json:"canComplete"`
	CanCancel         bool     `json:"canCancel"`
	Permissions       []string `json:"permissions"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		ServiceID:       b.ServiceID,
		CustomerID:      b.CustomerID,
		BookingDate:     b.StartTime.Format(domain.DateFormat),
		StartTime:       b.StartTime.Format(domain.TimeFormat),
		EndTime:         b.EndTime.Format(domain.TimeFormat),
		DurationMinutes: int(b.EndTime.Sub(b.StartTime) / time.Minute),
		Status:          string(b.Status),
		Version:         b.Version,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	if b.EmployeeID != nil {
		id := *b.EmployeeID
		resp.EmployeeID = &id
	}
	if b.Notes != nil {
		notes := *b.Notes
		resp.Notes = &notes
	}
	if b.CancelledAt != nil {
		cancelledAt := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromCalendarEvent конвертирует событие календаря в DTO
func FromCalendarEvent(e domain.CalendarEvent) CalendarEventResponse {
	span := e.Interval()
	resp := CalendarEventResponse{
		Kind:  string(e.Kind()),
		Start: span.Start,
		End:   span.End,
	}

	switch ev := e.(type) {
	case domain.BookingEvent:
		bookingID, serviceID, status := ev.BookingID, ev.ServiceID, string(ev.Status)
		resp.BookingID = &bookingID
		resp.ServiceID = &serviceID
		resp.Status = &status
	case domain.BreakEvent:
		resp.Label = ev.Label
	case domain.UnavailableEvent:
		resp.Label = ev.Reason
	}

	return resp
}

// FromCapabilities конвертирует флаги авторизатора в DTO
func FromCapabilities(actor domain.Actor, c authorizer.Capabilities) *CapabilitiesResponse {
	perms := make([]string, 0, len(c.Permissions))
	for _, p := range c.Permissions {
		perms = append(perms, string(p))
	}
	return &CapabilitiesResponse{
		EmployeeID:        actor.ID,
		Role:              string(actor.Role),
		CanViewBookings:   c.CanViewBookings,
		CanViewAll:        c.CanViewAll,
		CanManageBookings: c.CanManageBookings,
		CanStart:          c.CanStart,
		CanComplete:       c.CanComplete,
		CanCancel:         c.CanCancel,
		Permissions:       perms,
	}
}

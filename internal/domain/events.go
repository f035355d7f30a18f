package domain

import (
	"time"

	"github.com/google/uuid"
)

// Типы доменных событий
const (
	EventTypeBookingStatusChanged = "booking.status_changed"
	EventTypeAssignmentChanged    = "booking.assignment_changed"
	EventTypeBookingRescheduled   = "booking.rescheduled"
)

// Event доменное событие, публикуемое после успешной записи
type Event interface {
	EventType() string
	ID() string
	Key() int64 // ключ партиционирования (ID бронирования)
	Time() time.Time
}

// BookingStatusChanged статус бронирования изменён
type BookingStatusChanged struct {
	EventID        string        `json:"-"`
	BookingID      int64         `json:"booking_id"`
	From           BookingStatus `json:"from"`
	To             BookingStatus `json:"to"`
	ActorID        int64         `json:"actor_id"`
	NotifyCustomer bool          `json:"notify_customer"`
	OccurredAt     time.Time     `json:"occurred_at"`
}

// NewBookingStatusChanged создает событие смены статуса
func NewBookingStatusChanged(bookingID int64, from, to BookingStatus, actorID int64, notify bool, at time.Time) *BookingStatusChanged {
	return &BookingStatusChanged{
		EventID:        uuid.NewString(),
		BookingID:      bookingID,
		From:           from,
		To:             to,
		ActorID:        actorID,
		NotifyCustomer: notify,
		OccurredAt:     at,
	}
}

func (e *BookingStatusChanged) EventType() string { return EventTypeBookingStatusChanged }
func (e *BookingStatusChanged) ID() string        { return e.EventID }
func (e *BookingStatusChanged) Key() int64        { return e.BookingID }
func (e *BookingStatusChanged) Time() time.Time   { return e.OccurredAt }

// AssignmentChanged изменён назначенный сотрудник
type AssignmentChanged struct {
	EventID            string    `json:"-"`
	BookingID          int64     `json:"booking_id"`
	EmployeeID         *int64    `json:"employee_id"`
	PreviousEmployeeID *int64    `json:"previous_employee_id"`
	ActorID            int64     `json:"actor_id"`
	OccurredAt         time.Time `json:"occurred_at"`
}

// NewAssignmentChanged создает событие смены исполнителя
func NewAssignmentChanged(bookingID int64, employeeID, previous *int64, actorID int64, at time.Time) *AssignmentChanged {
	return &AssignmentChanged{
		EventID:            uuid.NewString(),
		BookingID:          bookingID,
		EmployeeID:         employeeID,
		PreviousEmployeeID: previous,
		ActorID:            actorID,
		OccurredAt:         at,
	}
}

func (e *AssignmentChanged) EventType() string { return EventTypeAssignmentChanged }
func (e *AssignmentChanged) ID() string        { return e.EventID }
func (e *AssignmentChanged) Key() int64        { return e.BookingID }
func (e *AssignmentChanged) Time() time.Time   { return e.OccurredAt }

// BookingRescheduled бронирование перенесено на другое время
type BookingRescheduled struct {
	EventID       string    `json:"-"`
	BookingID     int64     `json:"booking_id"`
	PreviousStart time.Time `json:"previous_start"`
	PreviousEnd   time.Time `json:"previous_end"`
	NewStart      time.Time `json:"new_start"`
	NewEnd        time.Time `json:"new_end"`
	ActorID       int64     `json:"actor_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NewBookingRescheduled создает событие переноса
func NewBookingRescheduled(bookingID int64, previous, next Interval, actorID int64, at time.Time) *BookingRescheduled {
	return &BookingRescheduled{
		EventID:       uuid.NewString(),
		BookingID:     bookingID,
		PreviousStart: previous.Start,
		PreviousEnd:   previous.End,
		NewStart:      next.Start,
		NewEnd:        next.End,
		ActorID:       actorID,
		OccurredAt:    at,
	}
}

func (e *BookingRescheduled) EventType() string { return EventTypeBookingRescheduled }
func (e *BookingRescheduled) ID() string        { return e.EventID }
func (e *BookingRescheduled) Key() int64        { return e.BookingID }
func (e *BookingRescheduled) Time() time.Time   { return e.OccurredAt }

package domain

// CalendarEventKind тип события календаря
type CalendarEventKind string

const (
	CalendarEventBooking     CalendarEventKind = "booking"
	CalendarEventBreak       CalendarEventKind = "break"
	CalendarEventUnavailable CalendarEventKind = "unavailable"
)

// CalendarEvent проекция для календаря сотрудника, только на чтение
// Набор вариантов закрыт: BookingEvent, BreakEvent, UnavailableEvent
type CalendarEvent interface {
	Kind() CalendarEventKind
	Interval() Interval
	calendarEvent()
}

// BookingEvent бронирование в календаре
type BookingEvent struct {
	BookingID  int64
	ServiceID  int64
	CustomerID int64
	Status     BookingStatus
	Span       Interval
}

func (e BookingEvent) Kind() CalendarEventKind { return CalendarEventBooking }
func (e BookingEvent) Interval() Interval      { return e.Span }
func (BookingEvent) calendarEvent()            {}

// BreakEvent перерыв сотрудника
type BreakEvent struct {
	Label string
	Span  Interval
}

func (e BreakEvent) Kind() CalendarEventKind { return CalendarEventBreak }
func (e BreakEvent) Interval() Interval      { return e.Span }
func (BreakEvent) calendarEvent()            {}

// UnavailableEvent время, когда сотрудник не работает
type UnavailableEvent struct {
	Reason string
	Span   Interval
}

func (e UnavailableEvent) Kind() CalendarEventKind { return CalendarEventUnavailable }
func (e UnavailableEvent) Interval() Interval      { return e.Span }
func (UnavailableEvent) calendarEvent()            {}

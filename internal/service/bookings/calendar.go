package bookings

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

const (
	reasonDayOff   = "day_off"
	reasonOffHours = "off_hours"
	reasonInactive = "inactive"
)

// BuildCalendar строит проекцию календаря сотрудника на дни [from, to)
// Бронирования вне периода и неактивные бронирования пропускаются
func BuildCalendar(employee *domain.Employee, bookings []*domain.Booking, from, to time.Time) []domain.CalendarEvent {
	events := make([]domain.CalendarEvent, 0)

	for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
		events = append(events, dayEvents(employee, day)...)
	}

	period := domain.Interval{Start: from, End: to}
	for _, b := range bookings {
		if !b.IsActive() || !b.Interval().Overlaps(period) {
			continue
		}
		events = append(events, domain.BookingEvent{
			BookingID:  b.ID,
			ServiceID:  b.ServiceID,
			CustomerID: b.CustomerID,
			Status:     b.Status,
			Span:       b.Interval(),
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Interval().Start.Before(events[j].Interval().Start)
	})
	return events
}

func dayEvents(employee *domain.Employee, day time.Time) []domain.CalendarEvent {
	nextDay := day.AddDate(0, 0, 1)
	whole := domain.Interval{Start: day, End: nextDay}

	if !employee.Active {
		return []domain.CalendarEvent{domain.UnavailableEvent{Reason: reasonInactive, Span: whole}}
	}

	wd := employee.WorkingHours.For(day.Weekday())
	if !wd.IsOpen() {
		return []domain.CalendarEvent{domain.UnavailableEvent{Reason: reasonDayOff, Span: whole}}
	}

	events := make([]domain.CalendarEvent, 0, len(wd.Breaks)+2)
	start, end := wd.Start.On(day), wd.End.On(day)

	if start.After(day) {
		events = append(events, domain.UnavailableEvent{
			Reason: reasonOffHours,
			Span:   domain.Interval{Start: day, End: start},
		})
	}

	for _, br := range wd.Breaks {
		if br.Start.Validate() != nil || br.End.Validate() != nil || !br.Start.IsBefore(br.End) {
			continue
		}
		events = append(events, domain.BreakEvent{
			Label: br.Label,
			Span:  domain.Interval{Start: br.Start.On(day), End: br.End.On(day)},
		})
	}

	if end.Before(nextDay) {
		events = append(events, domain.UnavailableEvent{
			Reason: reasonOffHours,
			Span:   domain.Interval{Start: end, End: nextDay},
		})
	}

	return events
}

const dayDuration = 24 * time.Hour

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

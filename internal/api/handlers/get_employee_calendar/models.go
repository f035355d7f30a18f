package get_employee_calendar

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

// CalendarResponse HTTP response model
type CalendarResponse struct {
	EmployeeID int64           `json:"employeeId"`
	From       string          `json:"from"`
	To         string          `json:"to"`
	Events     []CalendarEvent `json:"events"`
}

// CalendarEvent событие календаря с оформлением
type CalendarEvent struct {
	models.CalendarEventResponse
	Presentation
}

// ToServiceRequest создает запрос сервиса из query параметров
// Без to календарь строится на один день
func ToServiceRequest(actorID, employeeID int64, fromStr, toStr string) (*models.GetCalendarRequest, error) {
	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		return nil, fmt.Errorf("parse from: %w", err)
	}

	to := from
	if toStr != "" {
		to, err = time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, fmt.Errorf("parse to: %w", err)
		}
	}

	return &models.GetCalendarRequest{
		ActorID:    actorID,
		EmployeeID: employeeID,
		From:       from,
		To:         to,
	}, nil
}

// FromServiceResponse добавляет к событиям цвет и иконку
func FromServiceResponse(resp *models.CalendarResponse) *CalendarResponse {
	events := make([]CalendarEvent, len(resp.Events))
	for i, e := range resp.Events {
		var status domain.BookingStatus
		if e.Status != nil {
			status = domain.BookingStatus(*e.Status)
		}
		events[i] = CalendarEvent{
			CalendarEventResponse: e,
			Presentation:          PresentationFor(domain.CalendarEventKind(e.Kind), status),
		}
	}

	return &CalendarResponse{
		EmployeeID: resp.EmployeeID,
		From:       resp.From,
		To:         resp.To,
		Events:     events,
	}
}

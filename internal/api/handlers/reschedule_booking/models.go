package reschedule_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	reschedule "github.com/m04kA/SMC-SchedulingService/internal/usecase/reschedule_booking"
)

// RescheduleRequest HTTP request model
// Время в RFC 3339 или "2006-01-02T15:04" (UTC)
type RescheduleRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	Booking       *models.BookingResponse `json:"booking"`
	PreviousStart time.Time               `json:"previousStart"`
	PreviousEnd   time.Time               `json:"previousEnd"`
	Changed       bool                    `json:"changed"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *RescheduleRequest) ToUseCaseRequest(bookingID, actorID int64, policy domain.Policy) (*reschedule.Request, error) {
	start, err := ParseDateTime(r.Start)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	end, err := ParseDateTime(r.End)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	return &reschedule.Request{
		BookingID: bookingID,
		ActorID:   actorID,
		NewStart:  start,
		NewEnd:    end,
		Policy:    policy,
	}, nil
}

// ParseDateTime разбирает время в RFC 3339 или в формате без зоны
func ParseDateTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.ParseInLocation(domain.DateTimeFormat, value, time.UTC)
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reschedule.Response) *RescheduleResponse {
	return &RescheduleResponse{
		Booking:       models.FromDomainBooking(resp.Booking),
		PreviousStart: resp.Previous.Start,
		PreviousEnd:   resp.Previous.End,
		Changed:       resp.Changed,
	}
}

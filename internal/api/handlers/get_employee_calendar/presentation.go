package get_employee_calendar

import "github.com/m04kA/SMC-SchedulingService/internal/domain"

// Presentation цвет и иконка события в календаре
type Presentation struct {
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

var bookingPresentation = map[domain.BookingStatus]Presentation{
	domain.StatusPending:    {Color: "#F5A623", Icon: "clock"},
	domain.StatusConfirmed:  {Color: "#4A90E2", Icon: "calendar-check"},
	domain.StatusInProgress: {Color: "#7ED321", Icon: "scissors"},
	domain.StatusCompleted:  {Color: "#9B9B9B", Icon: "check-double"},
	domain.StatusCancelled:  {Color: "#D0021B", Icon: "ban"},
	domain.StatusNoShow:     {Color: "#8B572A", Icon: "user-slash"},
}

var (
	breakPresentation       = Presentation{Color: "#BDBDBD", Icon: "coffee"}
	unavailablePresentation = Presentation{Color: "#E0E0E0", Icon: "lock"}
	unknownPresentation     = Presentation{Color: "#CCCCCC", Icon: "question"}
)

// PresentationFor возвращает оформление для вида события и статуса бронирования
// Статус учитывается только для бронирований
func PresentationFor(kind domain.CalendarEventKind, status domain.BookingStatus) Presentation {
	switch kind {
	case domain.CalendarEventBooking:
		if p, ok := bookingPresentation[status]; ok {
			return p
		}
		return unknownPresentation
	case domain.CalendarEventBreak:
		return breakPresentation
	case domain.CalendarEventUnavailable:
		return unavailablePresentation
	default:
		return unknownPresentation
	}
}

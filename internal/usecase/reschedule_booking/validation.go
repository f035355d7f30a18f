package reschedule_booking

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}

	if req.NewStart.IsZero() || req.NewEnd.IsZero() {
		return fmt.Errorf("%w: new start and end are required", ErrInvalidInput)
	}

	if !req.NewStart.Before(req.NewEnd) {
		return fmt.Errorf("%w: new start must be before new end", ErrInvalidInput)
	}

	return nil
}

package update_booking_status

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}

	if !req.TargetStatus.IsValid() {
		return fmt.Errorf("%w: unknown target status %q", ErrInvalidInput, req.TargetStatus)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// appendNotes дописывает заметку к существующим
// Общий текст не превышает domain.MaxNotesLength: самые старые заметки обрезаются с начала
func appendNotes(existing *string, note *string) *string {
	if note == nil || strings.TrimSpace(*note) == "" {
		return existing
	}
	trimmed := strings.TrimSpace(*note)
	if existing == nil || *existing == "" {
		return &trimmed
	}
	combined := truncateOldest(*existing+"\n"+trimmed, domain.MaxNotesLength)
	return &combined
}

// truncateOldest оставляет последние limit байт, не разрезая символ
func truncateOldest(notes string, limit int) string {
	if len(notes) <= limit {
		return notes
	}
	cut := len(notes) - limit
	for cut < len(notes) && !utf8.RuneStart(notes[cut]) {
		cut++
	}
	return strings.TrimLeft(notes[cut:], "\n")
}

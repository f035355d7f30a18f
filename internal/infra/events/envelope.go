package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// SchemaVersion версия формата конверта
const SchemaVersion = "1.0"

// Envelope конверт доменного события для шины
type Envelope struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Key       int64        `json:"key"`
	Timestamp time.Time    `json:"timestamp"`
	Version   string       `json:"version"`
	Payload   domain.Event `json:"payload"`
}

// NewEnvelope оборачивает событие в конверт
func NewEnvelope(event domain.Event) Envelope {
	ts := event.Time()
	if ts.IsZero() {
		ts = time.Now()
	}
	return Envelope{
		EventID:   event.ID(),
		EventType: event.EventType(),
		Key:       event.Key(),
		Timestamp: ts.UTC(),
		Version:   SchemaVersion,
		Payload:   event,
	}
}

// Marshal сериализует событие в JSON конверт
func Marshal(event domain.Event) ([]byte, error) {
	if event == nil {
		return nil, ErrNilEvent
	}
	bytes, err := json.Marshal(NewEnvelope(event))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMarshal, event.EventType(), err)
	}
	return bytes, nil
}

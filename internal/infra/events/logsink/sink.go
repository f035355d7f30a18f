package logsink

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/events"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Sink EventSink, пишущий события в лог, используется при выключенной Kafka
type Sink struct {
	logger Logger
}

// New создает Sink
func New(log Logger) *Sink {
	return &Sink{logger: log}
}

// Publish пишет конверт события в лог
func (s *Sink) Publish(_ context.Context, event domain.Event) error {
	bytes, err := events.Marshal(event)
	if err != nil {
		return err
	}
	s.logger.Info("Event published: type=%s key=%d envelope=%s", event.EventType(), event.Key(), bytes)
	return nil
}

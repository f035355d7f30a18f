package testfixtures

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// EventRecorder EventSink, запоминающий опубликованные события
type EventRecorder struct {
	mu     sync.Mutex
	events []domain.Event

	// Err если задана, Publish возвращает её и не запоминает событие
	Err error
}

// NewEventRecorder создает пустой EventRecorder
func NewEventRecorder() *EventRecorder {
	return &EventRecorder{}
}

// Publish implements the event sink contract
func (r *EventRecorder) Publish(_ context.Context, event domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.events = append(r.events, event)
	return nil
}

// Events возвращает копию опубликованных событий
func (r *EventRecorder) Events() []domain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Event(nil), r.events...)
}

// TxManager выполняет функцию без реальной транзакции
type TxManager struct {
	mu    sync.Mutex
	calls int

	// Err если задана, возвращается после успешного выполнения fn (имитация ошибки коммита)
	Err error
}

// DoSerializable implements the transaction manager contract
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if err := fn(ctx); err != nil {
		return err
	}
	return m.Err
}

// Calls количество открытых транзакций
func (m *TxManager) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

package middleware

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/infra/idempotency"
)

// IdempotencyStore хранилище ключей идемпотентности
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string) (*idempotency.Record, error)
	Complete(ctx context.Context, key string, rec idempotency.Record) error
	Release(ctx context.Context, key string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package kafka

// Metrics счётчики публикации
type Metrics interface {
	RecordPublishFailure(eventType string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

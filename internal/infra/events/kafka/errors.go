package kafka

import "errors"

var (
	// ErrCreateProducer возвращается, когда не удалось подключиться к брокерам
	ErrCreateProducer = errors.New("kafka: create producer")
)

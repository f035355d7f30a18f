package events

import "errors"

var (
	// ErrNilEvent возвращается при попытке опубликовать пустое событие
	ErrNilEvent = errors.New("events: nil event")

	// ErrMarshal возвращается, когда событие не удалось сериализовать
	ErrMarshal = errors.New("events: marshal envelope")
)

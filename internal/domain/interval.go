package domain

import "time"

// Interval полуоткрытый интервал времени [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// IsValid возвращает true, если Start строго раньше End
func (i Interval) IsValid() bool {
	return i.Start.Before(i.End)
}

// Duration длительность интервала
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Shift возвращает интервал, сдвинутый на delta
func (i Interval) Shift(delta time.Duration) Interval {
	return Interval{Start: i.Start.Add(delta), End: i.End.Add(delta)}
}

// Overlaps возвращает true при строгом пересечении интервалов
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// Contains возвращает true, если other целиком лежит внутри i
func (i Interval) Contains(other Interval) bool {
	return !other.Start.Before(i.Start) && !other.End.After(i.End)
}

// Equal сравнивает интервалы по моментам времени
func (i Interval) Equal(other Interval) bool {
	return i.Start.Equal(other.Start) && i.End.Equal(other.End)
}

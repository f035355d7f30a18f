package domain

import "time"

// TimeSlot represents a time slot available for booking
type TimeSlot struct {
	Start          time.Time
	End            time.Time
	AvailableSpots int // Свободные места
	TotalSpots     int // Всего мест (maxBookingsPerSlot)
}

// Interval возвращает интервал слота
func (s *TimeSlot) Interval() Interval {
	return Interval{Start: s.Start, End: s.End}
}

// IsFull returns true if the slot has no available spots
func (s *TimeSlot) IsFull() bool {
	return s.AvailableSpots <= 0
}

// IsPartiallyAvailable returns true if the slot has some but not all spots available
func (s *TimeSlot) IsPartiallyAvailable() bool {
	return s.AvailableSpots > 0 && s.AvailableSpots < s.TotalSpots
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *TimeSlot) OccupancyRate() float64 {
	if s.TotalSpots == 0 {
		return 0
	}
	occupied := s.TotalSpots - s.AvailableSpots
	return float64(occupied) / float64(s.TotalSpots) * 100
}

// Package availability вычисление свободных слотов для сотрудника и услуги
//
// Все функции чистые: зависят только от аргументов, текущее время передаётся явно.
package availability

import (
	"container/heap"
	"sort"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Input входные данные для вычисления слотов
type Input struct {
	Service  *domain.Service
	Employee *domain.Employee // nil = учитывается только окно услуги
	Date     time.Time        // день, время суток игнорируется
	Bookings []*domain.Booking
	Now      time.Time
	Policy   domain.Policy
}

// ComputeSlots возвращает слоты на день в хронологическом порядке
// Слоты без свободных мест не возвращаются
func ComputeSlots(in Input) []domain.TimeSlot {
	day := startOfDay(in.Date)
	if err := checkDay(in, day); err != nil {
		return []domain.TimeSlot{}
	}

	windowStart, windowEnd, ok := window(in, day)
	if !ok {
		return []domain.TimeSlot{}
	}

	candidates := generateCandidates(in.Service, day, windowStart, windowEnd)

	// Слоты текущего дня, которые уже начались, не предлагаются
	if sameDay(day, in.Now) {
		candidates = dropStarted(candidates, in.Now)
	}

	same, other := employeeBookings(in.Service, in.Employee, in.Bookings, 0)
	counts := countOverlaps(candidates, same)
	busy := countOverlaps(candidates, other)

	capacity := in.Service.MaxBookingsPerSlot
	slots := make([]domain.TimeSlot, 0, len(candidates))
	for i, c := range candidates {
		if busy[i] > 0 || counts[i] >= capacity {
			continue
		}
		slots = append(slots, domain.TimeSlot{
			Start:          c.Start,
			End:            c.End,
			AvailableSpots: capacity - counts[i],
			TotalSpots:     capacity,
		})
	}
	return slots
}

// ValidateInterval проверяет, что бронирование можно поставить на интервал
// Бронирование excludeID (переносимое) не учитывается при подсчёте занятости
func ValidateInterval(in Input, interval domain.Interval, excludeID int64) error {
	if !interval.IsValid() || interval.Duration() != in.Service.Duration() {
		return ErrInvalidDuration
	}
	if interval.Start.Before(in.Now) {
		return ErrStartInPast
	}

	day := startOfDay(interval.Start)
	if err := checkDay(in, day); err != nil {
		return err
	}

	windowStart, windowEnd, ok := window(in, day)
	if !ok {
		return ErrDayUnavailable
	}

	// Буфер до и после тоже должен помещаться в окно
	occupied := domain.Interval{
		Start: interval.Start.Add(-time.Duration(in.Service.BufferBeforeMinutes) * time.Minute),
		End:   interval.End,
	}
	if !(domain.Interval{Start: windowStart, End: windowEnd}).Contains(occupied) {
		return ErrOutsideWindow
	}

	if in.Employee == nil {
		return nil
	}
	return CheckCapacity(in.Service, in.Employee, interval, in.Bookings, excludeID)
}

// CheckCapacity проверяет, что у сотрудника есть место на интервале
// Бронирования той же услуги занимают места из MaxBookingsPerSlot,
// пересечение с бронированием другой услуги всегда конфликт.
func CheckCapacity(service *domain.Service, employee *domain.Employee, interval domain.Interval, bookings []*domain.Booking, excludeID int64) error {
	same, other := employeeBookings(service, employee, bookings, excludeID)
	target := []domain.Interval{interval}
	if countOverlaps(target, other)[0] > 0 {
		return ErrEmployeeBusy
	}
	if countOverlaps(target, same)[0] >= service.MaxBookingsPerSlot {
		return ErrSlotFull
	}
	return nil
}

// checkDay проверяет горизонт бронирования и рабочие дни
func checkDay(in Input, day time.Time) error {
	today := startOfDay(in.Now.In(day.Location()))
	if day.Before(today) {
		return ErrDateOutOfRange
	}
	// advanceBookingDays = 0 означает бронирование только на сегодня
	horizon := today.AddDate(0, 0, in.Policy.AdvanceBookingDays(in.Service))
	if day.After(horizon) {
		return ErrDateOutOfRange
	}

	weekday := day.Weekday()
	if !in.Service.IsAvailableOn(weekday) {
		return ErrDayUnavailable
	}
	if in.Employee != nil && !in.Employee.WorkingHours.For(weekday).IsOpen() {
		return ErrDayUnavailable
	}
	return nil
}

// window пересечение окна услуги и рабочих часов сотрудника
func window(in Input, day time.Time) (time.Time, time.Time, bool) {
	start := in.Service.DailyStartTime
	end := in.Service.DailyEndTime

	if in.Employee != nil {
		wd := in.Employee.WorkingHours.For(day.Weekday())
		start = laterOf(start, wd.Start)
		end = earlierOf(end, wd.End)
	}

	if start.Minutes() < 0 || end.Minutes() < 0 || !start.IsBefore(end) {
		return time.Time{}, time.Time{}, false
	}
	return start.On(day), end.On(day), true
}

// generateCandidates генерирует сетку слотов внутри окна
// Первый слот начинается после буфера до, шаг равен длительности плюс буфер после
func generateCandidates(service *domain.Service, day, windowStart, windowEnd time.Time) []domain.Interval {
	step := service.SlotStep()
	duration := service.Duration()
	if duration <= 0 || step <= 0 {
		return nil
	}

	candidates := make([]domain.Interval, 0)
	current := windowStart.Add(time.Duration(service.BufferBeforeMinutes) * time.Minute)
	for {
		end := current.Add(duration)
		if end.After(windowEnd) {
			break
		}
		candidates = append(candidates, domain.Interval{Start: current, End: end})
		current = current.Add(step)
	}
	return candidates
}

func dropStarted(candidates []domain.Interval, now time.Time) []domain.Interval {
	result := candidates[:0]
	for _, c := range candidates {
		if !c.Start.Before(now) {
			result = append(result, c)
		}
	}
	return result
}

// employeeBookings активные бронирования сотрудника, отсортированные по началу,
// отдельно для этой услуги и для остальных
func employeeBookings(service *domain.Service, employee *domain.Employee, bookings []*domain.Booking, excludeID int64) ([]domain.Interval, []domain.Interval) {
	if employee == nil {
		return nil, nil
	}
	same := make([]domain.Interval, 0, len(bookings))
	other := make([]domain.Interval, 0)
	for _, b := range bookings {
		if b == nil || !b.IsActive() || !b.IsAssignedTo(employee.ID) {
			continue
		}
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		if b.ServiceID == service.ID {
			same = append(same, b.Interval())
		} else {
			other = append(other, b.Interval())
		}
	}
	byStart(same)
	byStart(other)
	return same, other
}

func byStart(intervals []domain.Interval) {
	sort.SliceStable(intervals, func(i, j int) bool {
		return intervals[i].Start.Before(intervals[j].Start)
	})
}

// countOverlaps для каждого кандидата считает число строго пересекающихся бронирований
// Кандидаты и бронирования должны быть отсортированы по началу.
// Проход один: бронирования добавляются в кучу по концу, пока начинаются раньше конца кандидата,
// и удаляются, как только закончились к началу кандидата.
func countOverlaps(candidates []domain.Interval, bookings []domain.Interval) []int {
	counts := make([]int, len(candidates))
	active := &endHeap{}
	next := 0

	for i, c := range candidates {
		for next < len(bookings) && bookings[next].Start.Before(c.End) {
			heap.Push(active, bookings[next].End)
			next++
		}
		for active.Len() > 0 && !(*active)[0].After(c.Start) {
			heap.Pop(active)
		}
		counts[i] = active.Len()
	}
	return counts
}

// endHeap min-куча моментов окончания
type endHeap []time.Time

func (h endHeap) Len() int           { return len(h) }
func (h endHeap) Less(i, j int) bool { return h[i].Before(h[j]) }
func (h endHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *endHeap) Push(x interface{}) {
	*h = append(*h, x.(time.Time))
}

func (h *endHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

func laterOf(a, b types.TimeString) types.TimeString {
	if a.IsAfter(b) {
		return a
	}
	return b
}

func earlierOf(a, b types.TimeString) types.TimeString {
	if a.IsBefore(b) {
		return a
	}
	return b
}

// startOfDay обнуляет время, сохраняя локацию
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// sameDay проверяет, что момент now приходится на день day (в локации day)
func sameDay(day, now time.Time) bool {
	y1, m1, d1 := day.Date()
	y2, m2, d2 := now.In(day.Location()).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

package drag_reschedule

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/reschedule_booking"
)

// Session перетаскивание одного бронирования
//
// Фаза 1 (Move) только пересчитывает теневой интервал и ничего не записывает.
// Фаза 2 (Release) привязывает смещение к сетке слотов и фиксирует перенос;
// при любой ошибке тень возвращается к последнему зафиксированному интервалу.
type Session struct {
	mu sync.Mutex

	rescheduler Rescheduler
	logger      Logger
	actorID     int64
	policy      domain.Policy
	step        time.Duration

	booking   *domain.Booking
	committed domain.Interval
	shadow    domain.Interval
}

// Move сдвигает тень на offset относительно зафиксированного интервала
func (s *Session) Move(offset time.Duration) domain.Interval {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shadow = s.committed.Shift(offset)
	return s.shadow
}

// Cancel возвращает тень на место без записи
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shadow = s.committed
}

// Shadow текущий теневой интервал
func (s *Session) Shadow() domain.Interval {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shadow
}

// Committed последний зафиксированный интервал
func (s *Session) Committed() domain.Interval {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committed
}

// Step шаг привязки к сетке
func (s *Session) Step() time.Duration {
	return s.step
}

// Release фиксирует перенос на смещение тени, привязанное к сетке
// Нулевое смещение после привязки ничего не записывает.
// Конфликт версий повторяется один раз с той же абсолютной целью.
func (s *Session) Release(ctx context.Context) (*Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	offset := SnapOffset(s.shadow.Start.Sub(s.committed.Start), s.step)
	if offset == 0 {
		s.shadow = s.committed
		s.logger.Info("DragReschedule: booking id=%d released in place, nothing to do", s.booking.ID)
		return &Response{Booking: s.booking, AppliedOffset: 0, Moved: false}, nil
	}

	// Цель вычисляется один раз от зафиксированного интервала.
	// Повтор после конфликта версий отправляет ту же абсолютную цель, смещение заново не применяется.
	target := s.committed.Shift(offset)
	req := &reschedule_booking.Request{
		BookingID: s.booking.ID,
		ActorID:   s.actorID,
		NewStart:  target.Start,
		NewEnd:    target.End,
		Policy:    s.policy,
	}
	resp, err := s.rescheduler.Execute(ctx, req)
	if errors.Is(err, reschedule_booking.ErrBookingChanged) {
		s.logger.Warn("DragReschedule: booking id=%d changed concurrently, retrying target %s",
			s.booking.ID, target.Start.Format(domain.DateTimeFormat))
		resp, err = s.rescheduler.Execute(ctx, req)
	}
	if err != nil {
		s.shadow = s.committed
		s.logger.Warn("DragReschedule: booking id=%d reverted to %s: %v",
			s.booking.ID, s.committed.Start.Format(domain.DateTimeFormat), err)
		return nil, err
	}

	s.booking = resp.Booking
	s.committed = resp.Booking.Interval()
	s.shadow = s.committed

	return &Response{Booking: resp.Booking, AppliedOffset: offset, Moved: resp.Changed}, nil
}

// SnapOffset округляет смещение до ближайшего кратного шага
// Половина шага округляется от нуля
func SnapOffset(offset, step time.Duration) time.Duration {
	if step <= 0 {
		return 0
	}
	steps := offset / step
	rest := offset % step
	if rest < 0 {
		rest = -rest
	}
	if 2*rest >= step {
		if offset < 0 {
			steps--
		} else {
			steps++
		}
	}
	return steps * step
}

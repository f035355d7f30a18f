package drag_reschedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
)

// Engine создаёт сессии перетаскивания
type Engine struct {
	bookingRepo BookingRepository
	catalog     ServiceCatalog
	rescheduler Rescheduler
	logger      Logger
}

// NewEngine создает новый экземпляр движка перетаскивания
func NewEngine(bookingRepo BookingRepository, catalog ServiceCatalog, rescheduler Rescheduler, logger Logger) *Engine {
	return &Engine{
		bookingRepo: bookingRepo,
		catalog:     catalog,
		rescheduler: rescheduler,
		logger:      logger,
	}
}

// Begin начинает перетаскивание бронирования
// Шаг сетки берётся из услуги: длительность плюс буфер после
func (e *Engine) Begin(ctx context.Context, bookingID, actorID int64, policy domain.Policy) (*Session, error) {
	if bookingID <= 0 || actorID <= 0 {
		return nil, fmt.Errorf("%w: bookingID and actorID must be positive", ErrInvalidInput)
	}

	booking, err := e.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			e.logger.Warn("DragReschedule: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		e.logger.Error("DragReschedule: failed to get booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
	}

	service, err := e.catalog.GetService(ctx, booking.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			e.logger.Error("DragReschedule: service id=%d of booking id=%d not found", booking.ServiceID, bookingID)
			return nil, ErrServiceNotFound
		}
		e.logger.Error("DragReschedule: failed to get service id=%d: %v", booking.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}

	interval := booking.Interval()
	return &Session{
		rescheduler: e.rescheduler,
		logger:      e.logger,
		actorID:     actorID,
		policy:      policy,
		step:        service.SlotStep(),
		booking:     booking,
		committed:   interval,
		shadow:      interval,
	}, nil
}

// Execute перетаскивание одним вызовом: начать, сдвинуть, отпустить
func (e *Engine) Execute(ctx context.Context, req *Request) (*Response, error) {
	e.logger.Info("DragReschedule: booking=%d, actor=%d, offset=%s", req.BookingID, req.ActorID, req.Offset)

	session, err := e.Begin(ctx, req.BookingID, req.ActorID, req.Policy)
	if err != nil {
		return nil, err
	}

	session.Move(req.Offset)
	return session.Release(ctx)
}

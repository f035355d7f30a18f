package reschedule_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	staffClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-SchedulingService/internal/service/authorizer"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

// UseCase перенос бронирования на другой интервал
type UseCase struct {
	bookingRepo  BookingRepository
	catalog      ServiceCatalog
	directory    EmployeeDirectory
	txManager    TxManager
	events       EventSink
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalog ServiceCatalog,
	directory EmployeeDirectory,
	txManager TxManager,
	events EventSink,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalog:      catalog,
		directory:    directory,
		txManager:    txManager,
		events:       events,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute переносит бронирование
// Новый интервал проверяется по доступности внутри сериализуемой транзакции прямо перед записью
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("Reschedule: booking=%d, actor=%d, start=%s, end=%s",
		req.BookingID, req.ActorID, req.NewStart.Format(domain.DateTimeFormat), req.NewEnd.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных и политики
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("Reschedule: validation failed: %v", err)
		return nil, err
	}
	if !req.Policy.ReschedulingEnabled {
		uc.logger.Warn("Reschedule: rescheduling is disabled by policy")
		return nil, ErrReschedulingDisabled
	}

	// 2. Получаем бронирование
	booking, err := uc.getBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	// 3. Завершённые бронирования не переносятся
	if booking.IsTerminal() {
		uc.logger.Warn("Reschedule: booking id=%d is %s", booking.ID, booking.Status)
		return nil, fmt.Errorf("%w: status %s", ErrBookingTerminal, booking.Status)
	}

	// 4. Проверяем права
	if err := uc.authorize(ctx, req.ActorID); err != nil {
		return nil, err
	}

	previous := booking.Interval()
	next := domain.Interval{Start: req.NewStart, End: req.NewEnd}
	if previous.Equal(next) {
		uc.logger.Info("Reschedule: booking id=%d interval unchanged, nothing to do", booking.ID)
		return &Response{Booking: booking, Previous: previous, Changed: false}, nil
	}

	// 5. Загружаем услугу и назначенного сотрудника для проверки доступности
	service, err := uc.catalog.GetService(ctx, booking.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Error("Reschedule: service id=%d of booking id=%d not found", booking.ServiceID, booking.ID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("Reschedule: failed to get service id=%d: %v", booking.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}

	var assignee *domain.Employee
	if booking.EmployeeID != nil {
		assignee, err = uc.directory.GetEmployee(ctx, *booking.EmployeeID)
		if err != nil {
			if errors.Is(err, staffClient.ErrEmployeeNotFound) {
				uc.logger.Warn("Reschedule: assigned employee id=%d not found", *booking.EmployeeID)
				return nil, ErrAssigneeNotFound
			}
			uc.logger.Error("Reschedule: failed to get employee id=%d: %v", *booking.EmployeeID, err)
			return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
		}
	}

	// 6. Повторная проверка и запись в одной транзакции
	now := uc.timeProvider.Now()
	var saved *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.getBooking(txCtx, booking.ID)
		if err != nil {
			return err
		}
		if current.Version != booking.Version {
			return ErrBookingChanged
		}

		var overlapping []*domain.Booking
		if assignee != nil {
			overlapping, err = uc.bookingRepo.FindOverlapping(txCtx, assignee.ID, next.Start, next.End, &current.ID)
			if err != nil {
				return fmt.Errorf("%w: failed to find overlapping bookings: %w", ErrInternal, err)
			}
		}

		input := availability.Input{
			Service:  service,
			Employee: assignee,
			Bookings: overlapping,
			Now:      now,
			Policy:   req.Policy,
		}
		if err := availability.ValidateInterval(input, next, current.ID); err != nil {
			return err
		}

		updated := current.Clone()
		updated.StartTime = next.Start
		updated.EndTime = next.End

		saved, err = uc.bookingRepo.Save(txCtx, updated, current.Version)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrVersionConflict) {
				return ErrBookingChanged
			}
			return fmt.Errorf("%w: failed to save booking: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, uc.mapTxError(booking.ID, err)
	}

	// 7. Публикуем событие; ошибка публикации не откатывает запись
	event := domain.NewBookingRescheduled(saved.ID, previous, saved.Interval(), req.ActorID, now)
	if err := uc.events.Publish(ctx, event); err != nil {
		uc.metrics.RecordPublishFailure(event.EventType())
		uc.logger.Error("Reschedule: failed to publish %s for booking id=%d: %v", event.EventType(), saved.ID, err)
	}

	uc.logger.Info("Reschedule: booking id=%d moved to %s, version=%d",
		saved.ID, saved.StartTime.Format(domain.DateTimeFormat), saved.Version)

	return &Response{Booking: saved, Previous: previous, Changed: true}, nil
}

func (uc *UseCase) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("Reschedule: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("Reschedule: failed to get booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
	}
	return booking, nil
}

func (uc *UseCase) authorize(ctx context.Context, actorID int64) error {
	employee, err := uc.directory.GetEmployee(ctx, actorID)
	if err != nil {
		if errors.Is(err, staffClient.ErrEmployeeNotFound) {
			uc.logger.Warn("Reschedule: actor id=%d not found", actorID)
			return ErrUnknownActor
		}
		uc.logger.Error("Reschedule: failed to get actor id=%d: %v", actorID, err)
		return fmt.Errorf("%w: failed to get actor: %v", ErrInternal, err)
	}
	if !authorizer.CanManageBookings(employee.Actor()) {
		uc.logger.Warn("Reschedule: actor id=%d cannot manage bookings", actorID)
		return ErrForbidden
	}
	return nil
}

// mapTxError приводит ошибку транзакции к таксономии и считает конфликты
func (uc *UseCase) mapTxError(bookingID int64, err error) error {
	if txmanager.IsSerializationFailure(err) {
		err = ErrBookingChanged
	}

	switch domain.KindOf(err) {
	case domain.KindConflict:
		uc.metrics.RecordConflict("reschedule")
		uc.logger.Warn("Reschedule: conflict for booking id=%d: %v", bookingID, err)
	case domain.KindInternal:
		uc.logger.Error("Reschedule: transaction failed for booking id=%d: %v", bookingID, err)
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: %w", ErrInternal, err)
		}
	default:
		uc.logger.Warn("Reschedule: booking id=%d rejected: %v", bookingID, err)
	}
	return err
}

package update_booking_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	staffClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-SchedulingService/internal/service/authorizer"
)

// UseCase смена статуса бронирования по таблице переходов
type UseCase struct {
	bookingRepo  BookingRepository
	directory    EmployeeDirectory
	events       EventSink
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	directory EmployeeDirectory,
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
		directory:    directory,
		events:       events,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет смену статуса
// Порядок проверок: бронирование существует, переход допустим, у сотрудника есть право
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateStatus: booking=%d, actor=%d, target=%s", req.BookingID, req.ActorID, req.TargetStatus)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateStatus: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("UpdateStatus: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("UpdateStatus: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
	}

	// 3. Проверяем допустимость перехода
	from := booking.Status
	rule, ok := domain.LookupTransition(from, req.TargetStatus)
	if !ok {
		uc.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for booking id=%d", from, req.TargetStatus, req.BookingID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, from, req.TargetStatus)
	}

	// 4. Проверяем права по актуальным данным справочника
	actor, err := uc.resolveActor(ctx, req.ActorID)
	if err != nil {
		return nil, err
	}
	if !authorizer.HasAny(actor, rule.AnyOf...) {
		uc.logger.Warn("UpdateStatus: actor id=%d has no permission for %s -> %s", req.ActorID, from, req.TargetStatus)
		return nil, fmt.Errorf("%w: %s -> %s", ErrForbidden, from, req.TargetStatus)
	}

	// 5. Применяем переход
	now := uc.timeProvider.Now()
	updated := booking.Clone()
	updated.Status = req.TargetStatus
	updated.Notes = appendNotes(booking.Notes, req.Notes)
	if req.TargetStatus == domain.StatusCancelled {
		updated.CancelledAt = &now
	}
	if err := updated.Validate(); err != nil {
		uc.logger.Warn("UpdateStatus: booking id=%d is invalid after transition: %v", req.BookingID, err)
		return nil, err
	}

	// 6. Сохраняем с проверкой версии
	saved, err := uc.bookingRepo.Save(ctx, updated, booking.Version)
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrVersionConflict):
			uc.metrics.RecordConflict("update_status")
			uc.logger.Warn("UpdateStatus: booking id=%d changed concurrently (version %d)", req.BookingID, booking.Version)
			return nil, ErrBookingChanged
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("UpdateStatus: failed to save booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to save booking: %w", ErrInternal, err)
	}

	uc.metrics.RecordTransition(string(from), string(req.TargetStatus))

	// 7. Публикуем событие; ошибка публикации не откатывает запись
	event := domain.NewBookingStatusChanged(saved.ID, from, saved.Status, req.ActorID, req.NotifyCustomer, now)
	if err := uc.events.Publish(ctx, event); err != nil {
		uc.metrics.RecordPublishFailure(event.EventType())
		uc.logger.Error("UpdateStatus: failed to publish %s for booking id=%d: %v", event.EventType(), saved.ID, err)
	}

	uc.logger.Info("UpdateStatus: booking id=%d moved %s -> %s, version=%d", saved.ID, from, saved.Status, saved.Version)

	return &Response{Booking: saved, FromStatus: from}, nil
}

// resolveActor загружает сотрудника-инициатора
// Неизвестный сотрудник не имеет прав
func (uc *UseCase) resolveActor(ctx context.Context, actorID int64) (domain.Actor, error) {
	employee, err := uc.directory.GetEmployee(ctx, actorID)
	if err != nil {
		if errors.Is(err, staffClient.ErrEmployeeNotFound) {
			uc.logger.Warn("UpdateStatus: actor id=%d not found", actorID)
			return domain.Actor{}, ErrUnknownActor
		}
		uc.logger.Error("UpdateStatus: failed to get actor id=%d: %v", actorID, err)
		return domain.Actor{}, fmt.Errorf("%w: failed to get actor: %v", ErrInternal, err)
	}
	return employee.Actor(), nil
}

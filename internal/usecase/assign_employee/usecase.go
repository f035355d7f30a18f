package assign_employee

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

// UseCase назначение сотрудника на бронирование
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

// Execute назначает сотрудника или снимает назначение
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AssignEmployee: booking=%d, actor=%d, employee=%s", req.BookingID, req.ActorID, formatID(req.EmployeeID))

	// 1. Валидация входных данных и политики
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AssignEmployee: validation failed: %v", err)
		return nil, err
	}
	// Политика ограничивает только назначение, снять сотрудника можно всегда
	if req.EmployeeID != nil && !req.Policy.AssignmentEnabled {
		uc.logger.Warn("AssignEmployee: assignment is disabled by policy")
		return nil, ErrAssignmentDisabled
	}

	// 2. Проверяем права
	if err := uc.authorize(ctx, req.ActorID); err != nil {
		return nil, err
	}

	// 3. Получаем бронирование
	booking, err := uc.getBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	if sameAssignee(booking.EmployeeID, req.EmployeeID) {
		uc.logger.Info("AssignEmployee: booking id=%d already assigned to %s", booking.ID, formatID(req.EmployeeID))
		return &Response{Booking: booking, PreviousEmployeeID: booking.EmployeeID, Changed: false}, nil
	}

	// 4. Проверяем назначаемого сотрудника; снятие назначения разрешено всегда
	var (
		service  *domain.Service
		assignee *domain.Employee
	)
	if req.EmployeeID != nil {
		service, assignee, err = uc.validateAssignee(ctx, booking, *req.EmployeeID)
		if err != nil {
			return nil, err
		}
	}

	// 5. Проверка пересечений и запись в одной транзакции
	var saved *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.getBooking(txCtx, booking.ID)
		if err != nil {
			return err
		}
		if current.Version != booking.Version {
			return ErrBookingChanged
		}

		if assignee != nil {
			overlapping, err := uc.bookingRepo.FindOverlapping(txCtx, assignee.ID, current.StartTime, current.EndTime, &current.ID)
			if err != nil {
				return fmt.Errorf("%w: failed to find overlapping bookings: %w", ErrInternal, err)
			}
			// То же правило, что при переносе и расчёте слотов
			if err := availability.CheckCapacity(service, assignee, current.Interval(), overlapping, current.ID); err != nil {
				return fmt.Errorf("%w: %w", ErrEmployeeBusy, err)
			}
		}

		updated := current.Clone()
		updated.EmployeeID = req.EmployeeID

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

	// 6. Публикуем событие; ошибка публикации не откатывает запись
	event := domain.NewAssignmentChanged(saved.ID, saved.EmployeeID, booking.EmployeeID, req.ActorID, uc.timeProvider.Now())
	if err := uc.events.Publish(ctx, event); err != nil {
		uc.metrics.RecordPublishFailure(event.EventType())
		uc.logger.Error("AssignEmployee: failed to publish %s for booking id=%d: %v", event.EventType(), saved.ID, err)
	}

	uc.logger.Info("AssignEmployee: booking id=%d assigned to %s, version=%d", saved.ID, formatID(saved.EmployeeID), saved.Version)

	return &Response{Booking: saved, PreviousEmployeeID: booking.EmployeeID, Changed: true}, nil
}

// validateAssignee проверяет, что сотрудника можно назначить на бронирование
func (uc *UseCase) validateAssignee(ctx context.Context, booking *domain.Booking, employeeID int64) (*domain.Service, *domain.Employee, error) {
	if booking.IsTerminal() {
		uc.logger.Warn("AssignEmployee: booking id=%d is %s", booking.ID, booking.Status)
		return nil, nil, fmt.Errorf("%w: status %s", ErrBookingTerminal, booking.Status)
	}

	service, err := uc.catalog.GetService(ctx, booking.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Error("AssignEmployee: service id=%d of booking id=%d not found", booking.ServiceID, booking.ID)
			return nil, nil, ErrServiceNotFound
		}
		uc.logger.Error("AssignEmployee: failed to get service id=%d: %v", booking.ServiceID, err)
		return nil, nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}

	if !service.HasEmployee(employeeID) {
		uc.logger.Warn("AssignEmployee: employee id=%d is not assigned to service id=%d", employeeID, service.ID)
		return nil, nil, ErrEmployeeNotAssignedToService
	}

	employee, err := uc.directory.GetEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, staffClient.ErrEmployeeNotFound) {
			uc.logger.Warn("AssignEmployee: employee id=%d not found", employeeID)
			return nil, nil, ErrEmployeeNotFound
		}
		uc.logger.Error("AssignEmployee: failed to get employee id=%d: %v", employeeID, err)
		return nil, nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}

	if !employee.Active {
		uc.logger.Warn("AssignEmployee: employee id=%d is inactive", employeeID)
		return nil, nil, ErrEmployeeInactive
	}

	return service, employee, nil
}

func (uc *UseCase) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("AssignEmployee: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("AssignEmployee: failed to get booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
	}
	return booking, nil
}

func (uc *UseCase) authorize(ctx context.Context, actorID int64) error {
	employee, err := uc.directory.GetEmployee(ctx, actorID)
	if err != nil {
		if errors.Is(err, staffClient.ErrEmployeeNotFound) {
			uc.logger.Warn("AssignEmployee: actor id=%d not found", actorID)
			return ErrUnknownActor
		}
		uc.logger.Error("AssignEmployee: failed to get actor id=%d: %v", actorID, err)
		return fmt.Errorf("%w: failed to get actor: %v", ErrInternal, err)
	}
	if !authorizer.CanManageBookings(employee.Actor()) {
		uc.logger.Warn("AssignEmployee: actor id=%d cannot manage bookings", actorID)
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
		uc.metrics.RecordConflict("assign")
		uc.logger.Warn("AssignEmployee: conflict for booking id=%d: %v", bookingID, err)
	case domain.KindInternal:
		uc.logger.Error("AssignEmployee: transaction failed for booking id=%d: %v", bookingID, err)
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: %w", ErrInternal, err)
		}
	default:
		uc.logger.Warn("AssignEmployee: booking id=%d rejected: %v", bookingID, err)
	}
	return err
}

func formatID(id *int64) string {
	if id == nil {
		return "none"
	}
	return fmt.Sprintf("%d", *id)
}

package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	staffClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// UseCase use case для получения доступных слотов сотрудника по услуге
type UseCase struct {
	bookingRepo  BookingRepository
	catalog      ServiceCatalog
	directory    EmployeeDirectory
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalog ServiceCatalog,
	directory EmployeeDirectory,
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
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: actor=%d, service=%d, employee=%d, date=%s",
		req.ActorID, req.ServiceID, req.EmployeeID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу
	service, err := uc.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Проверяем, что сотрудник закреплён за услугой
	if !service.HasEmployee(req.EmployeeID) {
		uc.logger.Warn("GetAvailableSlots: employee id=%d is not assigned to service id=%d", req.EmployeeID, req.ServiceID)
		return nil, ErrEmployeeNotAssigned
	}

	// 5. Получаем сотрудника и его рабочие часы
	employee, err := uc.directory.GetEmployee(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, staffClient.ErrEmployeeNotFound) {
			uc.logger.Warn("GetAvailableSlots: employee id=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}

	response := &Response{
		Date:       req.Date,
		ServiceID:  req.ServiceID,
		EmployeeID: req.EmployeeID,
		Slots:      []Slot{},
	}

	// Неактивный сотрудник не принимает бронирования
	if !employee.Active {
		uc.logger.Info("GetAvailableSlots: employee id=%d is inactive", req.EmployeeID)
		return response, nil
	}

	// 6. Получаем все активные бронирования сотрудника на эту дату
	dayStart := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, req.Date.Location())
	bookings, err := uc.bookingRepo.GetByEmployeeWithFilter(ctx, domain.EmployeeBookingsFilter{
		EmployeeID:      req.EmployeeID,
		From:            dayStart,
		To:              dayStart.AddDate(0, 0, 1),
		IncludeInactive: false,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 7. Вычисляем слоты
	started := time.Now()
	slots := availability.ComputeSlots(availability.Input{
		Service:  service,
		Employee: employee,
		Date:     dayStart,
		Bookings: bookings,
		Now:      now,
		Policy:   req.Policy,
	})
	outcome := "ok"
	if len(slots) == 0 {
		outcome = "empty"
	}
	uc.metrics.ObserveSlotsCompute(outcome, time.Since(started))

	for _, s := range slots {
		response.Slots = append(response.Slots, Slot{
			StartTime:       types.NewTimeString(s.Start),
			EndTime:         types.NewTimeString(s.End),
			DurationMinutes: service.DurationMinutes,
			AvailableSpots:  s.AvailableSpots,
			TotalSpots:      s.TotalSpots,
		})
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for service=%d, employee=%d, date=%s",
		len(response.Slots), req.ServiceID, req.EmployeeID, req.Date.Format(domain.DateFormat))

	return response, nil
}

package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-SchedulingService/internal/service/authorizer"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

// Service сервис чтения бронирований и календаря
type Service struct {
	bookingRepo BookingRepository
	directory   EmployeeDirectory
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	directory EmployeeDirectory,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		directory:   directory,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Сотрудник с view_own_bookings видит только назначенные ему бронирования
func (s *Service) GetByID(ctx context.Context, id int64, actorID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for actor=%d", id, actorID)

	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		s.logger.Warn("GetByID: actor=%d rejected: %v", actorID, err)
		return nil, err
	}
	if !authorizer.CanViewBookings(actor) {
		s.logger.Warn("GetByID: actor=%d cannot view bookings", actorID)
		return nil, ErrAccessDenied
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := checkViewAccess(actor, booking.EmployeeID); err != nil {
		s.logger.Warn("GetByID: access denied for actor=%d to booking id=%d", actorID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetEmployeeCalendar строит календарь сотрудника за период
func (s *Service) GetEmployeeCalendar(ctx context.Context, req *models.GetCalendarRequest) (*models.CalendarResponse, error) {
	if req == nil || req.EmployeeID <= 0 {
		return nil, fmt.Errorf("%w: employee id is required", ErrInvalidInput)
	}
	s.logger.Info("GetEmployeeCalendar: employee=%d from=%s to=%s actor=%d",
		req.EmployeeID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat), req.ActorID)

	from := truncateToDay(req.From)
	to := truncateToDay(req.To).AddDate(0, 0, 1)
	if req.From.IsZero() || req.To.IsZero() || !from.Before(to) {
		return nil, fmt.Errorf("%w: from must not be after to", ErrInvalidTimeRange)
	}
	if to.Sub(from) > domain.MaxCalendarRangeDays*dayDuration {
		return nil, fmt.Errorf("%w: range exceeds %d days", ErrInvalidTimeRange, domain.MaxCalendarRangeDays)
	}

	actor, err := s.resolveActor(ctx, req.ActorID)
	if err != nil {
		s.logger.Warn("GetEmployeeCalendar: actor=%d rejected: %v", req.ActorID, err)
		return nil, err
	}
	if !authorizer.CanViewBookings(actor) {
		return nil, ErrAccessDenied
	}
	employeeID := req.EmployeeID
	if err := checkViewAccess(actor, &employeeID); err != nil {
		s.logger.Warn("GetEmployeeCalendar: actor=%d cannot view calendar of employee=%d", req.ActorID, req.EmployeeID)
		return nil, err
	}

	employee, err := s.directory.GetEmployee(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, staffservice.ErrEmployeeNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("GetEmployeeCalendar: directory error for employee=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: GetEmployeeCalendar - directory error: %v", ErrInternal, err)
	}

	bookings, err := s.bookingRepo.GetByEmployeeWithFilter(ctx, domain.EmployeeBookingsFilter{
		EmployeeID: req.EmployeeID,
		From:       from,
		To:         to,
	})
	if err != nil {
		s.logger.Error("GetEmployeeCalendar: repository error for employee=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: GetEmployeeCalendar - repository error: %v", ErrInternal, err)
	}

	events := BuildCalendar(employee, bookings, from, to)
	resp := &models.CalendarResponse{
		EmployeeID: req.EmployeeID,
		From:       from.Format(domain.DateFormat),
		To:         to.AddDate(0, 0, -1).Format(domain.DateFormat),
		Events:     make([]models.CalendarEventResponse, 0, len(events)),
	}
	for _, e := range events {
		resp.Events = append(resp.Events, models.FromCalendarEvent(e))
	}

	s.logger.Info("GetEmployeeCalendar: built %d events for employee=%d", len(resp.Events), req.EmployeeID)
	return resp, nil
}

// GetCapabilities возвращает флаги возможностей сотрудника
// Флаги носят рекомендательный характер, сервер проверяет права при каждой мутации
func (s *Service) GetCapabilities(ctx context.Context, actorID int64) (*models.CapabilitiesResponse, error) {
	employee, err := s.directory.GetEmployee(ctx, actorID)
	if err != nil {
		if errors.Is(err, staffservice.ErrEmployeeNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("GetCapabilities: directory error for actor=%d: %v", actorID, err)
		return nil, fmt.Errorf("%w: GetCapabilities - directory error: %v", ErrInternal, err)
	}

	actor := employee.Actor()
	return models.FromCapabilities(actor, authorizer.Default.CapabilitiesOf(actor)), nil
}

func (s *Service) resolveActor(ctx context.Context, actorID int64) (domain.Actor, error) {
	employee, err := s.directory.GetEmployee(ctx, actorID)
	if err != nil {
		if errors.Is(err, staffservice.ErrEmployeeNotFound) {
			return domain.Actor{}, ErrAccessDenied
		}
		return domain.Actor{}, fmt.Errorf("%w: directory error: %v", ErrInternal, err)
	}
	return employee.Actor(), nil
}

// checkViewAccess проверяет, что сотрудник видит бронирования указанного исполнителя
func checkViewAccess(actor domain.Actor, employeeID *int64) error {
	if authorizer.HasPermission(actor, domain.PermViewAllBookings) {
		return nil
	}
	if employeeID != nil && *employeeID == actor.ID {
		return nil
	}
	return ErrAccessDenied
}

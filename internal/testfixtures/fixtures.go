package testfixtures

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Monday следующий после ReferenceTime рабочий день
var Monday = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

// At возвращает момент времени HH:MM в указанный день
func At(day time.Time, hhmm string) time.Time {
	return types.MustTimeString(hhmm).On(day)
}

// Weekdays понедельник-пятница
var Weekdays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}

// Service услуга 60 минут, 09:00-17:00 по будням, буфер после 15 минут
func Service(id int64, employeeIDs ...int64) *domain.Service {
	return &domain.Service{
		ID:                  id,
		Name:                "Grooming",
		DurationMinutes:     60,
		AvailableDays:       Weekdays,
		DailyStartTime:      "09:00",
		DailyEndTime:        "17:00",
		BufferAfterMinutes:  15,
		MaxBookingsPerSlot:  1,
		AdvanceBookingDays:  30,
		AssignedEmployeeIDs: employeeIDs,
	}
}

// WeekdaySchedule расписание по будням с обедом 13:00-14:00
func WeekdaySchedule(start, end types.TimeString) domain.WeeklySchedule {
	schedule := domain.WeeklySchedule{}
	for _, wd := range Weekdays {
		schedule[wd] = domain.WorkingDay{
			Available: true,
			Start:     start,
			End:       end,
			Breaks:    []domain.BreakPeriod{{Start: "13:00", End: "14:00", Label: "lunch"}},
		}
	}
	return schedule
}

// Employee активный сотрудник с указанными правами и будничным графиком 08:00-18:00
func Employee(id int64, role domain.Role, perms ...domain.Permission) *domain.Employee {
	return &domain.Employee{
		ID:           id,
		Name:         "employee",
		Role:         role,
		Permissions:  domain.NewPermissionSet(perms...),
		Active:       true,
		WorkingHours: WeekdaySchedule("08:00", "18:00"),
	}
}

// Booking бронирование услуги с версией 1
func Booking(id, serviceID int64, employeeID *int64, start time.Time, duration time.Duration, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:         id,
		ServiceID:  serviceID,
		EmployeeID: employeeID,
		CustomerID: 1000 + id,
		StartTime:  start,
		EndTime:    start.Add(duration),
		Status:     status,
		Version:    1,
		CreatedAt:  ReferenceTime().Add(-24 * time.Hour),
		UpdatedAt:  ReferenceTime().Add(-24 * time.Hour),
	}
}

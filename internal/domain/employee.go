package domain

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Employee сотрудник компании
type Employee struct {
	ID           int64
	Name         string
	Role         Role
	Permissions  PermissionSet
	Active       bool
	WorkingHours WeeklySchedule
}

// Actor возвращает срез сотрудника, используемый для авторизации
func (e *Employee) Actor() Actor {
	return Actor{
		ID:          e.ID,
		Role:        e.Role,
		Permissions: e.Permissions,
		Active:      e.Active,
	}
}

// BreakPeriod перерыв внутри рабочего дня
type BreakPeriod struct {
	Start types.TimeString
	End   types.TimeString
	Label string
}

// WorkingDay рабочие часы сотрудника в конкретный день недели
type WorkingDay struct {
	Available bool
	Start     types.TimeString
	End       types.TimeString
	Breaks    []BreakPeriod
}

// IsOpen возвращает true, если в этот день сотрудник работает и часы заданы корректно
func (d WorkingDay) IsOpen() bool {
	return d.Available && !d.Start.IsZero() && !d.End.IsZero() && d.Start.IsBefore(d.End)
}

// WeeklySchedule недельное расписание сотрудника
// Отсутствующий день недели означает выходной
type WeeklySchedule map[time.Weekday]WorkingDay

// For возвращает расписание на день недели
func (w WeeklySchedule) For(weekday time.Weekday) WorkingDay {
	day, ok := w[weekday]
	if !ok {
		return WorkingDay{Available: false}
	}
	return day
}

package staffservice

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

func toWeeklySchedule(wh WorkingHours) (domain.WeeklySchedule, error) {
	days := map[time.Weekday]*DaySchedule{
		time.Monday:    wh.Monday,
		time.Tuesday:   wh.Tuesday,
		time.Wednesday: wh.Wednesday,
		time.Thursday:  wh.Thursday,
		time.Friday:    wh.Friday,
		time.Saturday:  wh.Saturday,
		time.Sunday:    wh.Sunday,
	}

	schedule := make(domain.WeeklySchedule, len(days))
	for weekday, day := range days {
		if day == nil || !day.IsAvailable {
			continue
		}
		wd, err := toWorkingDay(day)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", weekday, err)
		}
		schedule[weekday] = wd
	}
	return schedule, nil
}

func toWorkingDay(day *DaySchedule) (domain.WorkingDay, error) {
	if day.Start == nil || day.End == nil {
		return domain.WorkingDay{}, fmt.Errorf("start and end are required for an available day")
	}

	start, err := types.NewTimeStringFromString(*day.Start)
	if err != nil {
		return domain.WorkingDay{}, err
	}
	end, err := types.NewTimeStringFromString(*day.End)
	if err != nil {
		return domain.WorkingDay{}, err
	}

	breaks := make([]domain.BreakPeriod, 0, len(day.Breaks))
	for _, b := range day.Breaks {
		bs, err := types.NewTimeStringFromString(b.Start)
		if err != nil {
			return domain.WorkingDay{}, err
		}
		be, err := types.NewTimeStringFromString(b.End)
		if err != nil {
			return domain.WorkingDay{}, err
		}
		breaks = append(breaks, domain.BreakPeriod{Start: bs, End: be, Label: b.Label})
	}

	return domain.WorkingDay{Available: true, Start: start, End: end, Breaks: breaks}, nil
}

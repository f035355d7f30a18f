package availability

import (
	"math/rand"
	"testing"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2 марта 2026 года - понедельник
var monday = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

func on(day time.Time, hhmm string) time.Time {
	return types.MustTimeString(hhmm).On(day)
}

func newService() *domain.Service {
	return &domain.Service{
		ID:                  10,
		DurationMinutes:     60,
		AvailableDays:       []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		DailyStartTime:      "09:00",
		DailyEndTime:        "17:00",
		BufferAfterMinutes:  15,
		MaxBookingsPerSlot:  1,
		AdvanceBookingDays:  30,
		AssignedEmployeeIDs: []int64{7},
	}
}

func newEmployee(start, end types.TimeString) *domain.Employee {
	schedule := domain.WeeklySchedule{}
	for _, wd := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday} {
		schedule[wd] = domain.WorkingDay{Available: true, Start: start, End: end}
	}
	return &domain.Employee{ID: 7, Role: domain.RoleEmployee, Active: true, WorkingHours: schedule}
}

func booking(id int64, employeeID int64, start, end time.Time, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:         id,
		ServiceID:  10,
		EmployeeID: ptr.Ptr(employeeID),
		StartTime:  start,
		EndTime:    end,
		Status:     status,
	}
}

func baseInput() Input {
	return Input{
		Service:  newService(),
		Employee: newEmployee("08:00", "18:00"),
		Date:     monday,
		Now:      monday.AddDate(0, 0, -1).Add(12 * time.Hour),
		Policy:   domain.DefaultPolicy(),
	}
}

func starts(slots []domain.TimeSlot) []string {
	result := make([]string, len(slots))
	for i, s := range slots {
		result[i] = s.Start.Format(domain.TimeFormat)
	}
	return result
}

func TestComputeSlots_Grid(t *testing.T) {
	slots := ComputeSlots(baseInput())

	assert.Equal(t, []string{"09:00", "10:15", "11:30", "12:45", "14:00", "15:15"}, starts(slots))
	for _, s := range slots {
		assert.Equal(t, time.Hour, s.End.Sub(s.Start))
		assert.Equal(t, 1, s.AvailableSpots)
		assert.Equal(t, 1, s.TotalSpots)
	}
}

func TestComputeSlots_BufferBefore(t *testing.T) {
	in := baseInput()
	in.Service.BufferBeforeMinutes = 30

	assert.Equal(t, []string{"09:30", "10:45", "12:00", "13:15", "14:30", "15:45"}, starts(ComputeSlots(in)))
}

func TestComputeSlots_EmployeeHoursNarrowWindow(t *testing.T) {
	in := baseInput()
	in.Employee = newEmployee("10:00", "14:00")

	assert.Equal(t, []string{"10:00", "11:15", "12:30"}, starts(ComputeSlots(in)))
}

func TestComputeSlots_Capacity(t *testing.T) {
	in := baseInput()
	in.Bookings = []*domain.Booking{
		booking(1, 7, on(monday, "10:15"), on(monday, "11:15"), domain.StatusConfirmed),
		// касается слота 12:45 границей, не пересекается
		booking(2, 7, on(monday, "12:00"), on(monday, "12:45"), domain.StatusPending),
		booking(3, 7, on(monday, "14:00"), on(monday, "15:00"), domain.StatusCancelled),
		booking(4, 8, on(monday, "15:15"), on(monday, "16:15"), domain.StatusConfirmed),
	}

	assert.Equal(t, []string{"09:00", "12:45", "14:00", "15:15"}, starts(ComputeSlots(in)))
}

func TestComputeSlots_PartialCapacity(t *testing.T) {
	in := baseInput()
	in.Service.MaxBookingsPerSlot = 2
	in.Bookings = []*domain.Booking{
		booking(1, 7, on(monday, "09:00"), on(monday, "10:00"), domain.StatusConfirmed),
		booking(2, 7, on(monday, "09:30"), on(monday, "10:30"), domain.StatusConfirmed),
		booking(3, 7, on(monday, "11:30"), on(monday, "12:30"), domain.StatusInProgress),
	}

	slots := ComputeSlots(in)
	require.Equal(t, []string{"10:15", "11:30", "12:45", "14:00", "15:15"}, starts(slots))
	assert.Equal(t, 1, slots[0].AvailableSpots)
	assert.Equal(t, 1, slots[1].AvailableSpots)
	assert.Equal(t, 2, slots[2].AvailableSpots)
}

func TestComputeSlots_OtherServiceBlocksSlot(t *testing.T) {
	in := baseInput()
	in.Service.MaxBookingsPerSlot = 2
	bath := booking(1, 7, on(monday, "10:15"), on(monday, "11:15"), domain.StatusConfirmed)
	bath.ServiceID = 20
	in.Bookings = []*domain.Booking{
		bath,
		booking(2, 7, on(monday, "14:00"), on(monday, "15:00"), domain.StatusConfirmed),
	}

	slots := ComputeSlots(in)
	require.Equal(t, []string{"09:00", "11:30", "12:45", "14:00", "15:15"}, starts(slots))
	assert.Equal(t, 1, slots[3].AvailableSpots)
}

func TestComputeSlots_EmptyDays(t *testing.T) {
	tests := []struct {
		name   string
		modify func(in *Input)
	}{
		{name: "date in the past", modify: func(in *Input) { in.Now = monday.AddDate(0, 0, 1) }},
		{name: "beyond horizon", modify: func(in *Input) { in.Now = monday.AddDate(0, 0, -31) }},
		{name: "policy caps horizon", modify: func(in *Input) {
			in.Now = monday.AddDate(0, 0, -10)
			in.Policy.MaxAdvanceBookingDays = 7
		}},
		{name: "service not offered on weekday", modify: func(in *Input) {
			in.Service.AvailableDays = []time.Weekday{time.Tuesday}
		}},
		{name: "employee day off", modify: func(in *Input) { delete(in.Employee.WorkingHours, time.Monday) }},
		{name: "windows do not intersect", modify: func(in *Input) { in.Employee = newEmployee("17:00", "20:00") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInput()
			tt.modify(&in)
			assert.Empty(t, ComputeSlots(in))
		})
	}
}

func TestComputeSlots_SameDayOnly(t *testing.T) {
	in := baseInput()
	in.Service.AdvanceBookingDays = 0
	in.Now = on(monday, "11:00")

	assert.Equal(t, []string{"11:30", "12:45", "14:00", "15:15"}, starts(ComputeSlots(in)))

	in.Date = monday.AddDate(0, 0, 1)
	assert.Empty(t, ComputeSlots(in))
}

func TestComputeSlots_Deterministic(t *testing.T) {
	in := baseInput()
	in.Service.MaxBookingsPerSlot = 2
	in.Bookings = []*domain.Booking{
		booking(1, 7, on(monday, "09:30"), on(monday, "10:30"), domain.StatusConfirmed),
		booking(2, 7, on(monday, "09:00"), on(monday, "13:00"), domain.StatusConfirmed),
		booking(3, 7, on(monday, "12:50"), on(monday, "13:10"), domain.StatusPending),
	}
	first := ComputeSlots(in)

	reversed := in
	reversed.Bookings = []*domain.Booking{in.Bookings[2], in.Bookings[1], in.Bookings[0]}

	assert.Equal(t, first, ComputeSlots(reversed))
	assert.Equal(t, first, ComputeSlots(in))
}

func TestComputeSlots_SlotsInsideWindow(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))

	for i := 0; i < 50; i++ {
		in := baseInput()
		in.Service.DurationMinutes = 15 + rnd.Intn(120)
		in.Service.BufferBeforeMinutes = rnd.Intn(30)
		in.Service.BufferAfterMinutes = rnd.Intn(30)

		windowStart, windowEnd := on(monday, "09:00"), on(monday, "17:00")
		for _, s := range ComputeSlots(in) {
			assert.False(t, s.Start.Before(windowStart.Add(time.Duration(in.Service.BufferBeforeMinutes)*time.Minute)))
			assert.False(t, s.End.After(windowEnd))
			assert.Equal(t, in.Service.Duration(), s.End.Sub(s.Start))
		}
	}
}

func TestCountOverlaps_MatchesNaive(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))

	for round := 0; round < 20; round++ {
		bookings := make([]domain.Interval, 0, 30)
		for i := 0; i < 30; i++ {
			start := on(monday, "08:00").Add(time.Duration(rnd.Intn(600)) * time.Minute)
			bookings = append(bookings, domain.Interval{Start: start, End: start.Add(time.Duration(5+rnd.Intn(90)) * time.Minute)})
		}
		records := make([]*domain.Booking, 0, len(bookings))
		for i, b := range bookings {
			records = append(records, booking(int64(i+1), 1, b.Start, b.End, domain.StatusConfirmed))
		}
		sorted, other := employeeBookings(newService(), &domain.Employee{ID: 1}, records, 0)
		require.Empty(t, other)

		candidates := generateCandidates(&domain.Service{DurationMinutes: 45, BufferAfterMinutes: 10},
			monday, on(monday, "08:00"), on(monday, "19:00"))
		counts := countOverlaps(candidates, sorted)

		for i, c := range candidates {
			naive := 0
			for _, b := range bookings {
				if b.Overlaps(c) {
					naive++
				}
			}
			require.Equal(t, naive, counts[i], "round %d candidate %s", round, c.Start.Format(domain.TimeFormat))
		}
	}
}

func TestValidateInterval(t *testing.T) {
	in := baseInput()
	in.Bookings = []*domain.Booking{
		booking(1, 7, on(monday, "10:15"), on(monday, "11:15"), domain.StatusConfirmed),
		booking(2, 7, on(monday, "14:00"), on(monday, "15:00"), domain.StatusConfirmed),
	}

	tests := []struct {
		name      string
		start     string
		end       string
		excludeID int64
		wantErr   error
	}{
		{name: "free grid slot", start: "09:00", end: "10:00"},
		{name: "free off-grid interval", start: "12:00", end: "13:00"},
		{name: "moving booking onto itself", start: "10:30", end: "11:30", excludeID: 1},
		{name: "overlaps another booking", start: "10:30", end: "11:30", excludeID: 2, wantErr: ErrSlotFull},
		{name: "wrong duration", start: "09:00", end: "09:30", wantErr: ErrInvalidDuration},
		{name: "ends after window", start: "16:30", end: "17:30", wantErr: ErrOutsideWindow},
		{name: "starts before window", start: "08:30", end: "09:30", wantErr: ErrOutsideWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInterval(in, domain.Interval{Start: on(monday, tt.start), End: on(monday, tt.end)}, tt.excludeID)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateInterval_ErrorKinds(t *testing.T) {
	in := baseInput()
	in.Bookings = []*domain.Booking{booking(1, 7, on(monday, "09:00"), on(monday, "10:00"), domain.StatusConfirmed)}

	err := ValidateInterval(in, domain.Interval{Start: on(monday, "09:00"), End: on(monday, "10:00")}, 0)
	assert.ErrorIs(t, err, domain.ErrConflict)

	tuesday := monday.AddDate(0, 0, 1)
	in.Service.AvailableDays = []time.Weekday{time.Monday}
	err = ValidateInterval(in, domain.Interval{Start: on(tuesday, "09:00"), End: on(tuesday, "10:00")}, 0)
	assert.ErrorIs(t, err, domain.ErrValidation)

	in.Now = on(monday, "09:30")
	err = ValidateInterval(in, domain.Interval{Start: on(monday, "09:00"), End: on(monday, "10:00")}, 1)
	assert.ErrorIs(t, err, ErrStartInPast)
}

func TestCheckCapacity_OverlapRule(t *testing.T) {
	service := newService()
	service.MaxBookingsPerSlot = 2
	employee := newEmployee("08:00", "18:00")
	target := domain.Interval{Start: on(monday, "10:00"), End: on(monday, "11:00")}

	sameService := booking(1, 7, on(monday, "10:30"), on(monday, "11:30"), domain.StatusConfirmed)
	secondSame := booking(2, 7, on(monday, "09:30"), on(monday, "10:30"), domain.StatusPending)
	otherService := booking(3, 7, on(monday, "10:30"), on(monday, "11:30"), domain.StatusConfirmed)
	otherService.ServiceID = 20
	cancelledOther := booking(4, 7, on(monday, "10:00"), on(monday, "11:00"), domain.StatusCancelled)
	cancelledOther.ServiceID = 20

	tests := []struct {
		name     string
		bookings []*domain.Booking
		wantErr  error
	}{
		{name: "same service within capacity", bookings: []*domain.Booking{sameService}},
		{name: "same service at capacity", bookings: []*domain.Booking{sameService, secondSame}, wantErr: ErrSlotFull},
		{name: "other service always conflicts", bookings: []*domain.Booking{otherService}, wantErr: ErrEmployeeBusy},
		{name: "inactive other service ignored", bookings: []*domain.Booking{cancelledOther}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCapacity(service, employee, target, tt.bookings, 0)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrConflict)
		})
	}
}

func TestValidateInterval_WithoutEmployee(t *testing.T) {
	in := baseInput()
	in.Employee = nil
	in.Bookings = []*domain.Booking{booking(1, 7, on(monday, "09:00"), on(monday, "10:00"), domain.StatusConfirmed)}

	assert.NoError(t, ValidateInterval(in, domain.Interval{Start: on(monday, "09:00"), End: on(monday, "10:00")}, 0))
}

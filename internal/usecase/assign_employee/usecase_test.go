package assign_employee

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/testfixtures"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

const (
	serviceID = int64(10)
	anna      = int64(7)
	boris     = int64(8)
	outsider  = int64(9) // не закреплён за услугой
	retired   = int64(11)
	managerID = int64(1)
	canceller = int64(2)
	viewerID  = int64(4)
	unknownID = int64(12)
	bookingID = int64(100)
	otherID   = int64(101)
	bathID    = int64(20) // вторая услуга сотрудника boris
)

type env struct {
	uc      *UseCase
	store   *testfixtures.BookingStore
	service *domain.Service
	events  *testfixtures.EventRecorder
	metrics *metrics.Metrics
}

func newEnv(bookings ...*domain.Booking) *env {
	inactive := testfixtures.Employee(retired, domain.RoleEmployee)
	inactive.Active = false

	directory := testfixtures.NewDirectory(
		testfixtures.Employee(anna, domain.RoleEmployee, domain.PermStartBooking),
		testfixtures.Employee(boris, domain.RoleEmployee, domain.PermStartBooking),
		testfixtures.Employee(outsider, domain.RoleEmployee),
		testfixtures.Employee(managerID, domain.RoleManager),
		testfixtures.Employee(canceller, domain.RoleEmployee, domain.PermCancelBooking),
		testfixtures.Employee(viewerID, domain.RoleViewer, domain.PermViewAllBookings),
		inactive,
	)
	e := &env{
		store:   testfixtures.NewBookingStore(bookings...),
		service: testfixtures.Service(serviceID, anna, boris, retired, unknownID),
		events:  testfixtures.NewEventRecorder(),
		metrics: metrics.NewWithRegisterer(prometheus.NewRegistry(), "test"),
	}
	e.uc = NewUseCase(
		e.store,
		testfixtures.NewCatalog(e.service, testfixtures.Service(bathID, boris)),
		directory,
		&testfixtures.TxManager{},
		e.events,
		e.metrics,
		testfixtures.NewClock(time.Time{}),
		logger.NewNop(),
	)
	return e
}

func bookingAt(id int64, employeeID *int64, hhmm string, status domain.BookingStatus) *domain.Booking {
	return testfixtures.Booking(id, serviceID, employeeID, testfixtures.At(testfixtures.Monday, hhmm), time.Hour, status)
}

func assign(actor int64, employee *int64) *Request {
	return &Request{BookingID: bookingID, ActorID: actor, EmployeeID: employee, Policy: domain.DefaultPolicy()}
}

func TestAssign_Success(t *testing.T) {
	e := newEnv(bookingAt(bookingID, ptr.Ptr(anna), "10:00", domain.StatusConfirmed))

	resp, err := e.uc.Execute(context.Background(), assign(canceller, ptr.Ptr(boris)))
	require.NoError(t, err)

	assert.True(t, resp.Changed)
	assert.Equal(t, boris, *resp.Booking.EmployeeID)
	assert.Equal(t, anna, *resp.PreviousEmployeeID)
	assert.Equal(t, int64(2), e.store.Get(bookingID).Version)

	events := e.events.Events()
	require.Len(t, events, 1)
	changed, ok := events[0].(*domain.AssignmentChanged)
	require.True(t, ok)
	assert.Equal(t, bookingID, changed.BookingID)
	assert.Equal(t, boris, *changed.EmployeeID)
	assert.Equal(t, anna, *changed.PreviousEmployeeID)
}

func TestAssign_UnassignAlwaysSucceeds(t *testing.T) {
	for _, status := range domain.AllStatuses {
		e := newEnv(bookingAt(bookingID, ptr.Ptr(anna), "10:00", status))

		resp, err := e.uc.Execute(context.Background(), assign(managerID, nil))
		require.NoError(t, err, status)
		assert.Nil(t, resp.Booking.EmployeeID)
		assert.Nil(t, e.store.Get(bookingID).EmployeeID)
	}
}

func TestAssign_OverlapIsConflict(t *testing.T) {
	e := newEnv(
		bookingAt(bookingID, nil, "10:00", domain.StatusPending),
		bookingAt(otherID, ptr.Ptr(boris), "10:30", domain.StatusConfirmed),
	)

	_, err := e.uc.Execute(context.Background(), assign(managerID, ptr.Ptr(boris)))
	require.ErrorIs(t, err, ErrEmployeeBusy)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Nil(t, e.store.Get(bookingID).EmployeeID)
	assert.Equal(t, 1.0, testutil.ToFloat64(e.metrics.BookingConflicts.WithLabelValues("assign")))
}

func TestAssign_SameServiceOverlapWithinCapacity(t *testing.T) {
	e := newEnv(
		bookingAt(bookingID, nil, "10:00", domain.StatusPending),
		bookingAt(otherID, ptr.Ptr(boris), "10:30", domain.StatusConfirmed),
	)
	e.service.MaxBookingsPerSlot = 2

	resp, err := e.uc.Execute(context.Background(), assign(managerID, ptr.Ptr(boris)))
	require.NoError(t, err)
	assert.Equal(t, boris, *resp.Booking.EmployeeID)
}

func TestAssign_OtherServiceOverlapIsConflict(t *testing.T) {
	bath := testfixtures.Booking(otherID, bathID, ptr.Ptr(boris),
		testfixtures.At(testfixtures.Monday, "10:30"), time.Hour, domain.StatusConfirmed)
	e := newEnv(bookingAt(bookingID, nil, "10:00", domain.StatusPending), bath)
	e.service.MaxBookingsPerSlot = 2

	_, err := e.uc.Execute(context.Background(), assign(managerID, ptr.Ptr(boris)))
	require.ErrorIs(t, err, ErrEmployeeBusy)
	assert.ErrorIs(t, err, availability.ErrEmployeeBusy)
	assert.Equal(t, 0, e.store.Saves())
}

func TestAssign_IgnoresInactiveAndTouchingBookings(t *testing.T) {
	e := newEnv(
		bookingAt(bookingID, nil, "10:00", domain.StatusPending),
		bookingAt(otherID, ptr.Ptr(boris), "10:30", domain.StatusCancelled),
		bookingAt(102, ptr.Ptr(boris), "11:00", domain.StatusConfirmed),
		bookingAt(103, ptr.Ptr(boris), "09:00", domain.StatusNoShow),
	)

	_, err := e.uc.Execute(context.Background(), assign(managerID, ptr.Ptr(boris)))
	assert.NoError(t, err)
}

func TestAssign_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		actor    int64
		employee *int64
		status   domain.BookingStatus
		wantErr  error
	}{
		{name: "viewer cannot assign", actor: viewerID, employee: ptr.Ptr(boris), wantErr: domain.ErrPermissionDenied},
		{name: "viewer cannot unassign", actor: viewerID, employee: nil, wantErr: domain.ErrPermissionDenied},
		{name: "unknown actor", actor: 404, employee: ptr.Ptr(boris), wantErr: ErrUnknownActor},
		{name: "not assigned to service", actor: managerID, employee: ptr.Ptr(outsider), wantErr: ErrEmployeeNotAssignedToService},
		{name: "unknown employee", actor: managerID, employee: ptr.Ptr(unknownID), wantErr: ErrEmployeeNotFound},
		{name: "inactive employee", actor: managerID, employee: ptr.Ptr(retired), wantErr: ErrEmployeeInactive},
		{name: "terminal booking", actor: managerID, employee: ptr.Ptr(boris), status: domain.StatusCompleted,
			wantErr: domain.ErrInvalidStateTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := tt.status
			if status == "" {
				status = domain.StatusConfirmed
			}
			e := newEnv(bookingAt(bookingID, ptr.Ptr(anna), "10:00", status))

			_, err := e.uc.Execute(context.Background(), assign(tt.actor, tt.employee))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, e.store.Saves())
		})
	}
}

func TestAssign_ValidationKinds(t *testing.T) {
	e := newEnv(bookingAt(bookingID, nil, "10:00", domain.StatusPending))

	_, err := e.uc.Execute(context.Background(), assign(managerID, ptr.Ptr(outsider)))
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	req := assign(managerID, ptr.Ptr(anna))
	req.Policy.AssignmentEnabled = false
	_, err = e.uc.Execute(context.Background(), req)
	assert.Equal(t, domain.KindPermissionDenied, domain.KindOf(err))
}

func TestAssign_UnassignIgnoresDisabledPolicy(t *testing.T) {
	e := newEnv(bookingAt(bookingID, ptr.Ptr(anna), "10:00", domain.StatusConfirmed))
	req := assign(managerID, nil)
	req.Policy.AssignmentEnabled = false

	resp, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Changed)
	assert.Nil(t, e.store.Get(bookingID).EmployeeID)

	req = assign(managerID, ptr.Ptr(boris))
	req.Policy.AssignmentEnabled = false
	_, err = e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAssignmentDisabled)
}

func TestAssign_SameEmployeeIsNoop(t *testing.T) {
	e := newEnv(bookingAt(bookingID, ptr.Ptr(anna), "10:00", domain.StatusConfirmed))

	resp, err := e.uc.Execute(context.Background(), assign(managerID, ptr.Ptr(anna)))
	require.NoError(t, err)
	assert.False(t, resp.Changed)
	assert.Equal(t, 0, e.store.Saves())
	assert.Empty(t, e.events.Events())
}

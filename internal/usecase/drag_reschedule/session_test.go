package drag_reschedule

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/testfixtures"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

const (
	serviceID = int64(10)
	groomerID = int64(7)
	managerID = int64(1)
	viewerID  = int64(4)
)

type env struct {
	engine *Engine
	store  *testfixtures.BookingStore
	events *testfixtures.EventRecorder
}

func newEnv(bookings ...*domain.Booking) *env {
	store := testfixtures.NewBookingStore(bookings...)
	catalog := testfixtures.NewCatalog(testfixtures.Service(serviceID, groomerID))
	events := testfixtures.NewEventRecorder()
	directory := testfixtures.NewDirectory(
		testfixtures.Employee(groomerID, domain.RoleEmployee, domain.PermStartBooking),
		testfixtures.Employee(managerID, domain.RoleManager),
		testfixtures.Employee(viewerID, domain.RoleViewer, domain.PermViewAllBookings),
	)
	rescheduler := reschedule_booking.NewUseCase(
		store, catalog, directory, &testfixtures.TxManager{}, events,
		metrics.NewWithRegisterer(prometheus.NewRegistry(), "test"),
		testfixtures.NewClock(time.Time{}), logger.NewNop(),
	)
	return &env{
		engine: NewEngine(store, catalog, rescheduler, logger.NewNop()),
		store:  store,
		events: events,
	}
}

func groomerBooking(id int64, hhmm string) *domain.Booking {
	return testfixtures.Booking(id, serviceID, ptr.Ptr(groomerID),
		testfixtures.At(testfixtures.Monday, hhmm), time.Hour, domain.StatusConfirmed)
}

func TestSnapOffset(t *testing.T) {
	step := 75 * time.Minute
	tests := []struct {
		offset time.Duration
		want   time.Duration
	}{
		{0, 0},
		{30 * time.Minute, 0},
		{37 * time.Minute, 0},
		{38 * time.Minute, 75 * time.Minute},
		{70 * time.Minute, 75 * time.Minute},
		{140 * time.Minute, 150 * time.Minute},
		{-30 * time.Minute, 0},
		{-40 * time.Minute, -75 * time.Minute},
		{-150 * time.Minute, -150 * time.Minute},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SnapOffset(tt.offset, step), tt.offset)
	}
	assert.Equal(t, time.Duration(0), SnapOffset(time.Hour, 0))
}

func TestSession_MoveIsShadowOnly(t *testing.T) {
	e := newEnv(groomerBooking(100, "10:00"))

	session, err := e.engine.Begin(context.Background(), 100, managerID, domain.DefaultPolicy())
	require.NoError(t, err)
	assert.Equal(t, 75*time.Minute, session.Step())

	shadow := session.Move(40 * time.Minute)
	assert.Equal(t, testfixtures.At(testfixtures.Monday, "10:40"), shadow.Start)
	assert.Equal(t, testfixtures.At(testfixtures.Monday, "10:00"), session.Committed().Start)
	assert.Equal(t, 0, e.store.Saves())

	session.Cancel()
	assert.True(t, session.Shadow().Equal(session.Committed()))
	assert.Equal(t, 0, e.store.Saves())
}

func TestSession_ReleaseSnapsToGrid(t *testing.T) {
	e := newEnv(groomerBooking(100, "10:00"))

	session, err := e.engine.Begin(context.Background(), 100, managerID, domain.DefaultPolicy())
	require.NoError(t, err)

	session.Move(70 * time.Minute)
	resp, err := session.Release(context.Background())
	require.NoError(t, err)

	assert.True(t, resp.Moved)
	assert.Equal(t, 75*time.Minute, resp.AppliedOffset)
	assert.Equal(t, testfixtures.At(testfixtures.Monday, "11:15"), resp.Booking.StartTime)
	assert.Equal(t, testfixtures.At(testfixtures.Monday, "11:15"), e.store.Get(100).StartTime)
	assert.True(t, session.Shadow().Equal(session.Committed()))
	assert.Equal(t, testfixtures.At(testfixtures.Monday, "11:15"), session.Committed().Start)
	assert.Len(t, e.events.Events(), 1)

	// Вторая фиксация считается от нового положения
	session.Move(-75 * time.Minute)
	resp, err = session.Release(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testfixtures.At(testfixtures.Monday, "10:00"), resp.Booking.StartTime)
	assert.Equal(t, int64(3), resp.Booking.Version)
}

func TestSession_ReleaseInPlaceWritesNothing(t *testing.T) {
	e := newEnv(groomerBooking(100, "10:00"))

	session, err := e.engine.Begin(context.Background(), 100, managerID, domain.DefaultPolicy())
	require.NoError(t, err)

	session.Move(20 * time.Minute)
	resp, err := session.Release(context.Background())
	require.NoError(t, err)

	assert.False(t, resp.Moved)
	assert.Equal(t, time.Duration(0), resp.AppliedOffset)
	assert.Equal(t, 0, e.store.Saves())
	assert.Empty(t, e.events.Events())
	assert.True(t, session.Shadow().Equal(session.Committed()))
}

func TestSession_FailedReleaseReverts(t *testing.T) {
	e := newEnv(groomerBooking(100, "10:00"), groomerBooking(101, "11:15"))

	session, err := e.engine.Begin(context.Background(), 100, managerID, domain.DefaultPolicy())
	require.NoError(t, err)

	session.Move(75 * time.Minute)
	_, err = session.Release(context.Background())
	require.ErrorIs(t, err, domain.ErrConflict)

	assert.Equal(t, testfixtures.At(testfixtures.Monday, "10:00"), session.Shadow().Start)
	assert.Equal(t, testfixtures.At(testfixtures.Monday, "10:00"), session.Committed().Start)
	assert.Equal(t, testfixtures.At(testfixtures.Monday, "10:00"), e.store.Get(100).StartTime)
}

func TestSession_ForbiddenReleaseReverts(t *testing.T) {
	e := newEnv(groomerBooking(100, "10:00"))

	session, err := e.engine.Begin(context.Background(), 100, viewerID, domain.DefaultPolicy())
	require.NoError(t, err)

	session.Move(75 * time.Minute)
	_, err = session.Release(context.Background())
	require.ErrorIs(t, err, domain.ErrPermissionDenied)
	assert.True(t, session.Shadow().Equal(session.Committed()))
}

func TestEngine_Execute(t *testing.T) {
	e := newEnv(groomerBooking(100, "10:00"))

	resp, err := e.engine.Execute(context.Background(), &Request{
		BookingID: 100,
		ActorID:   groomerID,
		Offset:    140 * time.Minute,
		Policy:    domain.DefaultPolicy(),
	})
	require.NoError(t, err)
	assert.Equal(t, 150*time.Minute, resp.AppliedOffset)
	assert.Equal(t, testfixtures.At(testfixtures.Monday, "12:30"), resp.Booking.StartTime)

	_, err = e.engine.Execute(context.Background(), &Request{BookingID: 999, ActorID: groomerID, Policy: domain.DefaultPolicy()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// concurrentMove один раз переносит бронирование другим сотрудником прямо перед записью
func concurrentMove(store *testfixtures.BookingStore, id int64, hhmm string, times int) {
	store.BeforeSave = func(*domain.Booking) {
		if times == 0 {
			return
		}
		times--
		moved := store.Get(id).Clone()
		moved.StartTime = testfixtures.At(testfixtures.Monday, hhmm)
		moved.EndTime = moved.StartTime.Add(time.Hour)
		moved.Version++
		store.Put(moved)
	}
}

func TestSession_ConcurrentMoveRetriesAbsoluteTarget(t *testing.T) {
	e := newEnv(groomerBooking(100, "09:00"))

	session, err := e.engine.Begin(context.Background(), 100, managerID, domain.DefaultPolicy())
	require.NoError(t, err)

	concurrentMove(e.store, 100, "11:30", 1)
	session.Move(75 * time.Minute)
	resp, err := session.Release(context.Background())
	require.NoError(t, err)

	// Цель 10:15 считается от 09:00, смещение не добавляется к чужому 11:30
	assert.Equal(t, testfixtures.At(testfixtures.Monday, "10:15"), resp.Booking.StartTime)
	assert.Equal(t, testfixtures.At(testfixtures.Monday, "10:15"), e.store.Get(100).StartTime)
	assert.Equal(t, 75*time.Minute, resp.AppliedOffset)
	assert.Equal(t, testfixtures.At(testfixtures.Monday, "10:15"), session.Committed().Start)
}

func TestEngine_ExecuteConcurrentMove(t *testing.T) {
	e := newEnv(groomerBooking(100, "09:00"))
	concurrentMove(e.store, 100, "11:30", 1)

	resp, err := e.engine.Execute(context.Background(), &Request{
		BookingID: 100,
		ActorID:   managerID,
		Offset:    75 * time.Minute,
		Policy:    domain.DefaultPolicy(),
	})
	require.NoError(t, err)
	assert.Equal(t, testfixtures.At(testfixtures.Monday, "10:15"), resp.Booking.StartTime)
	assert.NotEqual(t, testfixtures.At(testfixtures.Monday, "12:45"), e.store.Get(100).StartTime)
}

func TestSession_RepeatedConflictSurfaces(t *testing.T) {
	e := newEnv(groomerBooking(100, "09:00"))

	session, err := e.engine.Begin(context.Background(), 100, managerID, domain.DefaultPolicy())
	require.NoError(t, err)

	concurrentMove(e.store, 100, "11:30", 2)
	session.Move(75 * time.Minute)
	_, err = session.Release(context.Background())

	require.ErrorIs(t, err, reschedule_booking.ErrBookingChanged)
	assert.Equal(t, testfixtures.At(testfixtures.Monday, "09:00"), session.Shadow().Start)
	assert.Equal(t, testfixtures.At(testfixtures.Monday, "11:30"), e.store.Get(100).StartTime)
	assert.Equal(t, 0, e.store.Saves())
}

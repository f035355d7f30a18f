package update_booking_status

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/testfixtures"
	updateStatus "github.com/m04kA/SMC-SchedulingService/internal/usecase/update_booking_status"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

type env struct {
	router *mux.Router
	store  *testfixtures.BookingStore
}

func newEnv(status domain.BookingStatus) *env {
	store := testfixtures.NewBookingStore(
		testfixtures.Booking(100, 10, ptr.Ptr(int64(7)), testfixtures.At(testfixtures.Monday, "10:00"), time.Hour, status),
	)
	directory := testfixtures.NewDirectory(
		testfixtures.Employee(7, domain.RoleEmployee, domain.PermStartBooking, domain.PermCompleteBooking),
		testfixtures.Employee(8, domain.RoleViewer, domain.PermViewAllBookings),
	)
	uc := updateStatus.NewUseCase(store, directory, testfixtures.NewEventRecorder(),
		metrics.NewWithRegisterer(prometheus.NewRegistry(), "test"), testfixtures.NewClock(time.Time{}), logger.NewNop())

	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.HandleFunc("/api/v1/bookings/{bookingId}/status", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPatch)

	return &env{router: router, store: store}
}

func (e *env) patch(actor, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/100/status", strings.NewReader(body))
	req.Header.Set(middleware.HeaderEmployeeID, actor)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// bumpVersion имитирует параллельную запись перед сохранением
func (e *env) bumpVersion(times int) {
	e.store.BeforeSave = func(b *domain.Booking) {
		if times == 0 {
			return
		}
		times--
		current := e.store.Get(b.ID)
		current.Version++
		e.store.Put(current)
	}
}

func TestHandle_Confirm(t *testing.T) {
	e := newEnv(domain.StatusPending)

	rec := e.patch("7", `{"status":"confirmed","notes":"called the owner"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body UpdateStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "pending", body.FromStatus)
	assert.Equal(t, "confirmed", body.Booking.Status)
	assert.Equal(t, int64(2), body.Booking.Version)
	require.NotNil(t, body.Booking.Notes)
	assert.Equal(t, "called the owner", *body.Booking.Notes)
}

func TestHandle_ConflictRetriedOnce(t *testing.T) {
	e := newEnv(domain.StatusConfirmed)
	e.bumpVersion(1)

	rec := e.patch("7", `{"status":"in_progress"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.StatusInProgress, e.store.Get(100).Status)
}

func TestHandle_ConflictAfterRetry(t *testing.T) {
	e := newEnv(domain.StatusConfirmed)
	e.bumpVersion(2)

	rec := e.patch("7", `{"status":"in_progress"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, handlers.MsgBookingChanged, body.Message)
	assert.Equal(t, domain.StatusConfirmed, e.store.Get(100).Status)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		status     domain.BookingStatus
		actor      string
		body       string
		wantStatus int
	}{
		{"terminal booking", domain.StatusCompleted, "7", `{"status":"cancelled"}`, http.StatusUnprocessableEntity},
		{"skipping a step", domain.StatusPending, "7", `{"status":"completed"}`, http.StatusUnprocessableEntity},
		{"no permission", domain.StatusPending, "8", `{"status":"confirmed"}`, http.StatusForbidden},
		{"unknown status", domain.StatusPending, "7", `{"status":"archived"}`, http.StatusBadRequest},
		{"broken body", domain.StatusPending, "7", `{"status":`, http.StatusBadRequest},
		{"no actor", domain.StatusPending, "", `{"status":"confirmed"}`, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(tt.status)
			assert.Equal(t, tt.wantStatus, e.patch(tt.actor, tt.body).Code)
		})
	}
}

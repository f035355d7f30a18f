package reschedule_booking

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

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/testfixtures"
	reschedule "github.com/m04kA/SMC-SchedulingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

const (
	anna      = int64(7)
	managerID = int64(1)
)

func newRouter(policy domain.Policy) (*mux.Router, *testfixtures.BookingStore) {
	store := testfixtures.NewBookingStore(
		testfixtures.Booking(100, 10, ptr.Ptr(anna), testfixtures.At(testfixtures.Monday, "10:00"), time.Hour, domain.StatusConfirmed),
		testfixtures.Booking(101, 10, ptr.Ptr(anna), testfixtures.At(testfixtures.Monday, "14:00"), time.Hour, domain.StatusConfirmed),
		// другая услуга того же сотрудника
		testfixtures.Booking(102, 20, ptr.Ptr(anna), testfixtures.At(testfixtures.Monday, "15:15"), time.Hour, domain.StatusConfirmed),
	)
	uc := reschedule.NewUseCase(
		store,
		testfixtures.NewCatalog(testfixtures.Service(10, anna)),
		testfixtures.NewDirectory(testfixtures.Employee(anna, domain.RoleEmployee), testfixtures.Employee(managerID, domain.RoleManager)),
		&testfixtures.TxManager{},
		testfixtures.NewEventRecorder(),
		metrics.NewWithRegisterer(prometheus.NewRegistry(), "test"),
		testfixtures.NewClock(time.Time{}),
		logger.NewNop(),
	)

	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.HandleFunc("/api/v1/bookings/{bookingId}/schedule", NewHandler(uc, policy, logger.NewNop()).Handle).
		Methods(http.MethodPatch)
	return router, store
}

func patch(router http.Handler, actor, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/100/schedule", strings.NewReader(body))
	req.Header.Set(middleware.HeaderEmployeeID, actor)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	router, store := newRouter(domain.DefaultPolicy())

	rec := patch(router, "1", `{"start":"2026-03-02T11:30","end":"2026-03-02T12:30"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body RescheduleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Changed)
	assert.Equal(t, "11:30", body.Booking.StartTime)
	assert.True(t, body.PreviousStart.Equal(testfixtures.At(testfixtures.Monday, "10:00")))
	assert.True(t, store.Get(100).StartTime.Equal(testfixtures.At(testfixtures.Monday, "11:30")))
}

func TestHandle_RFC3339(t *testing.T) {
	router, _ := newRouter(domain.DefaultPolicy())

	rec := patch(router, "1", `{"start":"2026-03-02T12:00:00+03:00","end":"2026-03-02T13:00:00+03:00"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandle_Errors(t *testing.T) {
	disabled := domain.DefaultPolicy()
	disabled.ReschedulingEnabled = false

	tests := []struct {
		name       string
		policy     domain.Policy
		actor      string
		body       string
		wantStatus int
	}{
		{"overlapping booking", domain.DefaultPolicy(), "1", `{"start":"2026-03-02T13:30","end":"2026-03-02T14:30"}`, http.StatusConflict},
		{"busy with another service", domain.DefaultPolicy(), "1", `{"start":"2026-03-02T15:00","end":"2026-03-02T16:00"}`, http.StatusConflict},
		{"wrong duration", domain.DefaultPolicy(), "1", `{"start":"2026-03-02T11:00","end":"2026-03-02T11:30"}`, http.StatusBadRequest},
		{"outside window", domain.DefaultPolicy(), "1", `{"start":"2026-03-02T16:30","end":"2026-03-02T17:30"}`, http.StatusBadRequest},
		{"disabled by policy", disabled, "1", `{"start":"2026-03-02T11:30","end":"2026-03-02T12:30"}`, http.StatusForbidden},
		{"not a manager", domain.DefaultPolicy(), "7", `{"start":"2026-03-02T11:30","end":"2026-03-02T12:30"}`, http.StatusForbidden},
		{"bad time", domain.DefaultPolicy(), "1", `{"start":"11:30","end":"12:30"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newRouter(tt.policy)
			assert.Equal(t, tt.wantStatus, patch(router, tt.actor, tt.body).Code)
		})
	}
}

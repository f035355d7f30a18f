package get_available_slots

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/testfixtures"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
)

// failingCalculator запоминает запрос и возвращает заданную ошибку
type failingCalculator struct {
	err  error
	last *getAvailableSlots.Request
}

func (c *failingCalculator) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	c.last = req
	return nil, c.err
}

func newRouter() *mux.Router {
	return routerFor(getAvailableSlots.NewUseCase(
		testfixtures.NewBookingStore(),
		testfixtures.NewCatalog(testfixtures.Service(10, 7)),
		testfixtures.NewDirectory(testfixtures.Employee(7, domain.RoleEmployee), testfixtures.Employee(8, domain.RoleEmployee)),
		metrics.NewWithRegisterer(prometheus.NewRegistry(), "test"),
		testfixtures.NewClock(time.Time{}),
		logger.NewNop(),
	))
}

func routerFor(calculator SlotsCalculator) *mux.Router {
	h := NewHandler(calculator, domain.DefaultPolicy(), logger.NewNop())

	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.HandleFunc("/api/v1/services/{serviceId}/employees/{employeeId}/available-slots", h.Handle).Methods(http.MethodGet)
	return router
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set(middleware.HeaderEmployeeID, "1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	rec := get(newRouter(), "/api/v1/services/10/employees/7/available-slots?date=2026-03-02")
	require.Equal(t, http.StatusOK, rec.Code)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2026-03-02", body.Date)
	require.Len(t, body.Slots, 6)
	assert.Equal(t, "09:00", body.Slots[0].StartTime)
	assert.Equal(t, "10:00", body.Slots[0].EndTime)
	assert.Equal(t, "15:15", body.Slots[5].StartTime)
	assert.Equal(t, 60, body.Slots[0].DurationMinutes)
}

func TestHandle_Errors(t *testing.T) {
	router := newRouter()

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"missing date", "/api/v1/services/10/employees/7/available-slots", http.StatusBadRequest},
		{"bad date", "/api/v1/services/10/employees/7/available-slots?date=tomorrow", http.StatusBadRequest},
		{"unknown service", "/api/v1/services/99/employees/7/available-slots?date=2026-03-02", http.StatusNotFound},
		{"employee not assigned", "/api/v1/services/10/employees/8/available-slots?date=2026-03-02", http.StatusBadRequest},
		{"bad service id", "/api/v1/services/x/employees/7/available-slots?date=2026-03-02", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, get(router, tt.path).Code)
		})
	}
}

func TestHandle_CalculatorFailure(t *testing.T) {
	calculator := &failingCalculator{err: errors.New("slots store unavailable")}

	rec := get(routerFor(calculator), "/api/v1/services/10/employees/7/available-slots?date=2026-03-02")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	require.NotNil(t, calculator.last)
	assert.Equal(t, int64(10), calculator.last.ServiceID)
	assert.Equal(t, int64(7), calculator.last.EmployeeID)
	assert.Equal(t, int64(1), calculator.last.ActorID)
}

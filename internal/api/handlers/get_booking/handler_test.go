package get_booking

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulingService/internal/testfixtures"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

func newRouter() *mux.Router {
	store := testfixtures.NewBookingStore(
		testfixtures.Booking(100, 10, ptr.Ptr(int64(7)), testfixtures.At(testfixtures.Monday, "10:00"), time.Hour, domain.StatusConfirmed),
	)
	directory := testfixtures.NewDirectory(
		testfixtures.Employee(7, domain.RoleEmployee, domain.PermViewOwnBookings),
		testfixtures.Employee(8, domain.RoleEmployee, domain.PermViewOwnBookings),
	)
	h := NewHandler(bookings.NewService(store, directory, logger.NewNop()), logger.NewNop())

	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.HandleFunc("/api/v1/bookings/{bookingId}", h.Handle).Methods(http.MethodGet)
	return router
}

func get(router http.Handler, path, actor string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set(middleware.HeaderEmployeeID, actor)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	router := newRouter()

	rec := get(router, "/api/v1/bookings/100", "7")
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(100), body.ID)
	assert.Equal(t, "2026-03-02", body.BookingDate)
	assert.Equal(t, "10:00", body.StartTime)

	assert.Equal(t, http.StatusForbidden, get(router, "/api/v1/bookings/100", "8").Code)
	assert.Equal(t, http.StatusNotFound, get(router, "/api/v1/bookings/999", "7").Code)
	assert.Equal(t, http.StatusBadRequest, get(router, "/api/v1/bookings/abc", "7").Code)
	assert.Equal(t, http.StatusUnauthorized, get(router, "/api/v1/bookings/100", "").Code)
}

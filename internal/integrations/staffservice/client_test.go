package staffservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const employeeJSON = `{
	"id": 7,
	"name": "Anna",
	"role": "employee",
	"permissions": ["start_booking", "view_own_bookings", "fly_drone"],
	"is_active": true,
	"working_hours": {
		"monday": {"is_available": true, "start": "09:00", "end": "18:00",
			"breaks": [{"start": "13:00", "end": "14:00", "label": "lunch"}]},
		"tuesday": {"is_available": false},
		"saturday": {"is_available": true, "start": "10:00", "end": "14:00"}
	}
}`

func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/employees/7", r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_GetEmployee(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, employeeJSON)
	client := NewClient(srv.URL, time.Second, logger.NewNop())

	employee, err := client.GetEmployee(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), employee.ID)
	assert.Equal(t, domain.RoleEmployee, employee.Role)
	assert.True(t, employee.Active)
	assert.Equal(t, []domain.Permission{domain.PermViewOwnBookings, domain.PermStartBooking}, employee.Permissions.List())

	monday := employee.WorkingHours.For(time.Monday)
	assert.True(t, monday.IsOpen())
	assert.Equal(t, types.TimeString("09:00"), monday.Start)
	require.Len(t, monday.Breaks, 1)
	assert.Equal(t, "lunch", monday.Breaks[0].Label)

	assert.False(t, employee.WorkingHours.For(time.Tuesday).IsOpen())
	assert.False(t, employee.WorkingHours.For(time.Sunday).IsOpen())
	assert.True(t, employee.WorkingHours.For(time.Saturday).IsOpen())
}

func TestClient_GetEmployee_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "not found", status: http.StatusNotFound, body: `{"code":404,"message":"not found"}`, wantErr: ErrEmployeeNotFound},
		{name: "server error", status: http.StatusInternalServerError, body: "boom", wantErr: ErrInvalidResponse},
		{name: "broken json", status: http.StatusOK, body: "{", wantErr: ErrInvalidResponse},
		{name: "unknown role", status: http.StatusOK, body: `{"id":7,"role":"owner"}`, wantErr: ErrInvalidResponse},
		{name: "bad hours", status: http.StatusOK,
			body:    `{"id":7,"role":"viewer","working_hours":{"monday":{"is_available":true,"start":"9am","end":"18:00"}}}`,
			wantErr: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.status, tt.body)
			client := NewClient(srv.URL, time.Second, logger.NewNop())

			_, err := client.GetEmployee(context.Background(), 7)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

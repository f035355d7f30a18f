package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: bad", domain.ErrValidation), http.StatusBadRequest},
		{domain.ErrFeatureDisabled, http.StatusForbidden},
		{fmt.Errorf("%w: gone", domain.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: race", domain.ErrConflict), http.StatusConflict},
		{domain.ErrInvalidStateTransition, http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusForError(tt.err))
		})
	}
}

func TestRespondDomainError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondDomainError(rec, fmt.Errorf("%w: race", domain.ErrConflict))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusConflict, body.Code)
	assert.Equal(t, MsgBookingChanged, body.Message)
}

func TestWithConflictRetry(t *testing.T) {
	conflict := fmt.Errorf("%w: race", domain.ErrConflict)

	t.Run("second attempt succeeds", func(t *testing.T) {
		calls := 0
		err := WithConflictRetry(func() error {
			calls++
			if calls == 1 {
				return conflict
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("retries exactly once", func(t *testing.T) {
		calls := 0
		err := WithConflictRetry(func() error {
			calls++
			return conflict
		})
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.Equal(t, 2, calls)
	})

	t.Run("other errors are not retried", func(t *testing.T) {
		calls := 0
		err := WithConflictRetry(func() error {
			calls++
			return domain.ErrValidation
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, 1, calls)
	})
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Status string `json:"status"`
	}

	r := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"status":"confirmed"}`))
	require.NoError(t, DecodeJSON(r, &v))
	assert.Equal(t, "confirmed", v.Status)

	r = httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"unknown":1}`))
	assert.Error(t, DecodeJSON(r, &v))
}

func TestPathInt64(t *testing.T) {
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"bookingId": "15"})
	id, err := PathInt64(r, "bookingId")
	require.NoError(t, err)
	assert.Equal(t, int64(15), id)

	r = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"bookingId": "abc"})
	_, err = PathInt64(r, "bookingId")
	assert.Error(t, err)

	_, err = PathInt64(httptest.NewRequest(http.MethodGet, "/", nil), "bookingId")
	assert.Error(t, err)
}

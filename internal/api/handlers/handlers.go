package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

const (
	msgInternalError     = "внутренняя ошибка сервера"
	msgValidation        = "некорректные данные запроса"
	msgPermissionDenied  = "недостаточно прав"
	msgNotFound          = "объект не найден"
	msgInvalidTransition = "операция недопустима в текущем статусе"

	// MsgBookingChanged ответ на конфликт, не снятый повторной попыткой
	MsgBookingChanged = "бронирование было изменено, проверьте актуальные данные"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RespondJSON пишет JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError пишет ErrorResponse
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondUnprocessable(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnprocessableEntity, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// StatusForError сопоставляет ошибку доменной таксономии HTTP статусу
func StatusForError(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindPermissionDenied:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindInvalidStateTransition:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// RespondDomainError отвечает статусом по таксономии ошибки и стандартным сообщением
func RespondDomainError(w http.ResponseWriter, err error) {
	status := StatusForError(err)
	switch status {
	case http.StatusBadRequest:
		RespondBadRequest(w, msgValidation)
	case http.StatusForbidden:
		RespondForbidden(w, msgPermissionDenied)
	case http.StatusNotFound:
		RespondNotFound(w, msgNotFound)
	case http.StatusConflict:
		RespondConflict(w, MsgBookingChanged)
	case http.StatusUnprocessableEntity:
		RespondUnprocessable(w, msgInvalidTransition)
	default:
		RespondInternalError(w)
	}
}

// WithConflictRetry выполняет fn и повторяет её ровно один раз при конфликте
func WithConflictRetry(fn func() error) error {
	err := fn()
	if err != nil && domain.IsRetryable(err) {
		return fn()
	}
	return err
}

// DecodeJSON декодирует тело запроса
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

// PathInt64 извлекает числовой параметр пути
func PathInt64(r *http.Request, name string) (int64, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, fmt.Errorf("missing path parameter %q", name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid path parameter %q: %s", name, raw)
	}
	return id, nil
}

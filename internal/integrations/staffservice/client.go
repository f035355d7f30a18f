package staffservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Client клиент для работы со StaffService (справочник сотрудников)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента StaffService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetEmployee получает сотрудника вместе с правами и рабочими часами
// Права всегда читаются заново: сервис не кэширует их между запросами
func (c *Client) GetEmployee(ctx context.Context, employeeID int64) (*domain.Employee, error) {
	url := fmt.Sprintf("%s/internal/employees/%d", c.baseURL, employeeID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid employee ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrEmployeeNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var employee Employee
	if err := json.NewDecoder(resp.Body).Decode(&employee); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	result, err := c.toDomain(&employee)
	if err != nil {
		c.log.Error("GetEmployee: invalid employee id=%d payload: %v", employeeID, err)
		return nil, err
	}

	return result, nil
}

// toDomain конвертирует ответ StaffService в доменную модель
// Неизвестные права пропускаются: каталог прав может расширяться раньше, чем этот сервис
func (c *Client) toDomain(e *Employee) (*domain.Employee, error) {
	role, err := domain.ParseRole(e.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	perms := make([]domain.Permission, 0, len(e.Permissions))
	for _, raw := range e.Permissions {
		p, err := domain.ParsePermission(raw)
		if err != nil {
			c.log.Warn("GetEmployee: employee id=%d has unknown permission %q, skipping", e.ID, raw)
			continue
		}
		perms = append(perms, p)
	}

	schedule, err := toWeeklySchedule(e.WorkingHours)
	if err != nil {
		return nil, fmt.Errorf("%w: working hours: %v", ErrInvalidResponse, err)
	}

	return &domain.Employee{
		ID:           e.ID,
		Name:         e.Name,
		Role:         role,
		Permissions:  domain.NewPermissionSet(perms...),
		Active:       e.IsActive,
		WorkingHours: schedule,
	}, nil
}

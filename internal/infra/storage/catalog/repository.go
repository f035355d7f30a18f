package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

// Repository каталог услуг (только чтение)
// Услуги и закреплённые сотрудники редактируются другим сервисом
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetService получает услугу вместе с закреплёнными сотрудниками
func (r *Repository) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"duration_minutes",
		"available_days",
		"daily_start_time",
		"daily_end_time",
		"buffer_before_minutes",
		"buffer_after_minutes",
		"max_bookings_per_slot",
		"advance_booking_days",
		"created_at",
		"updated_at",
	).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %w", ErrBuildQuery, err)
	}

	var service domain.Service
	var days pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.Name,
		&service.DurationMinutes,
		&days,
		&service.DailyStartTime,
		&service.DailyEndTime,
		&service.BufferBeforeMinutes,
		&service.BufferAfterMinutes,
		&service.MaxBookingsPerSlot,
		&service.AdvanceBookingDays,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %w", ErrScanRow, err)
	}

	service.AvailableDays = toWeekdays(days)
	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	employees, err := r.getAssignedEmployees(ctx, id)
	if err != nil {
		return nil, err
	}
	service.AssignedEmployeeIDs = employees

	return &service, nil
}

func (r *Repository) getAssignedEmployees(ctx context.Context, serviceID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("employee_id").
		From("service_employees").
		Where(squirrel.Eq{"service_id": serviceID}).
		OrderBy("employee_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getAssignedEmployees - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getAssignedEmployees - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: getAssignedEmployees - scan employee_id: %w", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getAssignedEmployees - rows error: %w", ErrScanRow, err)
	}

	return ids, nil
}

// toWeekdays конвертирует дни недели из БД (0 = воскресенье, как в time.Weekday)
func toWeekdays(days pq.Int64Array) []time.Weekday {
	result := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		if d < int64(time.Sunday) || d > int64(time.Saturday) {
			continue
		}
		result = append(result, time.Weekday(d))
	}
	return result
}

package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"service_id",
	"employee_id",
	"customer_id",
	"start_time",
	"end_time",
	"status",
	"notes",
	"cancelled_at",
	"version",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// Save сохраняет бронирование с проверкой версии
// Запись проходит, только если версия в БД равна expectedVersion; версия увеличивается на единицу.
// Возвращает сохранённое бронирование с новой версией.
func (r *Repository) Save(ctx context.Context, booking *domain.Booking, expectedVersion int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildSaveQuery(booking, expectedVersion)
	if err != nil {
		return nil, fmt.Errorf("%w: Save - build update query: %w", ErrBuildQuery, err)
	}

	saved := booking.Clone()
	err = executor.QueryRowContext(ctx, query, args...).Scan(&saved.Version, &saved.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// Ни одной строки: либо бронирования нет, либо версия устарела
		exists, existsErr := r.exists(ctx, booking.ID)
		if existsErr != nil {
			return nil, existsErr
		}
		if !exists {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: booking id=%d expected version %d", ErrVersionConflict, booking.ID, expectedVersion)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Save - execute update: %w", ErrExecQuery, err)
	}

	return saved, nil
}

// FindOverlapping возвращает активные бронирования сотрудника, строго пересекающиеся с [start, end)
// excludeID исключает переносимое бронирование.
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы повторная проверка при коммите была атомарной.
func (r *Repository) FindOverlapping(ctx context.Context, employeeID int64, start, end time.Time, excludeID *int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildFindOverlappingQuery(employeeID, start, end, excludeID, dbmetrics.IsInTransaction(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByEmployeeWithFilter получает бронирования сотрудника за период
// Используется для вычисления слотов и календаря сотрудника
func (r *Repository) GetByEmployeeWithFilter(ctx context.Context, filter domain.EmployeeBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildEmployeeFilterQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmployeeWithFilter - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmployeeWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *Repository) exists(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: exists - build select query: %w", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: exists - execute query: %w", ErrExecQuery, err)
	}
	return true, nil
}

func buildSaveQuery(booking *domain.Booking, expectedVersion int64) (string, []interface{}, error) {
	return psqlbuilder.Update("bookings").
		Set("service_id", booking.ServiceID).
		Set("employee_id", booking.EmployeeID).
		Set("start_time", booking.StartTime).
		Set("end_time", booking.EndTime).
		Set("status", booking.Status).
		Set("notes", booking.Notes).
		Set("cancelled_at", booking.CancelledAt).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID, "version": expectedVersion}).
		Suffix("RETURNING version, updated_at").
		ToSql()
}

func buildFindOverlappingQuery(employeeID int64, start, end time.Time, excludeID *int64, forUpdate bool) (string, []interface{}, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"employee_id": employeeID}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		Where(squirrel.NotEq{"status": inactiveStatuses()}).
		OrderBy("start_time ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}
	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return selectBuilder.ToSql()
}

func buildEmployeeFilterQuery(filter domain.EmployeeBookingsFilter) (string, []interface{}, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"employee_id": filter.EmployeeID}).
		OrderBy("start_time ASC")

	// Пересечение с периодом, а не попадание начала в период
	if !filter.To.IsZero() {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": filter.To})
	}
	if !filter.From.IsZero() {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_time": filter.From})
	}

	if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatuses()})
	}

	return selectBuilder.ToSql()
}

func inactiveStatuses() []string {
	result := make([]string, len(domain.InactiveStatuses))
	for i, s := range domain.InactiveStatuses {
		result[i] = string(s)
	}
	return result
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var employeeID sql.NullInt64
	var notes sql.NullString
	var cancelledAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ServiceID,
		&employeeID,
		&booking.CustomerID,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&notes,
		&cancelledAt,
		&booking.Version,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if employeeID.Valid {
		booking.EmployeeID = &employeeID.Int64
	}
	if notes.Valid {
		booking.Notes = &notes.String
	}
	if cancelledAt.Valid {
		booking.CancelledAt = &cancelledAt.Time
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

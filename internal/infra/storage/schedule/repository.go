package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/linkhub/booking-service/internal/domain"
	"github.com/linkhub/booking-service/pkg/dbmetrics"
	"github.com/linkhub/booking-service/pkg/psqlbuilder"
)

// Repository репозиторий для работы с услугами и окнами доступности
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateService создает новую бронируемую услугу
func (r *Repository) CreateService(ctx context.Context, service *domain.BookableService) (*domain.BookableService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("services").
		Columns(
			"owner_id",
			"title",
			"duration_minutes",
			"buffer_minutes",
			"timezone",
		).
		Values(
			service.OwnerID,
			service.Title,
			service.DurationMinutes,
			service.BufferMinutes,
			service.Timezone,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateService - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: CreateService - execute insert: %v", ErrExecQuery, err)
	}

	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	return service, nil
}

// GetServiceByID получает услугу по ID
func (r *Repository) GetServiceByID(ctx context.Context, id int64) (*domain.BookableService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_id",
		"title",
		"duration_minutes",
		"buffer_minutes",
		"timezone",
		"created_at",
		"updated_at",
	).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - build select query: %v", ErrBuildQuery, err)
	}

	var service domain.BookableService
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.OwnerID,
		&service.Title,
		&service.DurationMinutes,
		&service.BufferMinutes,
		&service.Timezone,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - scan service: %v", ErrScanRow, err)
	}

	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	return &service, nil
}

// CreateWindow создает новое окно доступности
func (r *Repository) CreateWindow(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_windows").
		Columns(
			"owner_id",
			"weekday",
			"start_time",
			"end_time",
			"timezone",
		).
		Values(
			window.OwnerID,
			int(window.Weekday),
			window.StartTime,
			window.EndTime,
			window.Timezone,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateWindow - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&window.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: CreateWindow - execute insert: %v", ErrExecQuery, err)
	}

	window.CreatedAt = createdAt.Time

	return window, nil
}

// GetWindowsByOwner получает все окна доступности владельца
// Сортировка по дню недели и времени начала - порядок важен для
// детерминированной дедупликации слотов при пересекающихся окнах
func (r *Repository) GetWindowsByOwner(ctx context.Context, ownerID int64) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_id",
		"weekday",
		"start_time",
		"end_time",
		"timezone",
		"created_at",
	).
		From("availability_windows").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("weekday ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWindowsByOwner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWindowsByOwner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.AvailabilityWindow, 0)
	for rows.Next() {
		var window domain.AvailabilityWindow
		var weekday int
		var createdAt sql.NullTime

		err := rows.Scan(
			&window.ID,
			&window.OwnerID,
			&weekday,
			&window.StartTime,
			&window.EndTime,
			&window.Timezone,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: GetWindowsByOwner - scan row: %v", ErrScanRow, err)
		}

		window.Weekday = time.Weekday(weekday)
		window.CreatedAt = createdAt.Time

		windows = append(windows, &window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWindowsByOwner - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

// DeleteWindow удаляет окно доступности владельца
// ownerID в условии не даёт удалить чужое окно
func (r *Repository) DeleteWindow(ctx context.Context, id int64, ownerID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_windows").
		Where(squirrel.Eq{"id": id, "owner_id": ownerID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteWindow - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteWindow - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteWindow - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrWindowNotFound
	}

	return nil
}

package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/linkhub/booking-service/internal/domain"
	"github.com/linkhub/booking-service/pkg/dbmetrics"
	"github.com/linkhub/booking-service/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL при нарушении уникального индекса
const uniqueViolation = "23505"

// bookingColumns полный набор колонок таблицы bookings
var bookingColumns = []string{
	"id",
	"service_id",
	"owner_id",
	"slot_start",
	"slot_end",
	"status",
	"hold_expires_at",
	"hold_token",
	"order_id",
	"buyer_email",
	"buyer_name",
	"buyer_phone",
	"notes",
	"cancellation_reason",
	"cancelled_at",
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

// Create создает новое бронирование (удержание или блокировку владельца)
// Если в контексте передана активная транзакция, использует её.
//
// Частичный уникальный индекс (service_id, slot_start) по статусам
// hold/confirmed гарантирует, что два конкурирующих удержания одного слота
// не смогут закоммититься одновременно: проигравший получает ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"service_id",
			"owner_id",
			"slot_start",
			"slot_end",
			"status",
			"hold_expires_at",
			"hold_token",
			"order_id",
			"buyer_email",
			"buyer_name",
			"buyer_phone",
			"notes",
		).
		Values(
			booking.ServiceID,
			booking.OwnerID,
			booking.SlotStart,
			booking.SlotEnd,
			booking.Status,
			booking.HoldExpiresAt,
			booking.HoldToken,
			booking.OrderID,
			booking.BuyerEmail,
			booking.BuyerName,
			booking.BuyerPhone,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку для конкурентных переходов статуса
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanBooking(executor.QueryRowContext(ctx, query, args...))
}

// GetByOrderID получает бронирование, привязанное к заказу
// Используется для каскадной отмены при отмене заказа
func (r *Repository) GetByOrderID(ctx context.Context, orderID string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"order_id": orderID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByOrderID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanBooking(executor.QueryRowContext(ctx, query, args...))
}

// GetBlockingByServiceBetween получает бронирования услуги, занимающие слоты
// в диапазоне [from, to): подтверждённые и неистёкшие удержания.
// Истёкшие удержания отфильтровываются по hold_expires_at (ленивое истечение),
// даже если фоновая очистка ещё не обновила их статус.
//
// Внутри транзакции добавляется FOR UPDATE - используется usecase создания
// удержания для защиты от гонки двух покупателей за один слот.
func (r *Repository) GetBlockingByServiceBetween(ctx context.Context, serviceID int64, from, to time.Time, now time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"service_id": serviceID}).
		Where(squirrel.Lt{"slot_start": to}).
		Where(squirrel.Gt{"slot_end": from}).
		Where(squirrel.Or{
			squirrel.Eq{"status": domain.StatusConfirmed},
			squirrel.And{
				squirrel.Eq{"status": domain.StatusHold},
				squirrel.Gt{"hold_expires_at": now},
			},
		}).
		OrderBy("slot_start ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockingByServiceBetween - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockingByServiceBetween - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByOwnerWithFilter получает бронирования владельца с гибкой фильтрацией
// Поддерживает фильтрацию по услуге, периоду и статусу, пагинацию limit/offset
func (r *Repository) GetByOwnerWithFilter(ctx context.Context, filter domain.OwnerBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"owner_id": filter.OwnerID})

	if filter.ServiceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *filter.ServiceID})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"slot_start": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"slot_start": *filter.To})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	selectBuilder = selectBuilder.OrderBy("slot_start DESC")

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(uint64(filter.Offset))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Confirm переводит удержание в подтверждённое бронирование
// Сбрасывает hold_expires_at и опционально привязывает заказ
func (r *Repository) Confirm(ctx context.Context, id int64, orderID *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", domain.StatusConfirmed).
		Set("hold_expires_at", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if orderID != nil {
		updateBuilder = updateBuilder.Set("order_id", *orderID)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Confirm - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Confirm")
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Cancel")
}

// ExpireHoldsBefore помечает истёкшими все удержания с дедлайном до deadline
// Используется фоновой очисткой; возвращает количество обновлённых строк
func (r *Repository) ExpireHoldsBefore(ctx context.Context, deadline time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusExpired).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusHold}).
		Where(squirrel.LtOrEq{"hold_expires_at": deadline}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ExpireHoldsBefore - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireHoldsBefore - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireHoldsBefore - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// ExpireStaleHolds помечает истёкшими просроченные удержания одной услуги
// Вызывается внутри транзакции создания удержания, чтобы мёртвое удержание
// не блокировало вставку через уникальный индекс
func (r *Repository) ExpireStaleHolds(ctx context.Context, serviceID int64, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusExpired).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"service_id": serviceID}).
		Where(squirrel.Eq{"status": domain.StatusHold}).
		Where(squirrel.LtOrEq{"hold_expires_at": now}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ExpireStaleHolds - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ExpireStaleHolds - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// execExpectingRow выполняет update и возвращает ErrBookingNotFound, если строка не найдена
func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// scanBooking сканирует одну строку бронирования
func (r *Repository) scanBooking(row *sql.Row) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ServiceID,
		&booking.OwnerID,
		&booking.SlotStart,
		&booking.SlotEnd,
		&booking.Status,
		&booking.HoldExpiresAt,
		&booking.HoldToken,
		&booking.OrderID,
		&booking.BuyerEmail,
		&booking.BuyerName,
		&booking.BuyerPhone,
		&booking.Notes,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanBooking - scan row: %v", ErrScanRow, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.ServiceID,
			&booking.OwnerID,
			&booking.SlotStart,
			&booking.SlotEnd,
			&booking.Status,
			&booking.HoldExpiresAt,
			&booking.HoldToken,
			&booking.OrderID,
			&booking.BuyerEmail,
			&booking.BuyerName,
			&booking.BuyerPhone,
			&booking.Notes,
			&booking.CancellationReason,
			&booking.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// isUniqueViolation проверяет нарушение уникального индекса (23505)
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}

package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/areninha/booking-service/internal/domain"
	"github.com/areninha/booking-service/pkg/dbmetrics"
	"github.com/areninha/booking-service/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL unique_violation
const uniqueViolation = "23505"

var bookingColumns = []string{
	"id",
	"field_id",
	"time_slot_id",
	"booking_date",
	"status",
	"player_id",
	"player_name",
	"player_whatsapp",
	"player_email",
	"payment_method",
	"notes",
	"field_name",
	"field_location",
	"field_address",
	"field_type",
	"slot_day_of_week",
	"slot_start_time",
	"slot_end_time",
	"slot_price",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет бронирование
// Частичный уникальный индекс bookings_confirmed_slot_uniq не дает записать второе
// подтвержденное бронирование на тот же слот и дату, в этом случае возвращается ErrSlotNotAvailable
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"field_id",
			"time_slot_id",
			"booking_date",
			"status",
			"player_id",
			"player_name",
			"player_whatsapp",
			"player_email",
			"payment_method",
			"notes",
			"field_name",
			"field_location",
			"field_address",
			"field_type",
			"slot_day_of_week",
			"slot_start_time",
			"slot_end_time",
			"slot_price",
			"created_at",
			"updated_at",
		).
		Values(
			booking.ID,
			booking.FieldID,
			booking.TimeSlotID,
			domain.DateOnly(booking.BookingDate),
			booking.Status,
			booking.PlayerID,
			booking.PlayerName,
			booking.PlayerWhatsapp,
			booking.PlayerEmail,
			booking.PaymentMethod,
			booking.Notes,
			booking.Snapshot.FieldName,
			booking.Snapshot.FieldLocation,
			booking.Snapshot.FieldAddress,
			booking.Snapshot.FieldType,
			booking.Snapshot.DayOfWeek,
			booking.Snapshot.StartTime,
			booking.Snapshot.EndTime,
			booking.Snapshot.Price,
			booking.CreatedAt,
			booking.UpdatedAt,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if isUniqueViolation(err) {
		return nil, ErrSlotNotAvailable
	}
	if err != nil {
		// %w на исходную ошибку нужен txmanager'у, чтобы распознать serialization_failure
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
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

// GetByFieldAndDate получает бронирования площадки на календарную дату (в любом статусе)
// Внутри транзакции строки блокируются через FOR UPDATE
func (r *Repository) GetByFieldAndDate(ctx context.Context, fieldID string, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"field_id": fieldID, "booking_date": domain.DateOnly(date)}).
		OrderBy("slot_start_time ASC", "created_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFieldAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFieldAndDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByPlayer получает бронирования игрока, сначала самые поздние по дате
// Опционально фильтрует по статусу
func (r *Repository) GetByPlayer(ctx context.Context, filter domain.PlayerBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"player_id": filter.PlayerID}).
		OrderBy("booking_date DESC", "slot_start_time DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPlayer - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPlayer - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Cancel переводит подтвержденное бронирование в статус cancelled
// Обновление условное: если бронирование уже не confirmed, возвращается ErrCannotCancel
func (r *Repository) Cancel(ctx context.Context, id string, cancelledAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", cancelledAt).
		Set("updated_at", cancelledAt).
		Where(squirrel.Eq{"id": id, "status": domain.StatusConfirmed}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected > 0 {
		return nil
	}

	// Ничего не обновили: либо бронирования нет, либо оно уже не confirmed
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrCannotCancel
}

// scanner общий интерфейс *sql.Row и *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row scanner) (*domain.Booking, error) {
	var booking domain.Booking
	var email, notes sql.NullString
	var cancelledAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.FieldID,
		&booking.TimeSlotID,
		&booking.BookingDate,
		&booking.Status,
		&booking.PlayerID,
		&booking.PlayerName,
		&booking.PlayerWhatsapp,
		&email,
		&booking.PaymentMethod,
		&notes,
		&booking.Snapshot.FieldName,
		&booking.Snapshot.FieldLocation,
		&booking.Snapshot.FieldAddress,
		&booking.Snapshot.FieldType,
		&booking.Snapshot.DayOfWeek,
		&booking.Snapshot.StartTime,
		&booking.Snapshot.EndTime,
		&booking.Snapshot.Price,
		&cancelledAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.BookingDate = domain.DateOnly(booking.BookingDate)
	if email.Valid {
		booking.PlayerEmail = &email.String
	}
	if notes.Valid {
		booking.Notes = &notes.String
	}
	if cancelledAt.Valid {
		booking.CancelledAt = &cancelledAt.Time
	}

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

// isUniqueViolation проверяет, что ошибка - нарушение уникального индекса
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

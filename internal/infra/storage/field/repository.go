package field

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/areninha/booking-service/internal/domain"
	"github.com/areninha/booking-service/pkg/dbmetrics"
	"github.com/areninha/booking-service/pkg/psqlbuilder"
)

var fieldColumns = []string{
	"id",
	"name",
	"location",
	"address",
	"description",
	"field_type",
	"price_per_hour",
	"rating",
	"owner_id",
	"photos",
	"amenities",
	"rules",
	"contact_phone",
	"contact_whatsapp",
	"contact_email",
	"created_at",
	"updated_at",
}

var slotColumns = []string{
	"id",
	"field_id",
	"day_of_week",
	"start_time",
	"end_time",
	"price",
	"available",
}

// Repository репозиторий каталога площадок и шаблонов их слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория площадок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает все площадки вместе со слотами, отсортированные по названию
func (r *Repository) List(ctx context.Context) ([]*domain.Field, error) {
	return r.Search(ctx, domain.FieldFilter{})
}

// Search возвращает площадки, удовлетворяющие всем условиям фильтра
func (r *Repository) Search(ctx context.Context, filter domain.FieldFilter) ([]*domain.Field, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildSearchQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: Search - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Search - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	fields := make([]*domain.Field, 0)
	for rows.Next() {
		f, err := scanField(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: Search - scan row: %w", ErrScanRow, err)
		}
		fields = append(fields, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Search - rows error: %w", ErrScanRow, err)
	}

	if err := r.attachSlots(ctx, fields); err != nil {
		return nil, err
	}

	return fields, nil
}

// GetByID получает площадку по ID вместе со слотами
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Field, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(fieldColumns...).
		From("fields").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	f, err := scanField(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFieldNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan field: %w", ErrScanRow, err)
	}

	if err := r.attachSlots(ctx, []*domain.Field{f}); err != nil {
		return nil, err
	}

	return f, nil
}

// Count возвращает количество площадок в каталоге
func (r *Repository) Count(ctx context.Context) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").From("fields").ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: Count - scan: %w", ErrScanRow, err)
	}

	return count, nil
}

// Create сохраняет площадку и её слоты
// Вызывающий код оборачивает вызов в транзакцию, если нужна атомарность
func (r *Repository) Create(ctx context.Context, f *domain.Field) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("fields").
		Columns(fieldColumns...).
		Values(
			f.ID,
			f.Name,
			f.Location,
			f.Address,
			f.Description,
			f.Type,
			f.PricePerHour,
			f.Rating,
			f.OwnerID,
			pq.Array(f.Photos),
			pq.Array(f.Amenities),
			pq.Array(f.Rules),
			f.Contact.Phone,
			f.Contact.Whatsapp,
			f.Contact.Email,
			f.CreatedAt,
			f.UpdatedAt,
		).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - insert field: %w", ErrExecQuery, err)
	}

	if len(f.TimeSlots) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert("field_time_slots").Columns(append(slotColumns, "position")...)
	for i, s := range f.TimeSlots {
		insert = insert.Values(s.ID, f.ID, s.DayOfWeek, s.StartTime, s.EndTime, s.Price, s.Available, i)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build slots insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - insert slots: %w", ErrExecQuery, err)
	}

	return nil
}

// attachSlots загружает шаблоны слотов одним запросом для всех площадок
func (r *Repository) attachSlots(ctx context.Context, fields []*domain.Field) error {
	if len(fields) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	ids := make([]string, len(fields))
	byID := make(map[string]*domain.Field, len(fields))
	for i, f := range fields {
		ids[i] = f.ID
		byID[f.ID] = f
		f.TimeSlots = make([]domain.TimeSlot, 0)
	}

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("field_time_slots").
		Where(squirrel.Eq{"field_id": ids}).
		OrderBy("field_id", "position", "day_of_week", "start_time", "end_time", "id").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: attachSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachSlots - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var s domain.TimeSlot
		if err := rows.Scan(&s.ID, &s.FieldID, &s.DayOfWeek, &s.StartTime, &s.EndTime, &s.Price, &s.Available); err != nil {
			return fmt.Errorf("%w: attachSlots - scan row: %w", ErrScanRow, err)
		}
		if f, ok := byID[s.FieldID]; ok {
			f.TimeSlots = append(f.TimeSlots, s)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachSlots - rows error: %w", ErrScanRow, err)
	}

	return nil
}

// buildSearchQuery строит SELECT по фильтру, все условия объединяются через AND
func buildSearchQuery(filter domain.FieldFilter) (string, []interface{}, error) {
	selectBuilder := psqlbuilder.Select(fieldColumns...).
		From("fields").
		OrderBy("name ASC", "id ASC")

	if filter.Location != "" {
		pattern := likePattern(filter.Location)
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"location": pattern},
			squirrel.ILike{"address": pattern},
		})
	}
	if filter.MinPrice != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"price_per_hour": *filter.MinPrice})
	}
	if filter.MaxPrice != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"price_per_hour": *filter.MaxPrice})
	}
	if filter.Type != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"field_type": *filter.Type})
	}
	if len(filter.Amenities) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Expr("amenities && ?", pq.Array(filter.Amenities)))
	}

	return selectBuilder.ToSql()
}

// likePattern экранирует спецсимволы LIKE и оборачивает подстроку в %
func likePattern(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(s) + "%"
}

// scanner общий интерфейс *sql.Row и *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanField(row scanner) (*domain.Field, error) {
	var f domain.Field

	err := row.Scan(
		&f.ID,
		&f.Name,
		&f.Location,
		&f.Address,
		&f.Description,
		&f.Type,
		&f.PricePerHour,
		&f.Rating,
		&f.OwnerID,
		pq.Array(&f.Photos),
		pq.Array(&f.Amenities),
		pq.Array(&f.Rules),
		&f.Contact.Phone,
		&f.Contact.Whatsapp,
		&f.Contact.Email,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &f, nil
}

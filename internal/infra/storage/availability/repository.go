package availability

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/domain"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/pkg/dbmetrics"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/pkg/psqlbuilder"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/pkg/timeutil"
)

// Repository репозиторий расписания: еженедельные окна и блокировки
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ── Еженедельные окна ────────────────────────────────────────────────────────

// GetActiveWindows получает активные окна доступности для дня недели,
// отсортированные по времени начала
func (r *Repository) GetActiveWindows(ctx context.Context, dayOfWeek int) ([]*domain.WeeklyWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "day_of_week", "start_time", "end_time", "is_active").
		From("weekly_availability").
		Where(squirrel.Eq{"day_of_week": dayOfWeek, "is_active": true}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveWindows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveWindows - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanWindows(rows)
}

// ListWindows получает все окна всех дней недели (для админской страницы расписания)
func (r *Repository) ListWindows(ctx context.Context) ([]*domain.WeeklyWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "day_of_week", "start_time", "end_time", "is_active").
		From("weekly_availability").
		OrderBy("day_of_week ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListWindows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWindows - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanWindows(rows)
}

// CreateWindow создает окно доступности
func (r *Repository) CreateWindow(ctx context.Context, window *domain.WeeklyWindow) (*domain.WeeklyWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if window.ID == "" {
		window.ID = uuid.NewString()
	}

	query, args, err := psqlbuilder.Insert("weekly_availability").
		Columns("id", "day_of_week", "start_time", "end_time", "is_active").
		Values(window.ID, window.DayOfWeek, window.StartTime.WithSeconds(), window.EndTime.WithSeconds(), window.IsActive).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateWindow - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: CreateWindow - execute insert: %v", ErrExecQuery, err)
	}

	return window, nil
}

// DeleteWindow удаляет окно доступности
func (r *Repository) DeleteWindow(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "weekly_availability", id, ErrWindowNotFound, "DeleteWindow")
}

// ── Блокировки целого дня ────────────────────────────────────────────────────

// IsDateBlocked проверяет, заблокирована ли дата целиком
func (r *Repository) IsDateBlocked(ctx context.Context, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("blocked_dates").
		Where(squirrel.Eq{"blocked_date": date}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: IsDateBlocked - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: IsDateBlocked - execute query: %v", ErrExecQuery, err)
	}

	return true, nil
}

// ListBlockedDates получает все блокировки дней
func (r *Repository) ListBlockedDates(ctx context.Context) ([]*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "blocked_date", "reason", "created_at").
		From("blocked_dates").
		OrderBy("blocked_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blockedDates := make([]*domain.BlockedDate, 0)
	for rows.Next() {
		var bd domain.BlockedDate
		if err := rows.Scan(&bd.ID, &bd.Date, &bd.Reason, &bd.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListBlockedDates - scan row: %v", ErrScanRow, err)
		}
		blockedDates = append(blockedDates, &bd)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - rows error: %v", ErrScanRow, err)
	}

	return blockedDates, nil
}

// CreateBlockedDate блокирует дату целиком
func (r *Repository) CreateBlockedDate(ctx context.Context, block *domain.BlockedDate) (*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if block.ID == "" {
		block.ID = uuid.NewString()
	}

	query, args, err := psqlbuilder.Insert("blocked_dates").
		Columns("id", "blocked_date", "reason").
		Values(block.ID, block.Date, block.Reason).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedDate - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&block.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedDate - execute insert: %v", ErrExecQuery, err)
	}

	return block, nil
}

// DeleteBlockedDate снимает блокировку даты
func (r *Repository) DeleteBlockedDate(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "blocked_dates", id, ErrBlockNotFound, "DeleteBlockedDate")
}

// ── Блокировки интервалов ────────────────────────────────────────────────────

// GetBlockedRanges получает интервалы блокировок, попадающие на дату,
// как пары время-начала/время-конца внутри дня
func (r *Repository) GetBlockedRanges(ctx context.Context, date time.Time) ([]domain.TimeRange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	query, args, err := psqlbuilder.Select("start_at", "end_at").
		From("blocked_slots").
		Where(squirrel.GtOrEq{"start_at": dayStart}).
		Where(squirrel.Lt{"start_at": dayEnd}).
		OrderBy("start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedRanges - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedRanges - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ranges := make([]domain.TimeRange, 0)
	for rows.Next() {
		var startAt, endAt time.Time
		if err := rows.Scan(&startAt, &endAt); err != nil {
			return nil, fmt.Errorf("%w: GetBlockedRanges - scan row: %v", ErrScanRow, err)
		}
		ranges = append(ranges, projectBlockedRange(startAt, endAt, dayEnd))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBlockedRanges - rows error: %v", ErrScanRow, err)
	}

	return ranges, nil
}

// projectBlockedRange проецирует абсолютные метки блокировки на интервал
// внутри дня. Блокировка, выходящая за полночь, покрывает остаток дня:
// прямая проекция end_at следующего дня дала бы End раньше Start
func projectBlockedRange(startAt, endAt, dayEnd time.Time) domain.TimeRange {
	end := timeutil.New(endAt)
	if !endAt.Before(dayEnd) {
		end = timeutil.EndOfDay
	}
	return domain.TimeRange{
		Start: timeutil.New(startAt),
		End:   end,
	}
}

// ListBlockedSlots получает все блокировки интервалов
func (r *Repository) ListBlockedSlots(ctx context.Context) ([]*domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "start_at", "end_at", "reason", "created_at").
		From("blocked_slots").
		OrderBy("start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blockedSlots := make([]*domain.BlockedSlot, 0)
	for rows.Next() {
		var bs domain.BlockedSlot
		if err := rows.Scan(&bs.ID, &bs.StartAt, &bs.EndAt, &bs.Reason, &bs.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListBlockedSlots - scan row: %v", ErrScanRow, err)
		}
		blockedSlots = append(blockedSlots, &bs)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlockedSlots - rows error: %v", ErrScanRow, err)
	}

	return blockedSlots, nil
}

// CreateBlockedSlot блокирует интервал внутри дня
func (r *Repository) CreateBlockedSlot(ctx context.Context, block *domain.BlockedSlot) (*domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if block.ID == "" {
		block.ID = uuid.NewString()
	}

	query, args, err := psqlbuilder.Insert("blocked_slots").
		Columns("id", "start_at", "end_at", "reason").
		Values(block.ID, block.StartAt, block.EndAt, block.Reason).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedSlot - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&block.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedSlot - execute insert: %v", ErrExecQuery, err)
	}

	return block, nil
}

// DeleteBlockedSlot снимает блокировку интервала
func (r *Repository) DeleteBlockedSlot(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "blocked_slots", id, ErrBlockNotFound, "DeleteBlockedSlot")
}

// ── Вспомогательные методы ───────────────────────────────────────────────────

func (r *Repository) deleteByID(ctx context.Context, table, id string, notFound error, op string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build delete query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute delete: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return notFound
	}

	return nil
}

func scanWindows(rows *sql.Rows) ([]*domain.WeeklyWindow, error) {
	windows := make([]*domain.WeeklyWindow, 0)

	for rows.Next() {
		var window domain.WeeklyWindow
		var startTime, endTime string

		if err := rows.Scan(&window.ID, &window.DayOfWeek, &startTime, &endTime, &window.IsActive); err != nil {
			return nil, fmt.Errorf("%w: scanWindows - scan row: %v", ErrScanRow, err)
		}

		var err error
		window.StartTime, err = timeutil.Parse(startTime)
		if err != nil {
			return nil, fmt.Errorf("%w: scanWindows - parse start_time: %v", ErrScanRow, err)
		}
		window.EndTime, err = timeutil.Parse(endTime)
		if err != nil {
			return nil, fmt.Errorf("%w: scanWindows - parse end_time: %v", ErrScanRow, err)
		}

		windows = append(windows, &window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanWindows - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

package patient

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/domain"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/pkg/dbmetrics"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/pkg/psqlbuilder"
)

var patientColumns = []string{
	"id",
	"full_name",
	"preferred_name",
	"pronouns",
	"email",
	"phone",
	"is_active",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий карточек пациентов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория пациентов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает карточку пациента
// Если в контексте передана активная транзакция, использует её
// (compound-операция create-and-assign выполняется в одной транзакции)
func (r *Repository) Create(ctx context.Context, draft domain.PatientDraft) (*domain.Patient, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	p := &domain.Patient{
		ID:            uuid.NewString(),
		FullName:      draft.FullName,
		PreferredName: draft.PreferredName,
		Pronouns:      draft.Pronouns,
		Email:         draft.Email,
		Phone:         draft.Phone,
		IsActive:      true,
		Notes:         draft.Notes,
	}

	query, args, err := psqlbuilder.Insert("patients").
		Columns("id", "full_name", "preferred_name", "pronouns", "email", "phone", "is_active", "notes").
		Values(p.ID, p.FullName, p.PreferredName, p.Pronouns, p.Email, p.Phone, p.IsActive, p.Notes).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// GetByID получает карточку пациента по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Patient, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(patientColumns...).
		From("patients").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Patient
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.FullName,
		&p.PreferredName,
		&p.Pronouns,
		&p.Email,
		&p.Phone,
		&p.IsActive,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan patient: %v", ErrScanRow, err)
	}

	return &p, nil
}

// List получает все карточки пациентов, отсортированные по имени
func (r *Repository) List(ctx context.Context) ([]*domain.Patient, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(patientColumns...).
		From("patients").
		OrderBy("full_name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	patients := make([]*domain.Patient, 0)
	for rows.Next() {
		var p domain.Patient
		err := rows.Scan(
			&p.ID,
			&p.FullName,
			&p.PreferredName,
			&p.Pronouns,
			&p.Email,
			&p.Phone,
			&p.IsActive,
			&p.Notes,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		patients = append(patients, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return patients, nil
}

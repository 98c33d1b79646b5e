package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/obra-tracker/obra-backend/internal/domain"
)

// ProgressRepository implements domain.ProgressRepository using PostgreSQL
type ProgressRepository struct {
	pool *pgxpool.Pool
}

// NewProgressRepository creates a new ProgressRepository
func NewProgressRepository(pool *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{pool: pool}
}

// Create inserts a new progress entry and assigns it an id
func (r *ProgressRepository) Create(progress *domain.Progress) (*domain.Progress, error) {
	ctx := context.Background()

	progress.ID = uuid.New().String()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO progress (id, date, description, percentage)
		VALUES ($1, $2, $3, $4::numeric)
		RETURNING created_at, updated_at`,
		progress.ID, progress.Date, progress.Description, progress.Percentage.String(),
	)
	if err := row.Scan(&progress.CreatedAt, &progress.UpdatedAt); err != nil {
		return nil, err
	}
	return progress, nil
}

// GetByID retrieves a progress entry by its id
func (r *ProgressRepository) GetByID(id string) (*domain.Progress, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT id, date, description, percentage::text, created_at, updated_at
		FROM progress WHERE id = $1`, id)

	progress, err := scanProgress(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrProgressNotFound
	}
	return progress, err
}

// GetAll retrieves progress entries ordered by date descending
func (r *ProgressRepository) GetAll() ([]*domain.Progress, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, date, description, percentage::text, created_at, updated_at
		FROM progress
		ORDER BY date DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.Progress
	for rows.Next() {
		progress, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, progress)
	}
	return entries, rows.Err()
}

// Update replaces the mutable fields of a progress entry
func (r *ProgressRepository) Update(id string, data *domain.UpdateProgressData) (*domain.Progress, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE progress
		SET date = $2, description = $3, percentage = $4::numeric, updated_at = now()
		WHERE id = $1
		RETURNING id, date, description, percentage::text, created_at, updated_at`,
		id, data.Date, data.Description, data.Percentage.String(),
	)

	progress, err := scanProgress(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrProgressNotFound
	}
	return progress, err
}

// Delete removes a progress entry by id
func (r *ProgressRepository) Delete(id string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM progress WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProgressNotFound
	}
	return nil
}

func scanProgress(row pgx.Row) (*domain.Progress, error) {
	var (
		progress   domain.Progress
		percentage string
	)
	if err := row.Scan(&progress.ID, &progress.Date, &progress.Description,
		&percentage, &progress.CreatedAt, &progress.UpdatedAt); err != nil {
		return nil, err
	}

	var err error
	progress.Percentage, err = parseNumeric(percentage)
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/obra-tracker/obra-backend/internal/domain"
)

// BudgetRepository implements domain.BudgetRepository using PostgreSQL
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

// Create inserts a new budget and assigns it an id
func (r *BudgetRepository) Create(budget *domain.Budget) (*domain.Budget, error) {
	ctx := context.Background()

	budget.ID = uuid.New().String()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO budgets (id, name, category, description)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`,
		budget.ID, budget.Name, budget.Category, textFromPtr(budget.Description),
	)
	if err := row.Scan(&budget.CreatedAt, &budget.UpdatedAt); err != nil {
		return nil, err
	}
	return budget, nil
}

// GetByID retrieves a budget by its id
func (r *BudgetRepository) GetByID(id string) (*domain.Budget, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, category, description, created_at, updated_at
		FROM budgets WHERE id = $1`, id)

	budget, err := scanBudget(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrBudgetNotFound
	}
	return budget, err
}

// GetAll retrieves all budgets ordered by creation time
func (r *BudgetRepository) GetAll() ([]*domain.Budget, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, category, description, created_at, updated_at
		FROM budgets
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []*domain.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	return budgets, rows.Err()
}

// Update replaces the mutable fields of a budget
func (r *BudgetRepository) Update(id string, data *domain.UpdateBudgetData) (*domain.Budget, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE budgets
		SET name = $2, category = $3, description = $4, updated_at = now()
		WHERE id = $1
		RETURNING id, name, category, description, created_at, updated_at`,
		id, data.Name, data.Category, textFromPtr(data.Description),
	)

	budget, err := scanBudget(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrBudgetNotFound
	}
	return budget, err
}

// Delete removes a budget by id. Items are deleted by the service
// before this is called.
func (r *BudgetRepository) Delete(id string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM budgets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var (
		budget      domain.Budget
		description pgtype.Text
	)
	if err := row.Scan(&budget.ID, &budget.Name, &budget.Category,
		&description, &budget.CreatedAt, &budget.UpdatedAt); err != nil {
		return nil, err
	}
	budget.Description = textOrNil(description)
	return &budget, nil
}

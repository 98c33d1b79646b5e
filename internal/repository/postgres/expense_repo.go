package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/obra-tracker/obra-backend/internal/domain"
)

// ExpenseRepository implements domain.ExpenseRepository using PostgreSQL
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

// Create inserts a new expense and assigns it an id
func (r *ExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	ctx := context.Background()

	expense.ID = uuid.New().String()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO expenses (id, date, description, category, amount, currency)
		VALUES ($1, $2, $3, $4, $5::numeric, $6)
		RETURNING created_at, updated_at`,
		expense.ID, expense.Date, expense.Description, expense.Category,
		expense.Amount.String(), string(expense.Currency),
	)
	if err := row.Scan(&expense.CreatedAt, &expense.UpdatedAt); err != nil {
		return nil, err
	}
	return expense, nil
}

// GetByID retrieves an expense by its id
func (r *ExpenseRepository) GetByID(id string) (*domain.Expense, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT id, date, description, category, amount::text, currency, created_at, updated_at
		FROM expenses WHERE id = $1`, id)

	expense, err := scanExpense(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrExpenseNotFound
	}
	return expense, err
}

// GetAll retrieves expenses ordered by date descending, optionally filtered
// by category
func (r *ExpenseRepository) GetAll(category string) ([]*domain.Expense, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, date, description, category, amount::text, currency, created_at, updated_at
		FROM expenses
		WHERE $1 = '' OR category = $1
		ORDER BY date DESC, created_at DESC`, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*domain.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	return expenses, rows.Err()
}

// Update replaces the mutable fields of an expense
func (r *ExpenseRepository) Update(id string, data *domain.UpdateExpenseData) (*domain.Expense, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE expenses
		SET date = $2, description = $3, category = $4, amount = $5::numeric, currency = $6, updated_at = now()
		WHERE id = $1
		RETURNING id, date, description, category, amount::text, currency, created_at, updated_at`,
		id, data.Date, data.Description, data.Category, data.Amount.String(), string(data.Currency),
	)

	expense, err := scanExpense(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrExpenseNotFound
	}
	return expense, err
}

// Delete removes an expense by id
func (r *ExpenseRepository) Delete(id string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var (
		expense  domain.Expense
		date     time.Time
		amount   string
		currency string
	)
	if err := row.Scan(&expense.ID, &date, &expense.Description, &expense.Category,
		&amount, &currency, &expense.CreatedAt, &expense.UpdatedAt); err != nil {
		return nil, err
	}
	expense.Date = date
	expense.Currency = domain.Currency(currency)

	var err error
	expense.Amount, err = parseNumeric(amount)
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/obra-tracker/obra-backend/internal/domain"
)

// BudgetItemRepository implements domain.BudgetItemRepository using PostgreSQL
type BudgetItemRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetItemRepository creates a new BudgetItemRepository
func NewBudgetItemRepository(pool *pgxpool.Pool) *BudgetItemRepository {
	return &BudgetItemRepository{pool: pool}
}

const budgetItemColumns = `
	id, budget_id, name, description, estimated_value::text, actual_value::text,
	purchased, paid_by_card, installments, purchased_at, image_key,
	created_at, updated_at`

// Create inserts a new budget item and assigns it an id
func (r *BudgetItemRepository) Create(item *domain.BudgetItem) (*domain.BudgetItem, error) {
	ctx := context.Background()

	item.ID = uuid.New().String()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO budget_items (id, budget_id, name, description, estimated_value, purchased, paid_by_card)
		VALUES ($1, $2, $3, $4, $5::numeric, $6, $7)
		RETURNING created_at, updated_at`,
		item.ID, item.BudgetID, item.Name, textFromPtr(item.Description),
		item.EstimatedValue.String(), item.Purchased, item.PaidByCard,
	)
	if err := row.Scan(&item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	return item, nil
}

// GetByID retrieves a budget item by its id
func (r *BudgetItemRepository) GetByID(id string) (*domain.BudgetItem, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx,
		`SELECT `+budgetItemColumns+` FROM budget_items WHERE id = $1`, id)

	item, err := scanBudgetItem(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrBudgetItemNotFound
	}
	return item, err
}

// GetAll retrieves every budget item across all budgets
func (r *BudgetItemRepository) GetAll() ([]*domain.BudgetItem, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT `+budgetItemColumns+` FROM budget_items ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBudgetItems(rows)
}

// GetByBudget retrieves the items belonging to one budget
func (r *BudgetItemRepository) GetByBudget(budgetID string) ([]*domain.BudgetItem, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT `+budgetItemColumns+` FROM budget_items WHERE budget_id = $1 ORDER BY name ASC`,
		budgetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBudgetItems(rows)
}

// Update persists the full state of an item, including purchase fields.
// Lifecycle transitions are applied to the entity by the service before
// the item reaches this method.
func (r *BudgetItemRepository) Update(id string, item *domain.BudgetItem) (*domain.BudgetItem, error) {
	ctx := context.Background()

	var actualValue pgtype.Text
	if item.ActualValue != nil {
		actualValue.String = item.ActualValue.String()
		actualValue.Valid = true
	}
	var purchasedAt pgtype.Timestamptz
	if item.PurchasedAt != nil {
		purchasedAt.Time = *item.PurchasedAt
		purchasedAt.Valid = true
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE budget_items
		SET name = $2, description = $3, estimated_value = $4::numeric,
		    actual_value = $5::numeric, purchased = $6, paid_by_card = $7,
		    installments = $8, purchased_at = $9, image_key = $10, updated_at = now()
		WHERE id = $1
		RETURNING `+budgetItemColumns,
		id, item.Name, textFromPtr(item.Description), item.EstimatedValue.String(),
		actualValue, item.Purchased, item.PaidByCard,
		int4FromPtr(item.Installments), purchasedAt, textFromPtr(item.ImageKey),
	)

	updated, err := scanBudgetItem(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrBudgetItemNotFound
	}
	return updated, err
}

// Delete removes a budget item by id
func (r *BudgetItemRepository) Delete(id string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM budget_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetItemNotFound
	}
	return nil
}

func collectBudgetItems(rows pgx.Rows) ([]*domain.BudgetItem, error) {
	var items []*domain.BudgetItem
	for rows.Next() {
		item, err := scanBudgetItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanBudgetItem(row pgx.Row) (*domain.BudgetItem, error) {
	var (
		item           domain.BudgetItem
		description    pgtype.Text
		estimatedValue string
		actualValue    pgtype.Text
		installments   pgtype.Int4
		purchasedAt    pgtype.Timestamptz
		imageKey       pgtype.Text
	)
	if err := row.Scan(&item.ID, &item.BudgetID, &item.Name, &description,
		&estimatedValue, &actualValue, &item.Purchased, &item.PaidByCard,
		&installments, &purchasedAt, &imageKey,
		&item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}

	var err error
	item.EstimatedValue, err = parseNumeric(estimatedValue)
	if err != nil {
		return nil, err
	}
	if actualValue.Valid {
		value, err := parseNumeric(actualValue.String)
		if err != nil {
			return nil, err
		}
		item.ActualValue = &value
	}
	item.Description = textOrNil(description)
	item.ImageKey = textOrNil(imageKey)
	if installments.Valid {
		n := installments.Int32
		item.Installments = &n
	}
	if purchasedAt.Valid {
		t := purchasedAt.Time
		item.PurchasedAt = &t
	}
	return &item, nil
}

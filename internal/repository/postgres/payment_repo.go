package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/obra-tracker/obra-backend/internal/domain"
)

// PaymentRepository implements domain.PaymentRepository using PostgreSQL
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

// Create inserts a new payment and assigns it an id
func (r *PaymentRepository) Create(payment *domain.Payment) (*domain.Payment, error) {
	ctx := context.Background()

	payment.ID = uuid.New().String()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO payments (id, week, worker_name, amount, notes)
		VALUES ($1, $2, $3, $4::numeric, $5)
		RETURNING created_at, updated_at`,
		payment.ID, payment.Week, payment.WorkerName, payment.Amount.String(), textFromPtr(payment.Notes),
	)
	if err := row.Scan(&payment.CreatedAt, &payment.UpdatedAt); err != nil {
		return nil, err
	}
	return payment, nil
}

// GetByID retrieves a payment by its id
func (r *PaymentRepository) GetByID(id string) (*domain.Payment, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT id, week, worker_name, amount::text, notes, created_at, updated_at
		FROM payments WHERE id = $1`, id)

	payment, err := scanPayment(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrPaymentNotFound
	}
	return payment, err
}

// GetAll retrieves payments ordered by week descending
func (r *PaymentRepository) GetAll() ([]*domain.Payment, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, week, worker_name, amount::text, notes, created_at, updated_at
		FROM payments
		ORDER BY week DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

// Update replaces the mutable fields of a payment
func (r *PaymentRepository) Update(id string, data *domain.UpdatePaymentData) (*domain.Payment, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE payments
		SET week = $2, worker_name = $3, amount = $4::numeric, notes = $5, updated_at = now()
		WHERE id = $1
		RETURNING id, week, worker_name, amount::text, notes, created_at, updated_at`,
		id, data.Week, data.WorkerName, data.Amount.String(), textFromPtr(data.Notes),
	)

	payment, err := scanPayment(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrPaymentNotFound
	}
	return payment, err
}

// Delete removes a payment by id
func (r *PaymentRepository) Delete(id string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var (
		payment domain.Payment
		amount  string
		notes   pgtype.Text
	)
	if err := row.Scan(&payment.ID, &payment.Week, &payment.WorkerName,
		&amount, &notes, &payment.CreatedAt, &payment.UpdatedAt); err != nil {
		return nil, err
	}
	payment.Notes = textOrNil(notes)

	var err error
	payment.Amount, err = parseNumeric(amount)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

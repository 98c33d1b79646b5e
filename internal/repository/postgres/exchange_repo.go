package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/obra-tracker/obra-backend/internal/domain"
)

// ExchangeRepository implements domain.ExchangeRepository using PostgreSQL
type ExchangeRepository struct {
	pool *pgxpool.Pool
}

// NewExchangeRepository creates a new ExchangeRepository
func NewExchangeRepository(pool *pgxpool.Pool) *ExchangeRepository {
	return &ExchangeRepository{pool: pool}
}

// Create inserts a new exchange and assigns it an id
func (r *ExchangeRepository) Create(exchange *domain.Exchange) (*domain.Exchange, error) {
	ctx := context.Background()

	exchange.ID = uuid.New().String()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO exchanges (id, date, usd_amount, rate, ars_amount)
		VALUES ($1, $2, $3::numeric, $4::numeric, $5::numeric)
		RETURNING created_at, updated_at`,
		exchange.ID, exchange.Date, exchange.USDAmount.String(), exchange.Rate.String(), exchange.ARSAmount.String(),
	)
	if err := row.Scan(&exchange.CreatedAt, &exchange.UpdatedAt); err != nil {
		return nil, err
	}
	return exchange, nil
}

// GetByID retrieves an exchange by its id
func (r *ExchangeRepository) GetByID(id string) (*domain.Exchange, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT id, date, usd_amount::text, rate::text, ars_amount::text, created_at, updated_at
		FROM exchanges WHERE id = $1`, id)

	exchange, err := scanExchange(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrExchangeNotFound
	}
	return exchange, err
}

// GetAll retrieves exchanges ordered by date descending
func (r *ExchangeRepository) GetAll() ([]*domain.Exchange, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, date, usd_amount::text, rate::text, ars_amount::text, created_at, updated_at
		FROM exchanges
		ORDER BY date DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exchanges []*domain.Exchange
	for rows.Next() {
		exchange, err := scanExchange(rows)
		if err != nil {
			return nil, err
		}
		exchanges = append(exchanges, exchange)
	}
	return exchanges, rows.Err()
}

// Update replaces the mutable fields of an exchange
func (r *ExchangeRepository) Update(id string, data *domain.UpdateExchangeData) (*domain.Exchange, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE exchanges
		SET date = $2, usd_amount = $3::numeric, rate = $4::numeric, ars_amount = $5::numeric, updated_at = now()
		WHERE id = $1
		RETURNING id, date, usd_amount::text, rate::text, ars_amount::text, created_at, updated_at`,
		id, data.Date, data.USDAmount.String(), data.Rate.String(), data.ARSAmount.String(),
	)

	exchange, err := scanExchange(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrExchangeNotFound
	}
	return exchange, err
}

// Delete removes an exchange by id
func (r *ExchangeRepository) Delete(id string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM exchanges WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExchangeNotFound
	}
	return nil
}

func scanExchange(row pgx.Row) (*domain.Exchange, error) {
	var (
		exchange  domain.Exchange
		usdAmount string
		rate      string
		arsAmount string
	)
	if err := row.Scan(&exchange.ID, &exchange.Date, &usdAmount, &rate, &arsAmount,
		&exchange.CreatedAt, &exchange.UpdatedAt); err != nil {
		return nil, err
	}

	var err error
	if exchange.USDAmount, err = parseNumeric(usdAmount); err != nil {
		return nil, err
	}
	if exchange.Rate, err = parseNumeric(rate); err != nil {
		return nil, err
	}
	if exchange.ARSAmount, err = parseNumeric(arsAmount); err != nil {
		return nil, err
	}
	return &exchange, nil
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/society-portal/internal/domain"
)

// PaymentRepository stores completed payments for the dashboard feed.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	ListRecent(ctx context.Context, limit int) ([]domain.Payment, error)
}

type paymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository instantiates repository.
func NewPaymentRepository(pool *pgxpool.Pool) PaymentRepository {
	return &paymentRepository{pool: pool}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	const query = `
        INSERT INTO payments (id, bill_id, resident_id, amount, paid_at)
        VALUES ($1,$2,$3,$4,$5)`

	_, err := r.pool.Exec(ctx, query,
		payment.ID,
		payment.BillID,
		payment.ResidentID,
		payment.Amount,
		payment.PaidAt,
	)
	return err
}

func (r *paymentRepository) ListRecent(ctx context.Context, limit int) ([]domain.Payment, error) {
	const query = `
        SELECT p.id, p.bill_id, p.resident_id, a.name, COALESCE(a.flat_number, ''), p.amount, p.paid_at
        FROM payments p
        JOIN accounts a ON a.id = p.resident_id
        ORDER BY p.paid_at DESC
        LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]domain.Payment, 0, limit)
	for rows.Next() {
		var payment domain.Payment
		if err := rows.Scan(
			&payment.ID,
			&payment.BillID,
			&payment.ResidentID,
			&payment.ResidentName,
			&payment.FlatNumber,
			&payment.Amount,
			&payment.PaidAt,
		); err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/society-portal/internal/domain"
)

// BillWithResident joins a bill with its resident's display fields for the
// admin listing.
type BillWithResident struct {
	domain.Bill
	ResidentName string
	FlatNumber   string
}

// BillRepository encapsulates bill persistence.
type BillRepository interface {
	Create(ctx context.Context, bill *domain.Bill) error
	GetByID(ctx context.Context, id string) (*domain.Bill, error)
	ListAll(ctx context.Context) ([]BillWithResident, error)
	ListByResident(ctx context.Context, residentID string) ([]domain.Bill, error)
	MarkPaid(ctx context.Context, bill *domain.Bill) error
	SumAmountByStatus(ctx context.Context, status domain.BillStatus) (float64, error)
}

type billRepository struct {
	pool *pgxpool.Pool
}

// NewBillRepository instantiates repository.
func NewBillRepository(pool *pgxpool.Pool) BillRepository {
	return &billRepository{pool: pool}
}

func (r *billRepository) Create(ctx context.Context, bill *domain.Bill) error {
	const query = `
        INSERT INTO bills (resident_id, amount, month, year, due_date, status, description)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		bill.ResidentID,
		bill.Amount,
		bill.Month,
		bill.Year,
		bill.DueDate,
		bill.Status,
		bill.Description,
	).Scan(&bill.ID, &bill.CreatedAt, &bill.UpdatedAt)
}

func (r *billRepository) GetByID(ctx context.Context, id string) (*domain.Bill, error) {
	const query = `
        SELECT id, resident_id, amount, month, year, due_date, status, description,
               created_at, updated_at, paid_at
        FROM bills WHERE id=$1`

	var bill domain.Bill
	if err := scanBill(r.pool.QueryRow(ctx, query, id), &bill); err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *billRepository) ListAll(ctx context.Context) ([]BillWithResident, error) {
	const query = `
        SELECT b.id, b.resident_id, b.amount, b.month, b.year, b.due_date, b.status, b.description,
               b.created_at, b.updated_at, b.paid_at, a.name, COALESCE(a.flat_number, '')
        FROM bills b
        JOIN accounts a ON a.id = b.resident_id
        ORDER BY b.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bills := make([]BillWithResident, 0)
	for rows.Next() {
		var bill BillWithResident
		if err := rows.Scan(
			&bill.ID,
			&bill.ResidentID,
			&bill.Amount,
			&bill.Month,
			&bill.Year,
			&bill.DueDate,
			&bill.Status,
			&bill.Description,
			&bill.CreatedAt,
			&bill.UpdatedAt,
			&bill.PaidAt,
			&bill.ResidentName,
			&bill.FlatNumber,
		); err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}
	return bills, rows.Err()
}

func (r *billRepository) ListByResident(ctx context.Context, residentID string) ([]domain.Bill, error) {
	const query = `
        SELECT id, resident_id, amount, month, year, due_date, status, description,
               created_at, updated_at, paid_at
        FROM bills WHERE resident_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, residentID)
}

// MarkPaid flips an Unpaid bill to Paid. The status predicate makes the
// transition single-shot even under concurrent pay requests.
func (r *billRepository) MarkPaid(ctx context.Context, bill *domain.Bill) error {
	const query = `
        UPDATE bills SET status=$1, paid_at=NOW(), updated_at=NOW()
        WHERE id=$2 AND status=$3
        RETURNING paid_at, updated_at`

	if err := r.pool.QueryRow(ctx, query,
		domain.BillStatusPaid,
		bill.ID,
		domain.BillStatusUnpaid,
	).Scan(&bill.PaidAt, &bill.UpdatedAt); err != nil {
		return err
	}
	bill.Status = domain.BillStatusPaid
	return nil
}

func (r *billRepository) SumAmountByStatus(ctx context.Context, status domain.BillStatus) (float64, error) {
	const query = `SELECT COALESCE(SUM(amount), 0) FROM bills WHERE status=$1`

	var total float64
	if err := r.pool.QueryRow(ctx, query, status).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *billRepository) list(ctx context.Context, query string, args ...any) ([]domain.Bill, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bills := make([]domain.Bill, 0)
	for rows.Next() {
		var bill domain.Bill
		if err := scanBill(rows, &bill); err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}
	return bills, rows.Err()
}

func scanBill(row pgx.Row, bill *domain.Bill) error {
	return row.Scan(
		&bill.ID,
		&bill.ResidentID,
		&bill.Amount,
		&bill.Month,
		&bill.Year,
		&bill.DueDate,
		&bill.Status,
		&bill.Description,
		&bill.CreatedAt,
		&bill.UpdatedAt,
		&bill.PaidAt,
	)
}

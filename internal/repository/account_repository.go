package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/society-portal/internal/domain"
)

// AccountRepository defines persistence access for portal accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	ListResidents(ctx context.Context) ([]domain.Account, error)
	CountResidents(ctx context.Context) (int, error)
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	const query = `
        INSERT INTO accounts (name, email, password_hash, role, contact, flat_number)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		account.Name,
		account.Email,
		account.PasswordHash,
		account.Role,
		account.Contact,
		account.FlatNumber,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	const query = `
        SELECT id, name, email, password_hash, role, contact, flat_number, created_at, updated_at
        FROM accounts WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	const query = `
        SELECT id, name, email, password_hash, role, contact, flat_number, created_at, updated_at
        FROM accounts WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *accountRepository) ListResidents(ctx context.Context) ([]domain.Account, error) {
	const query = `
        SELECT id, name, email, password_hash, role, contact, flat_number, created_at, updated_at
        FROM accounts WHERE role='resident'
        ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	residents := make([]domain.Account, 0)
	for rows.Next() {
		var account domain.Account
		if err := scanAccount(rows, &account); err != nil {
			return nil, err
		}
		residents = append(residents, account)
	}
	return residents, rows.Err()
}

func (r *accountRepository) CountResidents(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM accounts WHERE role='resident'`

	var count int
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *accountRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Account, error) {
	var account domain.Account
	if err := scanAccount(r.pool.QueryRow(ctx, query, arg), &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func scanAccount(row pgx.Row, account *domain.Account) error {
	return row.Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.PasswordHash,
		&account.Role,
		&account.Contact,
		&account.FlatNumber,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
}

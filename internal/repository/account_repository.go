package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"recruitment-hub/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, account *domain.Account) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter domain.AccountFilter, params domain.OffsetParams) ([]domain.Account, error)
}

type accountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, email, password_hash, first_name, last_name, role, phone, avatar, skills, company, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		account.ID, account.Email, account.PasswordHash, account.FirstName, account.LastName,
		account.Role, account.Phone, account.Avatar, account.Skills, account.Company, account.Position,
	).Scan(&account.CreatedAt, &account.UpdatedAt)
	return translateError(err)
}

func (r *accountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	var account domain.Account
	query := `SELECT * FROM accounts WHERE id = $1 AND NOT is_deleted`

	err := r.db.GetContext(ctx, &account, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var account domain.Account
	query := `SELECT * FROM accounts WHERE LOWER(email) = LOWER($1) AND NOT is_deleted`

	err := r.db.GetContext(ctx, &account, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE LOWER(email) = LOWER($1) AND NOT is_deleted)`
	err := r.db.GetContext(ctx, &exists, query, email)
	return exists, err
}

func (r *accountRepository) Update(ctx context.Context, account *domain.Account) error {
	query := `
		UPDATE accounts
		SET first_name = :first_name, last_name = :last_name, phone = :phone, avatar = :avatar,
			skills = :skills, company = :company, position = :position, updated_at = NOW()
		WHERE id = :id AND NOT is_deleted`

	_, err := r.db.NamedExecContext(ctx, query, account)
	return err
}

func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE accounts SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND NOT is_deleted`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *accountRepository) List(ctx context.Context, filter domain.AccountFilter, params domain.OffsetParams) ([]domain.Account, error) {
	cond := newConditions("NOT is_deleted")
	if filter.Role != nil {
		cond.add("role = $%d", *filter.Role)
	}
	if filter.Search != "" {
		cond.add("(first_name ILIKE $%[1]d OR last_name ILIKE $%[1]d OR email ILIKE $%[1]d)", likePattern(filter.Search))
	}

	limitClause, args := cond.page(params.Limit, params.Offset)
	query := `SELECT * FROM accounts` + cond.where() + ` ORDER BY created_at DESC` + limitClause

	accounts := []domain.Account{}
	err := r.db.SelectContext(ctx, &accounts, query, args...)
	return accounts, err
}

package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/SscSPs/transaction_processor/internal/apperrors"
	"github.com/SscSPs/transaction_processor/internal/core/domain"
	portsrepo "github.com/SscSPs/transaction_processor/internal/core/ports/repositories"
	"github.com/SscSPs/transaction_processor/internal/models"
	"github.com/SscSPs/transaction_processor/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_id, client_id, currency, balance, reserved_balance, credit_limit, status,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// SaveAccount inserts a new account row.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return insertAccount(ctx, r.Pool, mapping.ToModelAccount(account))
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	modelAcc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountID)
		}
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to find account "+accountID, err)
	}
	domainAcc := mapping.ToDomainAccount(modelAcc)
	return &domainAcc, nil
}

// FindAccountsByClientID lists a client's accounts in creation order.
func (r *PgxAccountRepository) FindAccountsByClientID(ctx context.Context, clientID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE client_id = $1 ORDER BY created_at, account_id;`

	rows, err := r.Pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to list accounts for client "+clientID, err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		modelAcc, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan account row", err)
		}
		accounts = append(accounts, modelAcc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error iterating account rows", err)
	}
	return mapping.ToDomainAccountSlice(accounts), nil
}

// pgxExecutor is satisfied by both the pool and an open transaction.
type pgxExecutor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func insertAccount(ctx context.Context, db pgxExecutor, m models.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := db.Exec(ctx, query,
		m.AccountID,
		m.ClientID,
		m.Currency,
		m.Balance,
		m.ReservedBalance,
		m.CreditLimit,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, m.AccountID)
		}
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to insert account "+m.AccountID, err)
	}
	return nil
}

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.ClientID,
		&m.Currency,
		&m.Balance,
		&m.ReservedBalance,
		&m.CreditLimit,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

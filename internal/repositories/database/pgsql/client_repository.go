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
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxClientRepository struct {
	BaseRepository
}

func newPgxClientRepository(pool *pgxpool.Pool) *PgxClientRepository {
	return &PgxClientRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

// FindClientByID loads a client and the ids of its accounts in link order.
func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `
		SELECT c.client_id, c.name,
		       COALESCE(array_agg(ca.account_id ORDER BY ca.linked_at, ca.account_id)
		                FILTER (WHERE ca.account_id IS NOT NULL), '{}') AS account_ids,
		       c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
		FROM clients c
		LEFT JOIN client_accounts ca ON ca.client_id = c.client_id
		WHERE c.client_id = $1
		GROUP BY c.client_id;
	`
	var m models.Client
	err := r.Pool.QueryRow(ctx, query, clientID).Scan(
		&m.ClientID,
		&m.Name,
		&m.AccountIDs,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("client %s: %w", clientID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to find client "+clientID, err)
	}
	client := mapping.ToDomainClient(m)
	return &client, nil
}

// SaveClientWithAccount upserts the client, inserts the account and links the two in one transaction.
func (r *PgxClientRepository) SaveClientWithAccount(ctx context.Context, client domain.Client, account domain.Account) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	mc := mapping.ToModelClient(client)
	clientQuery := `
		INSERT INTO clients (client_id, name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (client_id) DO UPDATE
		SET last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;
	`
	if _, err := tx.Exec(ctx, clientQuery,
		mc.ClientID, mc.Name, mc.CreatedAt, mc.CreatedBy, mc.LastUpdatedAt, mc.LastUpdatedBy,
	); err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to upsert client "+mc.ClientID, err)
	}

	if err := insertAccount(ctx, tx, mapping.ToModelAccount(account)); err != nil {
		return err
	}

	linkQuery := `
		INSERT INTO client_accounts (client_id, account_id, linked_at)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING;
	`
	if _, err := tx.Exec(ctx, linkQuery, mc.ClientID, account.AccountID, account.CreatedAt); err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to link account "+account.AccountID, err)
	}

	return r.Commit(ctx, tx)
}

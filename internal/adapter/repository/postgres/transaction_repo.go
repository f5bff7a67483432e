package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/jmendoza/cryptowallet-backend/internal/domain"
)

// pq error code for foreign key violations
const foreignKeyViolation = "23503"

// transactionRepository implements domain.TransactionRepository
type transactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *DB) domain.TransactionRepository {
	return &transactionRepository{db: db}
}

// Create appends a new transaction to the ledger
func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, client_id, asset_code, direction, quantity, value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		tx.ID,
		tx.ClientID,
		tx.AssetCode,
		string(tx.Direction),
		tx.Quantity.String(),
		tx.Value.String(),
		tx.Timestamp,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrClientNotFound
		}
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a transaction by its ID
func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `
		SELECT id, client_id, asset_code, direction, quantity, value, created_at
		FROM transactions
		WHERE id = $1
	`

	tx, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction by ID: %w", err)
	}

	return tx, nil
}

// Update replaces the mutable fields of an existing transaction
func (r *transactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	query := `
		UPDATE transactions
		SET asset_code = $2, direction = $3, quantity = $4, value = $5, created_at = $6
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		tx.ID,
		tx.AssetCode,
		string(tx.Direction),
		tx.Quantity.String(),
		tx.Value.String(),
		tx.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// Delete removes a transaction from the ledger
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// List retrieves all transactions, most recent first; the insertion sequence
// breaks timestamp ties
func (r *transactionRepository) List(ctx context.Context) ([]*domain.Transaction, error) {
	query := `
		SELECT id, client_id, asset_code, direction, quantity, value, created_at
		FROM transactions
		ORDER BY created_at DESC, seq
	`

	return r.queryTransactions(ctx, query)
}

// ListByClient retrieves all transactions of one client, most recent first
func (r *transactionRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*domain.Transaction, error) {
	query := `
		SELECT id, client_id, asset_code, direction, quantity, value, created_at
		FROM transactions
		WHERE client_id = $1
		ORDER BY created_at DESC, seq
	`

	return r.queryTransactions(ctx, query, clientID)
}

// NetHoldings replays the (client, asset) history inside the database:
// purchases count positive, sales negative
func (r *transactionRepository) NetHoldings(ctx context.Context, clientID uuid.UUID, assetCode string, excludeID *uuid.UUID) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN direction = 'purchase' THEN quantity ELSE -quantity END), 0)
		FROM transactions
		WHERE client_id = $1 AND asset_code = $2 AND ($3::uuid IS NULL OR id <> $3)
	`

	var netStr string
	if err := r.db.QueryRowContext(ctx, query, clientID, assetCode, excludeID).Scan(&netStr); err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute net holdings: %w", err)
	}

	net, err := decimal.NewFromString(netStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse net holdings: %w", err)
	}

	return net, nil
}

// ExistsForClient reports whether the client owns at least one transaction
func (r *transactionRepository) ExistsForClient(ctx context.Context, clientID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM transactions WHERE client_id = $1)`
	if err := r.db.QueryRowContext(ctx, query, clientID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check client transactions: %w", err)
	}
	return exists, nil
}

func (r *transactionRepository) queryTransactions(ctx context.Context, query string, args ...interface{}) ([]*domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txs := make([]*domain.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return txs, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var tx domain.Transaction
	var direction string
	var quantityStr, valueStr string

	err := row.Scan(
		&tx.ID,
		&tx.ClientID,
		&tx.AssetCode,
		&direction,
		&quantityStr,
		&valueStr,
		&tx.Timestamp,
	)
	if err != nil {
		return nil, err
	}

	tx.Direction = domain.Direction(direction)

	// Parse quantity and value (DECIMAL)
	if tx.Quantity, err = decimal.NewFromString(quantityStr); err != nil {
		return nil, fmt.Errorf("failed to parse quantity: %w", err)
	}
	if tx.Value, err = decimal.NewFromString(valueStr); err != nil {
		return nil, fmt.Errorf("failed to parse value: %w", err)
	}

	return &tx, nil
}

// isForeignKeyViolation reports whether err is a foreign key violation
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation
}

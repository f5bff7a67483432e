package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClientRepository defines the interface for client persistence operations
type ClientRepository interface {
	// Create creates a new client
	// Returns ErrDuplicateEmail if another client already uses the email
	Create(ctx context.Context, client *Client) error

	// GetByID retrieves a client by its ID
	// Returns ErrClientNotFound if the client does not exist
	GetByID(ctx context.Context, id uuid.UUID) (*Client, error)

	// List retrieves all clients
	List(ctx context.Context) ([]*Client, error)

	// Update persists changed client fields
	// Returns ErrClientNotFound if the client does not exist and
	// ErrDuplicateEmail if another client already uses the new email
	Update(ctx context.Context, client *Client) error

	// Delete removes a client
	// Returns ErrClientNotFound if absent and ErrClientHasTransactions
	// while the client still owns ledger entries
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransactionRepository defines the interface for ledger persistence operations.
// It is the sole mutation path into the transaction history.
type TransactionRepository interface {
	// Create appends a new transaction to the ledger
	// Returns ErrClientNotFound if the referenced client does not exist
	Create(ctx context.Context, tx *Transaction) error

	// GetByID retrieves a transaction by its ID
	// Returns ErrTransactionNotFound if absent
	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// Update replaces the mutable fields of an existing transaction
	// Returns ErrTransactionNotFound if absent
	Update(ctx context.Context, tx *Transaction) error

	// Delete removes a transaction from the ledger
	// Returns ErrTransactionNotFound if absent. No balance check is made:
	// removing an entry can only increase headroom for other entries.
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves all transactions, most recent first
	List(ctx context.Context) ([]*Transaction, error)

	// ListByClient retrieves all transactions of one client, most recent
	// first; timestamp ties are broken by insertion order
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*Transaction, error)

	// NetHoldings replays the committed history of (client, asset) and returns
	// the signed quantity sum: +quantity for purchases, -quantity for sales.
	// A non-nil excludeID leaves that transaction out of the replay, used when
	// validating an in-place edit so the entry does not count against itself.
	NetHoldings(ctx context.Context, clientID uuid.UUID, assetCode string, excludeID *uuid.UUID) (decimal.Decimal, error)

	// ExistsForClient reports whether the client owns at least one transaction
	ExistsForClient(ctx context.Context, clientID uuid.UUID) (bool, error)
}

package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmendoza/cryptowallet-backend/internal/domain"
)

// transactionRepository implements domain.TransactionRepository
type transactionRepository struct {
	store *Store
}

// NewTransactionRepository creates an in-memory transaction repository
func NewTransactionRepository(store *Store) domain.TransactionRepository {
	return &transactionRepository{store: store}
}

// Create appends a new transaction to the ledger
func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.clients[tx.ClientID]; !ok {
		return domain.ErrClientNotFound
	}

	cp := *tx
	r.store.byID[tx.ID] = len(r.store.transactions)
	r.store.transactions = append(r.store.transactions, &cp)
	return nil
}

// GetByID retrieves a transaction by its ID
func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	idx, ok := r.store.byID[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}

	cp := *r.store.transactions[idx]
	return &cp, nil
}

// Update replaces the mutable fields of an existing transaction in place,
// keeping its original insertion position
func (r *transactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	idx, ok := r.store.byID[tx.ID]
	if !ok {
		return domain.ErrTransactionNotFound
	}

	cp := *tx
	r.store.transactions[idx] = &cp
	return nil
}

// Delete removes a transaction from the ledger
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	idx, ok := r.store.byID[id]
	if !ok {
		return domain.ErrTransactionNotFound
	}

	r.store.transactions = append(r.store.transactions[:idx], r.store.transactions[idx+1:]...)
	delete(r.store.byID, id)
	for i := idx; i < len(r.store.transactions); i++ {
		r.store.byID[r.store.transactions[i].ID] = i
	}
	return nil
}

// List retrieves all transactions, most recent first
func (r *transactionRepository) List(ctx context.Context) ([]*domain.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*domain.Transaction, 0, len(r.store.transactions))
	for _, tx := range r.store.transactions {
		cp := *tx
		out = append(out, &cp)
	}

	sortMostRecentFirst(out)
	return out, nil
}

// ListByClient retrieves all transactions of one client, most recent first
func (r *transactionRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*domain.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := r.store.snapshotByClient(clientID)
	sortMostRecentFirst(out)
	return out, nil
}

// NetHoldings replays the (client, asset) history and sums signed quantities
func (r *transactionRepository) NetHoldings(ctx context.Context, clientID uuid.UUID, assetCode string, excludeID *uuid.UUID) (decimal.Decimal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	net := decimal.Zero
	for _, tx := range r.store.transactions {
		if tx.ClientID != clientID || tx.AssetCode != assetCode {
			continue
		}
		if excludeID != nil && tx.ID == *excludeID {
			continue
		}
		net = net.Add(tx.SignedQuantity())
	}
	return net, nil
}

// ExistsForClient reports whether the client owns at least one transaction
func (r *transactionRepository) ExistsForClient(ctx context.Context, clientID uuid.UUID) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, tx := range r.store.transactions {
		if tx.ClientID == clientID {
			return true, nil
		}
	}
	return false, nil
}

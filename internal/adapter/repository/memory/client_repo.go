package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jmendoza/cryptowallet-backend/internal/domain"
)

// clientRepository implements domain.ClientRepository
type clientRepository struct {
	store *Store
}

// NewClientRepository creates an in-memory client repository
func NewClientRepository(store *Store) domain.ClientRepository {
	return &clientRepository{store: store}
}

// Create creates a new client
func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.emailTaken(client.Email, uuid.Nil) {
		return domain.ErrDuplicateEmail
	}

	cp := *client
	r.store.clients[client.ID] = &cp
	return nil
}

// GetByID retrieves a client by its ID
func (r *clientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	client, ok := r.store.clients[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}

	cp := *client
	return &cp, nil
}

// List retrieves all clients sorted by name for a stable result
func (r *clientRepository) List(ctx context.Context) ([]*domain.Client, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*domain.Client, 0, len(r.store.clients))
	for _, client := range r.store.clients {
		cp := *client
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Update persists changed client fields
func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.clients[client.ID]; !ok {
		return domain.ErrClientNotFound
	}

	if r.emailTaken(client.Email, client.ID) {
		return domain.ErrDuplicateEmail
	}

	cp := *client
	r.store.clients[client.ID] = &cp
	return nil
}

// Delete removes a client unless it still owns transactions
func (r *clientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.clients[id]; !ok {
		return domain.ErrClientNotFound
	}

	for _, tx := range r.store.transactions {
		if tx.ClientID == id {
			return domain.ErrClientHasTransactions
		}
	}

	delete(r.store.clients, id)
	return nil
}

// emailTaken reports whether a different client already uses the email.
// Callers must hold the write lock.
func (r *clientRepository) emailTaken(email string, selfID uuid.UUID) bool {
	for _, existing := range r.store.clients {
		if existing.ID != selfID && strings.EqualFold(existing.Email, email) {
			return true
		}
	}
	return false
}

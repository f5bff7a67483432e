// Package memory provides in-memory implementations of the domain
// repositories. They back unit and concurrency tests and local runs without
// a database, and honor the same contracts as the postgres adapter.
package memory

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/jmendoza/cryptowallet-backend/internal/domain"
)

// Store holds all in-memory state shared by the repositories.
// Transactions keep their insertion order so timestamp ties are broken
// the same way a serial database would break them.
type Store struct {
	mu           sync.RWMutex
	clients      map[uuid.UUID]*domain.Client
	transactions []*domain.Transaction // insertion order
	byID         map[uuid.UUID]int     // transaction id -> index into transactions
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		clients: make(map[uuid.UUID]*domain.Client),
		byID:    make(map[uuid.UUID]int),
	}
}

// snapshotByClient returns copies of the client's transactions in insertion
// order. Callers must hold at least a read lock.
func (s *Store) snapshotByClient(clientID uuid.UUID) []*domain.Transaction {
	out := make([]*domain.Transaction, 0)
	for _, tx := range s.transactions {
		if tx.ClientID == clientID {
			cp := *tx
			out = append(out, &cp)
		}
	}
	return out
}

// sortMostRecentFirst orders transactions newest first; the stable sort keeps
// insertion order for equal timestamps.
func sortMostRecentFirst(txs []*domain.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Timestamp.After(txs[j].Timestamp)
	})
}

package transaction

import (
	"sync"

	"github.com/google/uuid"
)

// holdingKey identifies the serialization scope of one admission:
// all balance checks and commits for the same (client, asset) pair
// must happen under the same lock.
type holdingKey struct {
	clientID  uuid.UUID
	assetCode string
}

// holdingLocks hands out one mutex per (client, asset) pair so the
// balance-check-then-commit sequence is atomic with respect to any other
// intent on the same pair, while intents on different pairs run in parallel.
type holdingLocks struct {
	locks    map[holdingKey]*sync.Mutex
	mapMutex sync.RWMutex // protects the map itself
}

func newHoldingLocks() *holdingLocks {
	return &holdingLocks{
		locks: make(map[holdingKey]*sync.Mutex),
	}
}

// Lock locks the (client, asset) pair
func (h *holdingLocks) Lock(clientID uuid.UUID, assetCode string) {
	key := holdingKey{clientID: clientID, assetCode: assetCode}

	h.mapMutex.Lock()
	if h.locks[key] == nil {
		h.locks[key] = &sync.Mutex{}
	}
	keyMutex := h.locks[key]
	h.mapMutex.Unlock()

	keyMutex.Lock()
}

// Unlock unlocks the (client, asset) pair
func (h *holdingLocks) Unlock(clientID uuid.UUID, assetCode string) {
	key := holdingKey{clientID: clientID, assetCode: assetCode}

	h.mapMutex.RLock()
	keyMutex := h.locks[key]
	h.mapMutex.RUnlock()

	if keyMutex != nil {
		keyMutex.Unlock()
	}
}

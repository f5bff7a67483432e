package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmendoza/cryptowallet-backend/internal/domain"
)

// moneyPlaces is the fractional precision of settlement-currency values
const moneyPlaces = 2

// Input represents a caller-supplied transaction intent. Direction arrives as
// a raw string and is normalized during admission; a zero Timestamp means
// "use the commit time".
type Input struct {
	ClientID  uuid.UUID
	AssetCode string
	Direction string
	Quantity  decimal.Decimal
	Timestamp time.Time
}

// Record is a committed transaction together with denormalized client
// display fields for the convenience of callers
type Record struct {
	Transaction domain.Transaction
	ClientName  string
	ClientEmail string
}

// Service admits transaction intents into the ledger.
// Admission is a linear pipeline: validate, check balance (sales only),
// price, commit. Balance check and commit for one (client, asset) pair are
// serialized against every other intent on the same pair.
type Service struct {
	ClientRepo      domain.ClientRepository
	TransactionRepo domain.TransactionRepository
	PriceSource     domain.PriceSource

	locks *holdingLocks
}

// NewService creates a new transaction Service instance
func NewService(
	clientRepo domain.ClientRepository,
	transactionRepo domain.TransactionRepository,
	priceSource domain.PriceSource,
) *Service {
	return &Service{
		ClientRepo:      clientRepo,
		TransactionRepo: transactionRepo,
		PriceSource:     priceSource,
		locks:           newHoldingLocks(),
	}
}

// Create admits a fresh transaction intent
// Logic:
//  1. Validate shape: positive quantity, known direction, non-empty asset code
//  2. Resolve the client (rejects with ErrClientNotFound)
//  3. Under the (client, asset) lock: for sales, reject if quantity exceeds
//     current net holdings; fetch the direction-side price; commit
func (s *Service) Create(ctx context.Context, input Input) (*Record, error) {
	direction, assetCode, err := normalizeIntent(input)
	if err != nil {
		return nil, err
	}

	client, err := s.ClientRepo.GetByID(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}

	s.locks.Lock(client.ID, assetCode)
	defer s.locks.Unlock(client.ID, assetCode)

	if direction == domain.DirectionSale {
		if err := s.checkHoldings(ctx, client.ID, assetCode, input.Quantity, nil); err != nil {
			return nil, err
		}
	}

	price, err := s.PriceSource.GetPrice(ctx, assetCode, direction)
	if err != nil {
		return nil, err
	}

	tx := domain.Transaction{
		ID:        uuid.New(),
		ClientID:  client.ID,
		AssetCode: assetCode,
		Direction: direction,
		Quantity:  input.Quantity,
		Value:     input.Quantity.Mul(price).Round(moneyPlaces),
		Timestamp: commitTimestamp(input.Timestamp),
	}

	if err := tx.Validate(); err != nil {
		return nil, err
	}

	if err := s.TransactionRepo.Create(ctx, &tx); err != nil {
		return nil, err
	}

	return &Record{Transaction: tx, ClientName: client.Name, ClientEmail: client.Email}, nil
}

// Update re-admits an existing transaction with new fields. The balance check
// excludes the transaction's own prior contribution so an edit does not count
// against itself; the owning client never changes. Transactions committed
// after this one are not re-validated.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input Input) (*Record, error) {
	existing, err := s.TransactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	direction, assetCode, err := normalizeIntent(input)
	if err != nil {
		return nil, err
	}

	client, err := s.ClientRepo.GetByID(ctx, existing.ClientID)
	if err != nil {
		return nil, err
	}

	s.locks.Lock(client.ID, assetCode)
	defer s.locks.Unlock(client.ID, assetCode)

	if direction == domain.DirectionSale {
		if err := s.checkHoldings(ctx, client.ID, assetCode, input.Quantity, &id); err != nil {
			return nil, err
		}
	}

	price, err := s.PriceSource.GetPrice(ctx, assetCode, direction)
	if err != nil {
		return nil, err
	}

	tx := domain.Transaction{
		ID:        existing.ID,
		ClientID:  existing.ClientID,
		AssetCode: assetCode,
		Direction: direction,
		Quantity:  input.Quantity,
		Value:     input.Quantity.Mul(price).Round(moneyPlaces),
		Timestamp: commitTimestamp(input.Timestamp),
	}

	if err := tx.Validate(); err != nil {
		return nil, err
	}

	if err := s.TransactionRepo.Update(ctx, &tx); err != nil {
		return nil, err
	}

	return &Record{Transaction: tx, ClientName: client.Name, ClientEmail: client.Email}, nil
}

// Delete removes a transaction. No balance check is made: removing an entry
// can only increase headroom for the remaining ones, and later entries are
// not re-validated against the changed history.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.TransactionRepo.Delete(ctx, id)
}

// Get retrieves one committed transaction with its client display fields
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	tx, err := s.TransactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toRecord(ctx, tx, nil)
}

// List retrieves all committed transactions, most recent first
func (s *Service) List(ctx context.Context) ([]*Record, error) {
	txs, err := s.TransactionRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.toRecords(ctx, txs)
}

// ListByClient retrieves one client's transactions, most recent first.
// Returns ErrClientNotFound for an unknown client.
func (s *Service) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*Record, error) {
	if _, err := s.ClientRepo.GetByID(ctx, clientID); err != nil {
		return nil, err
	}

	txs, err := s.TransactionRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return s.toRecords(ctx, txs)
}

// checkHoldings rejects a sale whose quantity exceeds the replayed net
// holdings of (client, asset). Callers must hold the (client, asset) lock.
func (s *Service) checkHoldings(ctx context.Context, clientID uuid.UUID, assetCode string, quantity decimal.Decimal, excludeID *uuid.UUID) error {
	available, err := s.TransactionRepo.NetHoldings(ctx, clientID, assetCode, excludeID)
	if err != nil {
		return err
	}

	if quantity.GreaterThan(available) {
		return &domain.InsufficientHoldingsError{
			AssetCode: assetCode,
			Requested: quantity,
			Available: available,
		}
	}

	return nil
}

// toRecord denormalizes the owning client onto a committed transaction.
// A pre-resolved client cache may be passed to avoid repeated lookups.
func (s *Service) toRecord(ctx context.Context, tx *domain.Transaction, clients map[uuid.UUID]*domain.Client) (*Record, error) {
	client, ok := clients[tx.ClientID]
	if !ok {
		var err error
		client, err = s.ClientRepo.GetByID(ctx, tx.ClientID)
		if err != nil {
			return nil, err
		}
		if clients != nil {
			clients[tx.ClientID] = client
		}
	}

	return &Record{Transaction: *tx, ClientName: client.Name, ClientEmail: client.Email}, nil
}

func (s *Service) toRecords(ctx context.Context, txs []*domain.Transaction) ([]*Record, error) {
	clients := make(map[uuid.UUID]*domain.Client)
	records := make([]*Record, 0, len(txs))
	for _, tx := range txs {
		record, err := s.toRecord(ctx, tx, clients)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// normalizeIntent validates the caller-controlled part of an intent and
// returns the normalized direction and asset code
func normalizeIntent(input Input) (domain.Direction, string, error) {
	direction, err := domain.ParseDirection(input.Direction)
	if err != nil {
		return "", "", err
	}

	assetCode := domain.NormalizeAssetCode(input.AssetCode)
	if assetCode == "" {
		return "", "", &domain.ValidationError{Field: "cryptoCode", Reason: "asset code is required"}
	}

	if input.Quantity.LessThanOrEqual(decimal.Zero) {
		return "", "", &domain.ValidationError{Field: "cryptoAmount", Reason: "quantity must be greater than zero"}
	}

	return direction, assetCode, nil
}

// commitTimestamp defaults a missing caller timestamp to the commit time
func commitTimestamp(ts time.Time) time.Time {
	if ts.IsZero() {
		return time.Now()
	}
	return ts
}

package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Direction represents the side of a ledger entry
type Direction string

const (
	DirectionPurchase Direction = "purchase"
	DirectionSale     Direction = "sale"
)

// ParseDirection normalizes a caller-supplied direction string.
// Input is case-insensitive; anything other than "purchase" or "sale" is rejected.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case string(DirectionPurchase):
		return DirectionPurchase, nil
	case string(DirectionSale):
		return DirectionSale, nil
	default:
		return "", &ValidationError{Field: "direction", Reason: "must be 'purchase' or 'sale'"}
	}
}

// NormalizeAssetCode lower-cases an asset symbol the way it is stored
func NormalizeAssetCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// Transaction represents a single immutable ledger entry in the domain layer
// Once committed, a transaction belongs to exactly one client
type Transaction struct {
	ID        uuid.UUID
	ClientID  uuid.UUID
	AssetCode string          // lower-cased symbol, e.g. "btc"
	Direction Direction       // 'purchase' or 'sale'
	Quantity  decimal.Decimal // asset units, always positive
	Value     decimal.Decimal // settlement-currency amount, always positive
	Timestamp time.Time
}

// Validate ensures the transaction adheres to domain rules
// Returns an error if validation fails
func (t *Transaction) Validate() error {
	if t.ClientID == uuid.Nil {
		return &ValidationError{Field: "clientId", Reason: "client is required"}
	}

	if t.AssetCode == "" {
		return &ValidationError{Field: "cryptoCode", Reason: "asset code is required"}
	}

	if t.Direction != DirectionPurchase && t.Direction != DirectionSale {
		return &ValidationError{Field: "direction", Reason: "must be 'purchase' or 'sale'"}
	}

	// Quantity and value are strictly positive on every committed entry
	if t.Quantity.LessThanOrEqual(decimal.Zero) {
		return &ValidationError{Field: "cryptoAmount", Reason: "quantity must be greater than zero"}
	}

	if t.Value.LessThanOrEqual(decimal.Zero) {
		return &ValidationError{Field: "money", Reason: "value must be greater than zero"}
	}

	return nil
}

// SignedQuantity returns the quantity with the sign implied by the direction:
// positive for a purchase, negative for a sale. Used when replaying holdings.
func (t *Transaction) SignedQuantity() decimal.Decimal {
	if t.Direction == DirectionSale {
		return t.Quantity.Neg()
	}
	return t.Quantity
}

package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PortfolioItem represents one priced holding line in a client's portfolio.
// Derived, never stored: quantity comes from replaying the ledger, the unit
// price from the price source at valuation time.
type PortfolioItem struct {
	AssetCode string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Value     decimal.Decimal // Quantity * UnitPrice
}

// PortfolioSummary represents a client's current holdings priced into the
// settlement currency. Assets sold down to zero are omitted; assets whose
// price lookup failed are omitted as well rather than failing the valuation.
type PortfolioSummary struct {
	ClientID   uuid.UUID
	ClientName string
	Items      []PortfolioItem
	Total      decimal.Decimal
}

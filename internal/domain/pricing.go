package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// PriceSource provides the current unit price of an asset in the settlement
// currency. Purchases are priced on the ask side, sales on the bid side, so
// the two directions yield different prices at the same instant.
//
// Implementations must never panic on upstream faults: a timeout, non-success
// status, malformed body or missing field is returned as ErrPriceUnavailable
// (optionally wrapped with the cause). Every call fetches a fresh quote.
type PriceSource interface {
	GetPrice(ctx context.Context, assetCode string, direction Direction) (decimal.Decimal, error)
}

package portfolio

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmendoza/cryptowallet-backend/internal/domain"
)

// Service computes portfolio valuations from the ledger and the price source
type Service struct {
	ClientRepo      domain.ClientRepository
	TransactionRepo domain.TransactionRepository
	PriceSource     domain.PriceSource
}

// NewService creates a new portfolio Service instance
func NewService(
	clientRepo domain.ClientRepository,
	transactionRepo domain.TransactionRepository,
	priceSource domain.PriceSource,
) *Service {
	return &Service{
		ClientRepo:      clientRepo,
		TransactionRepo: transactionRepo,
		PriceSource:     priceSource,
	}
}

// Valuation prices a client's current holdings into the settlement currency
// Logic:
//  1. Replay the client's full history into net holdings per asset
//  2. Drop assets with zero or negative net holdings
//  3. Price each remaining asset on the purchase side; assets whose price is
//     unavailable are skipped instead of failing the whole valuation
//
// The read is not serialized against concurrent admissions: the result is a
// snapshot that may be immediately stale.
func (s *Service) Valuation(ctx context.Context, clientID uuid.UUID) (*domain.PortfolioSummary, error) {
	client, err := s.ClientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	txs, err := s.TransactionRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	// fold signed quantities per asset, remembering first-seen order so the
	// report is stable between calls
	holdings := make(map[string]decimal.Decimal)
	order := make([]string, 0)
	for i := len(txs) - 1; i >= 0; i-- { // oldest first
		tx := txs[i]
		if _, seen := holdings[tx.AssetCode]; !seen {
			order = append(order, tx.AssetCode)
		}
		holdings[tx.AssetCode] = holdings[tx.AssetCode].Add(tx.SignedQuantity())
	}

	summary := &domain.PortfolioSummary{
		ClientID:   client.ID,
		ClientName: client.Name,
		Items:      make([]domain.PortfolioItem, 0, len(order)),
		Total:      decimal.Zero,
	}

	for _, assetCode := range order {
		quantity := holdings[assetCode]
		if quantity.LessThanOrEqual(decimal.Zero) {
			continue
		}

		price, err := s.PriceSource.GetPrice(ctx, assetCode, domain.DirectionPurchase)
		if err != nil {
			if errors.Is(err, domain.ErrPriceUnavailable) {
				// partial results are acceptable given an unreliable upstream
				continue
			}
			return nil, err
		}

		value := quantity.Mul(price)
		summary.Items = append(summary.Items, domain.PortfolioItem{
			AssetCode: assetCode,
			Quantity:  quantity,
			UnitPrice: price,
			Value:     value,
		})
		summary.Total = summary.Total.Add(value)
	}

	return summary, nil
}

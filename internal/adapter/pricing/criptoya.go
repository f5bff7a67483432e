// Package pricing adapts the criptoya.com market-data API to the domain
// PriceSource interface. The upstream is treated as unreliable: every fault
// is normalized to domain.ErrPriceUnavailable so callers get a typed outcome
// instead of a transport error.
package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmendoza/cryptowallet-backend/internal/domain"
)

const (
	// DefaultBaseURL is the public criptoya API root
	DefaultBaseURL = "https://criptoya.com/api"

	// DefaultExchange quotes are read from
	DefaultExchange = "satoshitango"

	// DefaultCurrency is the settlement currency for quotes
	DefaultCurrency = "ars"

	// DefaultTimeout bounds every upstream call so admission always
	// finishes in bounded time
	DefaultTimeout = 5 * time.Second
)

// quoteResponse mirrors the subset of the ticker body the adapter reads.
// Pointers distinguish a missing field from a zero price.
type quoteResponse struct {
	TotalAsk *decimal.Decimal `json:"totalAsk"`
	TotalBid *decimal.Decimal `json:"totalBid"`
}

// CriptoYaSource implements domain.PriceSource against the criptoya ticker
// endpoint. It holds no cache: every GetPrice call hits the upstream fresh.
type CriptoYaSource struct {
	client   *http.Client
	baseURL  string
	exchange string
	currency string
}

// Option configures a CriptoYaSource
type Option func(*CriptoYaSource)

// WithBaseURL overrides the API root (used by tests to point at a stub server)
func WithBaseURL(baseURL string) Option {
	return func(s *CriptoYaSource) { s.baseURL = baseURL }
}

// WithExchange selects the exchange whose ticker is quoted
func WithExchange(exchange string) Option {
	return func(s *CriptoYaSource) { s.exchange = exchange }
}

// WithCurrency selects the settlement currency of the quotes
func WithCurrency(currency string) Option {
	return func(s *CriptoYaSource) { s.currency = currency }
}

// WithTimeout bounds each upstream request
func WithTimeout(timeout time.Duration) Option {
	return func(s *CriptoYaSource) { s.client.Timeout = timeout }
}

// NewCriptoYaSource creates a price source backed by the criptoya API
func NewCriptoYaSource(opts ...Option) *CriptoYaSource {
	s := &CriptoYaSource{
		client:   &http.Client{Timeout: DefaultTimeout},
		baseURL:  DefaultBaseURL,
		exchange: DefaultExchange,
		currency: DefaultCurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetPrice fetches the current unit price for an asset. Purchases are priced
// on the ask side, sales on the bid side. Asset codes are case-insensitive.
func (s *CriptoYaSource) GetPrice(ctx context.Context, assetCode string, direction domain.Direction) (decimal.Decimal, error) {
	code := domain.NormalizeAssetCode(assetCode)
	if code == "" {
		return decimal.Zero, fmt.Errorf("%w: empty asset code", domain.ErrPriceUnavailable)
	}

	url := fmt.Sprintf("%s/%s/%s/%s", s.baseURL, s.exchange, code, s.currency)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: building request: %v", domain.ErrPriceUnavailable, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		// covers network failures, client timeout and context cancellation
		return decimal.Zero, fmt.Errorf("%w: %v", domain.ErrPriceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decimal.Zero, fmt.Errorf("%w: upstream returned %s", domain.ErrPriceUnavailable, resp.Status)
	}

	var quote quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return decimal.Zero, fmt.Errorf("%w: decoding response: %v", domain.ErrPriceUnavailable, err)
	}

	var price *decimal.Decimal
	switch direction {
	case domain.DirectionPurchase:
		price = quote.TotalAsk
	case domain.DirectionSale:
		price = quote.TotalBid
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown direction %q", domain.ErrPriceUnavailable, direction)
	}

	if price == nil {
		return decimal.Zero, fmt.Errorf("%w: response missing price field", domain.ErrPriceUnavailable)
	}

	return *price, nil
}

package rest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmendoza/cryptowallet-backend/internal/domain"
	"github.com/jmendoza/cryptowallet-backend/internal/usecase/transaction"
)

// createClientRequest is the body of POST /api/clients
type createClientRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// updateClientRequest is the body of PATCH /api/clients/{id};
// absent fields are left unchanged
type updateClientRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// clientResponse mirrors a client without exposing anything beyond display fields
type clientResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// clientDetailResponse is a client together with its transaction history
type clientDetailResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Email        string                `json:"email"`
	Transactions []transactionResponse `json:"transactions"`
}

// transactionRequest is the body of POST /api/transactions and PUT /api/transactions/{id}
type transactionRequest struct {
	ClientID     string          `json:"clientId"`
	CryptoCode   string          `json:"cryptoCode"`
	Action       string          `json:"action"` // "purchase" or "sale", case-insensitive
	CryptoAmount decimal.Decimal `json:"cryptoAmount"`
	Datetime     time.Time       `json:"datetime"` // optional; zero means commit time
}

// transactionResponse is a committed ledger entry with denormalized client fields
type transactionResponse struct {
	ID           string          `json:"id"`
	CryptoCode   string          `json:"cryptoCode"`
	Action       string          `json:"action"`
	CryptoAmount decimal.Decimal `json:"cryptoAmount"`
	Money        decimal.Decimal `json:"money"`
	Datetime     time.Time       `json:"datetime"`
	ClientID     string          `json:"clientId"`
	ClientName   string          `json:"clientName,omitempty"`
	ClientEmail  string          `json:"clientEmail,omitempty"`
}

// portfolioItemResponse is one priced holding line
type portfolioItemResponse struct {
	CryptoCode string          `json:"cryptoCode"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Value      decimal.Decimal `json:"value"`
}

// portfolioResponse is the priced portfolio of one client
type portfolioResponse struct {
	ClientID   string                  `json:"clientId"`
	ClientName string                  `json:"clientName"`
	Items      []portfolioItemResponse `json:"items"`
	Total      decimal.Decimal         `json:"total"`
}

// errorResponse carries a rejection reason to the caller
type errorResponse struct {
	Error string `json:"error"`
}

func toClientResponse(client *domain.Client) clientResponse {
	return clientResponse{
		ID:    client.ID.String(),
		Name:  client.Name,
		Email: client.Email,
	}
}

func toTransactionResponse(record *transaction.Record) transactionResponse {
	tx := record.Transaction
	return transactionResponse{
		ID:           tx.ID.String(),
		CryptoCode:   tx.AssetCode,
		Action:       string(tx.Direction),
		CryptoAmount: tx.Quantity,
		Money:        tx.Value,
		Datetime:     tx.Timestamp,
		ClientID:     tx.ClientID.String(),
		ClientName:   record.ClientName,
		ClientEmail:  record.ClientEmail,
	}
}

func toTransactionResponses(records []*transaction.Record) []transactionResponse {
	out := make([]transactionResponse, 0, len(records))
	for _, record := range records {
		out = append(out, toTransactionResponse(record))
	}
	return out
}

func toPortfolioResponse(summary *domain.PortfolioSummary) portfolioResponse {
	items := make([]portfolioItemResponse, 0, len(summary.Items))
	for _, item := range summary.Items {
		items = append(items, portfolioItemResponse{
			CryptoCode: item.AssetCode,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			Value:      item.Value,
		})
	}

	return portfolioResponse{
		ClientID:   summary.ClientID.String(),
		ClientName: summary.ClientName,
		Items:      items,
		Total:      summary.Total,
	}
}

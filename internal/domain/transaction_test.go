package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_Validate(t *testing.T) {
	validTx := func() Transaction {
		return Transaction{
			ID:        uuid.New(),
			ClientID:  uuid.New(),
			AssetCode: "btc",
			Direction: DirectionPurchase,
			Quantity:  decimal.RequireFromString("0.5"),
			Value:     decimal.RequireFromString("25000.00"),
			Timestamp: time.Now(),
		}
	}

	tests := []struct {
		name    string
		mutate  func(tx *Transaction)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "Valid purchase should pass",
			mutate:  func(tx *Transaction) {},
			wantErr: false,
		},
		{
			name: "Valid sale should pass",
			mutate: func(tx *Transaction) {
				tx.Direction = DirectionSale
			},
			wantErr: false,
		},
		{
			name: "Missing client should fail",
			mutate: func(tx *Transaction) {
				tx.ClientID = uuid.Nil
			},
			wantErr: true,
			errMsg:  "invalid clientId: client is required",
		},
		{
			name: "Missing asset code should fail",
			mutate: func(tx *Transaction) {
				tx.AssetCode = ""
			},
			wantErr: true,
			errMsg:  "invalid cryptoCode: asset code is required",
		},
		{
			name: "Unknown direction should fail",
			mutate: func(tx *Transaction) {
				tx.Direction = "transfer"
			},
			wantErr: true,
			errMsg:  "invalid direction: must be 'purchase' or 'sale'",
		},
		{
			name: "Zero quantity should fail",
			mutate: func(tx *Transaction) {
				tx.Quantity = decimal.Zero
			},
			wantErr: true,
			errMsg:  "invalid cryptoAmount: quantity must be greater than zero",
		},
		{
			name: "Negative quantity should fail",
			mutate: func(tx *Transaction) {
				tx.Quantity = decimal.RequireFromString("-1.5")
			},
			wantErr: true,
			errMsg:  "invalid cryptoAmount: quantity must be greater than zero",
		},
		{
			name: "Zero value should fail",
			mutate: func(tx *Transaction) {
				tx.Value = decimal.Zero
			},
			wantErr: true,
			errMsg:  "invalid money: value must be greater than zero",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTx()
			tt.mutate(&tx)

			err := tx.Validate()

			if tt.wantErr {
				assert.Error(t, err)
				assert.EqualError(t, err, tt.errMsg)
				assert.True(t, IsValidation(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Direction
		wantErr bool
	}{
		{name: "Lowercase purchase", input: "purchase", want: DirectionPurchase},
		{name: "Lowercase sale", input: "sale", want: DirectionSale},
		{name: "Mixed case purchase", input: "Purchase", want: DirectionPurchase},
		{name: "Uppercase sale", input: "SALE", want: DirectionSale},
		{name: "Unknown direction", input: "transfer", wantErr: true},
		{name: "Empty direction", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDirection(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, IsValidation(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNormalizeAssetCode(t *testing.T) {
	assert.Equal(t, "btc", NormalizeAssetCode("BTC"))
	assert.Equal(t, "eth", NormalizeAssetCode("  Eth "))
	assert.Equal(t, "usdc", NormalizeAssetCode("usdc"))
}

func TestTransaction_SignedQuantity(t *testing.T) {
	qty := decimal.RequireFromString("1.25")

	purchase := Transaction{Direction: DirectionPurchase, Quantity: qty}
	sale := Transaction{Direction: DirectionSale, Quantity: qty}

	assert.True(t, purchase.SignedQuantity().Equal(qty))
	assert.True(t, sale.SignedQuantity().Equal(qty.Neg()))
}

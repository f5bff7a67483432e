package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Sentinel errors surfaced by repositories and services
var (
	// ErrClientNotFound is returned when a referenced client does not exist
	ErrClientNotFound = errors.New("client not found")

	// ErrTransactionNotFound is returned when a referenced transaction does not exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrDuplicateEmail is returned when another client already uses the email
	ErrDuplicateEmail = errors.New("a client with this email already exists")

	// ErrClientHasTransactions blocks deletion of a client that still owns ledger entries
	ErrClientHasTransactions = errors.New("client cannot be deleted while it has transactions")

	// ErrPriceUnavailable is the normalized form of every price-source fault:
	// network error, timeout, non-2xx status, malformed body or missing field.
	// Callers never see the underlying cause as a distinct error type.
	ErrPriceUnavailable = errors.New("price unavailable")
)

// ValidationError describes a malformed transaction or client intent.
// It is always detected locally and never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InsufficientHoldingsError rejects a sale that would drive net holdings negative.
// It carries the attempted and available quantities so callers can report both.
type InsufficientHoldingsError struct {
	AssetCode string
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientHoldingsError) Error() string {
	return fmt.Sprintf("insufficient %s holdings: requested %s, available %s",
		e.AssetCode, e.Requested.String(), e.Available.String())
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsInsufficientHoldings reports whether err is an InsufficientHoldingsError
func IsInsufficientHoldings(err error) bool {
	var ie *InsufficientHoldingsError
	return errors.As(err, &ie)
}

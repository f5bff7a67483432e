package rest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jmendoza/cryptowallet-backend/internal/domain"
	"github.com/jmendoza/cryptowallet-backend/internal/usecase/transaction"
)

// listTransactions handles GET /api/transactions
func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	records, err := s.TransactionService.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTransactionResponses(records))
}

// createTransaction handles POST /api/transactions
func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	input, err := decodeTransactionRequest(r, uuid.Nil)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	record, err := s.TransactionService.Create(r.Context(), input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTransactionResponse(record))
}

// getTransaction handles GET /api/transactions/{id}
func (s *Server) getTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	record, err := s.TransactionService.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTransactionResponse(record))
}

// listClientTransactions handles GET /api/transactions/client/{clientID}
func (s *Server) listClientTransactions(w http.ResponseWriter, r *http.Request) {
	clientID, err := parseID(chi.URLParam(r, "clientID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	records, err := s.TransactionService.ListByClient(r.Context(), clientID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTransactionResponses(records))
}

// updateTransaction handles PUT /api/transactions/{id}
func (s *Server) updateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	input, err := decodeTransactionRequest(r, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	record, err := s.TransactionService.Update(r.Context(), id, input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTransactionResponse(record))
}

// deleteTransaction handles DELETE /api/transactions/{id}
func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.TransactionService.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeTransactionRequest decodes an intent body. On updates the client id
// may be omitted since the owning client never changes.
func decodeTransactionRequest(r *http.Request, updatingID uuid.UUID) (transaction.Input, error) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return transaction.Input{}, &domain.ValidationError{Field: "body", Reason: "malformed JSON"}
	}

	input := transaction.Input{
		AssetCode: req.CryptoCode,
		Direction: req.Action,
		Quantity:  req.CryptoAmount,
		Timestamp: req.Datetime,
	}

	if req.ClientID != "" {
		clientID, err := uuid.Parse(req.ClientID)
		if err != nil {
			return transaction.Input{}, &domain.ValidationError{Field: "clientId", Reason: "must be a valid UUID"}
		}
		input.ClientID = clientID
	} else if updatingID == uuid.Nil {
		return transaction.Input{}, &domain.ValidationError{Field: "clientId", Reason: "client is required"}
	}

	return input, nil
}

package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/jmendoza/cryptowallet-backend/internal/domain"
)

// writeJSON renders a JSON body with the given status
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps domain errors onto HTTP statuses. Rejections of a caller's
// intent (validation, insufficient holdings, unavailable price, duplicate
// email) are 400s; unknown entities are 404s; everything else is a 500 whose
// detail stays in the server log.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case domain.IsValidation(err),
		domain.IsInsufficientHoldings(err),
		errors.Is(err, domain.ErrPriceUnavailable),
		errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrClientHasTransactions):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrClientNotFound),
		errors.Is(err, domain.ErrTransactionNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})

	default:
		s.Logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

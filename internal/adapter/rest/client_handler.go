package rest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jmendoza/cryptowallet-backend/internal/domain"
	"github.com/jmendoza/cryptowallet-backend/internal/usecase/client"
)

// listClients handles GET /api/clients
func (s *Server) listClients(w http.ResponseWriter, r *http.Request) {
	clients, err := s.ClientService.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]clientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, toClientResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

// createClient handles POST /api/clients
func (s *Server) createClient(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, &domain.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}

	created, err := s.ClientService.Create(r.Context(), req.Name, req.Email)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toClientResponse(created))
}

// getClient handles GET /api/clients/{id}: the client plus its transactions
func (s *Server) getClient(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	c, err := s.ClientService.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	records, err := s.TransactionService.ListByClient(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, clientDetailResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		Email:        c.Email,
		Transactions: toTransactionResponses(records),
	})
}

// updateClient handles PATCH /api/clients/{id}
func (s *Server) updateClient(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req updateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, &domain.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}

	updated, err := s.ClientService.Update(r.Context(), id, client.UpdateInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toClientResponse(updated))
}

// deleteClient handles DELETE /api/clients/{id}
func (s *Server) deleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.ClientService.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseID parses a UUID path parameter
func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &domain.ValidationError{Field: "id", Reason: "must be a valid UUID"}
	}
	return id, nil
}

package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// getPortfolio handles GET /api/portfolio/{clientID}: the client's current
// holdings priced into the settlement currency. Assets whose price lookup
// failed are simply absent from the response.
func (s *Server) getPortfolio(w http.ResponseWriter, r *http.Request) {
	clientID, err := parseID(chi.URLParam(r, "clientID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	summary, err := s.PortfolioService.Valuation(r.Context(), clientID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPortfolioResponse(summary))
}

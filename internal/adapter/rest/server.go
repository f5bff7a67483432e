// Package rest exposes the services over HTTP. Routing and input-shape
// decoding live here; every business rule stays in the usecase layer.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/jmendoza/cryptowallet-backend/internal/usecase/client"
	"github.com/jmendoza/cryptowallet-backend/internal/usecase/portfolio"
	"github.com/jmendoza/cryptowallet-backend/internal/usecase/transaction"
)

// Server wires the usecase services into an HTTP router
type Server struct {
	ClientService      *client.Service
	TransactionService *transaction.Service
	PortfolioService   *portfolio.Service
	Logger             *zap.Logger
}

// NewServer creates a new REST server instance
func NewServer(
	clientService *client.Service,
	transactionService *transaction.Service,
	portfolioService *portfolio.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		ClientService:      clientService,
		TransactionService: transactionService,
		PortfolioService:   portfolioService,
		Logger:             logger,
	}
}

// Router builds the HTTP route tree
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.Logger))

	r.Route("/api", func(r chi.Router) {
		r.Route("/clients", func(r chi.Router) {
			r.Get("/", s.listClients)
			r.Post("/", s.createClient)
			r.Get("/{id}", s.getClient)
			r.Patch("/{id}", s.updateClient)
			r.Delete("/{id}", s.deleteClient)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", s.listTransactions)
			r.Post("/", s.createTransaction)
			r.Get("/client/{clientID}", s.listClientTransactions)
			r.Get("/{id}", s.getTransaction)
			r.Put("/{id}", s.updateTransaction)
			r.Delete("/{id}", s.deleteTransaction)
		})

		r.Get("/portfolio/{clientID}", s.getPortfolio)
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	return r
}

// Package server is the thin HTTP surface over the ledger facade. It parses
// requests, calls the facade and maps the error taxonomy to status codes;
// no business rules live here.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sheikh-saqib/banking-ledger-system/internal/ledger"
)

type Server struct {
	facade *ledger.Facade
}

func New(facade *ledger.Facade) *Server {
	return &Server{facade: facade}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/accounts", s.handleCreateAccount)
	r.Get("/accounts/{id}", s.handleGetAccount)
	r.Delete("/accounts/{id}", s.handleDeactivateAccount)
	r.Get("/accounts/{id}/transactions", s.handleAccountTransactions)
	r.Post("/accounts/{id}/deposit", s.handleDeposit)
	r.Post("/accounts/{id}/withdraw", s.handleWithdraw)
	r.Post("/transfers", s.handleTransfer)
	r.Get("/users/{id}/accounts", s.handleUserAccounts)
	r.Get("/users/{id}/transactions", s.handleUserTransactions)
	r.Get("/users/{id}/summary", s.handleUserSummary)

	return r
}

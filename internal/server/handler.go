package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/banking-ledger-system/internal/models"
)

type createAccountRequest struct {
	OwnerID     string `json:"owner_id"`
	AccountType string `json:"account_type"`
}

type amountRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

type transferRequest struct {
	FromAccount string          `json:"from_account"`
	ToAccount   string          `json:"to_account"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

type transferResponse struct {
	Debit  models.Transaction `json:"debit"`
	Credit models.Transaction `json:"credit"`
}

type summaryResponse struct {
	TotalBalance decimal.Decimal      `json:"total_balance"`
	Accounts     []models.Account     `json:"accounts"`
	Recent       []models.Transaction `json:"recent_transactions"`
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if !decode(w, r, &req) {
		return
	}
	if req.OwnerID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "owner_id is required"})
		return
	}

	account, err := s.facade.CreateAccount(r.Context(), req.OwnerID, req.AccountType)
	countOperation("create_account", err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	account, err := s.facade.Account(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (s *Server) handleDeactivateAccount(w http.ResponseWriter, r *http.Request) {
	err := s.facade.DeactivateAccount(r.Context(), chi.URLParam(r, "id"))
	countOperation("deactivate_account", err)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAccountTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := s.facade.AccountTransactions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txns)
}

func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if !decode(w, r, &req) {
		return
	}

	txn, err := s.facade.Deposit(r.Context(), chi.URLParam(r, "id"), req.Amount, req.Description)
	countOperation("deposit", err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, txn)
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if !decode(w, r, &req) {
		return
	}

	txn, err := s.facade.Withdraw(r.Context(), chi.URLParam(r, "id"), req.Amount, req.Description)
	countOperation("withdraw", err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, txn)
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if !decode(w, r, &req) {
		return
	}

	debit, credit, err := s.facade.Transfer(r.Context(), req.FromAccount, req.ToAccount, req.Amount, req.Description)
	countOperation("transfer", err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, transferResponse{Debit: debit, Credit: credit})
}

func (s *Server) handleUserAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.facade.UserAccounts(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (s *Server) handleUserTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := s.facade.UserTransactions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txns)
}

// handleUserSummary serves the dashboard figures: total balance, the user's
// accounts and their most recent transactions.
func (s *Server) handleUserSummary(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	ctx := r.Context()

	total, err := s.facade.TotalBalance(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	accounts, err := s.facade.UserAccounts(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	recent, err := s.facade.RecentTransactions(ctx, userID, 0)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{TotalBalance: total, Accounts: accounts, Recent: recent})
}

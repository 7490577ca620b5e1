package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/banking-ledger-system/internal/ledger"
	"github.com/sheikh-saqib/banking-ledger-system/internal/models"
	"github.com/sheikh-saqib/banking-ledger-system/internal/storage/memory"
)

func mustDec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestServer() http.Handler {
	store := memory.NewMemoryLedgerStore()
	return New(ledger.NewFacade(store, store, nil)).Router()
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func createTestAccount(t *testing.T, handler http.Handler, ownerID string) models.Account {
	t.Helper()
	rec := doJSON(t, handler, http.MethodPost, "/accounts", fmt.Sprintf(`{"owner_id":%q}`, ownerID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var account models.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &account))
	return account
}

func TestHealth(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateAccountRequiresOwner(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodPost, "/accounts", `{"account_type":"Checking"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDepositAndGetAccount(t *testing.T) {
	handler := newTestServer()
	account := createTestAccount(t, handler, "user-1")

	rec := doJSON(t, handler, http.MethodPost, "/accounts/"+account.ID+"/deposit", `{"amount":"100.00","description":"payday"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, handler, http.MethodGet, "/accounts/"+account.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Balance.Equal(mustDec("100.00")), "got balance %s", got.Balance)
}

func TestWithdrawInsufficientIsConflict(t *testing.T) {
	handler := newTestServer()
	account := createTestAccount(t, handler, "user-1")

	rec := doJSON(t, handler, http.MethodPost, "/accounts/"+account.ID+"/withdraw", `{"amount":"10.00"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDepositUnknownAccountIsNotFound(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodPost, "/accounts/missing/deposit", `{"amount":"10.00"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDepositBadBodyIsBadRequest(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodPost, "/accounts/any/deposit", `{"amount":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSelfTransferIsUnprocessable(t *testing.T) {
	handler := newTestServer()
	account := createTestAccount(t, handler, "user-1")

	body := fmt.Sprintf(`{"from_account":%q,"to_account":%q,"amount":"10.00"}`, account.ID, account.ID)
	rec := doJSON(t, handler, http.MethodPost, "/transfers", body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestTransferAndUserSummary(t *testing.T) {
	handler := newTestServer()
	a := createTestAccount(t, handler, "user-1")
	b := createTestAccount(t, handler, "user-1")

	rec := doJSON(t, handler, http.MethodPost, "/accounts/"+a.ID+"/deposit", `{"amount":"200.00"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := fmt.Sprintf(`{"from_account":%q,"to_account":%q,"amount":"50.00","description":"move"}`, a.ID, b.ID)
	rec = doJSON(t, handler, http.MethodPost, "/transfers", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var transfer transferResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &transfer))
	assert.True(t, transfer.Debit.Amount.Equal(mustDec("-50.00")))
	assert.True(t, transfer.Credit.Amount.Equal(mustDec("50.00")))

	rec = doJSON(t, handler, http.MethodGet, "/users/user-1/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var summary summaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.True(t, summary.TotalBalance.Equal(mustDec("200.00")), "got %s", summary.TotalBalance)
	assert.Len(t, summary.Accounts, 2)
	assert.Len(t, summary.Recent, 3)
}

func TestDeactivateAccount(t *testing.T) {
	handler := newTestServer()
	account := createTestAccount(t, handler, "user-1")

	rec := doJSON(t, handler, http.MethodDelete, "/accounts/"+account.ID, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/accounts/"+account.ID+"/deposit", `{"amount":"10.00"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

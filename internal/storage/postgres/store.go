// Package postgres implements the ledger store on database/sql with the pq
// driver. Expected schema:
//
//	CREATE TABLE accounts (
//	    id               TEXT PRIMARY KEY,
//	    account_number   TEXT NOT NULL UNIQUE,
//	    account_type     TEXT NOT NULL,
//	    balance          NUMERIC(18,2) NOT NULL,
//	    owner_id         TEXT NOT NULL,
//	    created_at       TIMESTAMPTZ NOT NULL,
//	    last_activity_at TIMESTAMPTZ NOT NULL,
//	    is_active        BOOLEAN NOT NULL
//	);
//
//	CREATE TABLE transactions (
//	    seq         BIGSERIAL PRIMARY KEY,
//	    id          TEXT NOT NULL UNIQUE,
//	    account_id  TEXT NOT NULL REFERENCES accounts (id),
//	    amount      NUMERIC(18,2) NOT NULL,
//	    type        TEXT NOT NULL,
//	    description TEXT NOT NULL,
//	    occurred_at TIMESTAMPTZ NOT NULL
//	);
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/banking-ledger-system/internal/interfaces"
	"github.com/sheikh-saqib/banking-ledger-system/internal/ledger"
	"github.com/sheikh-saqib/banking-ledger-system/internal/models"
)

type PostgresLedgerStore struct {
	db *sql.DB
}

func NewPostgresLedgerStore(db *sql.DB) *PostgresLedgerStore {
	return &PostgresLedgerStore{db: db}
}

// storeErr wraps driver failures so callers can treat them as transient.
func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ledger.ErrStoreUnavailable, err)
}

func (p *PostgresLedgerStore) CreateAccount(ctx context.Context, account models.Account) error {
	const query = `INSERT INTO accounts (id, account_number, account_type, balance, owner_id, created_at, last_activity_at, is_active)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := p.db.ExecContext(ctx, query,
		account.ID, account.AccountNumber, account.AccountType, account.Balance,
		account.OwnerID, account.CreatedAt, account.LastActivityAt, account.IsActive)
	if err != nil {
		return storeErr(err)
	}
	return nil
}

func (p *PostgresLedgerStore) GetAccount(ctx context.Context, accountID string) (models.Account, error) {
	const query = `SELECT id, account_number, account_type, balance, owner_id, created_at, last_activity_at, is_active
	FROM accounts WHERE id = $1`

	var account models.Account
	err := p.db.QueryRowContext(ctx, query, accountID).Scan(
		&account.ID, &account.AccountNumber, &account.AccountType, &account.Balance,
		&account.OwnerID, &account.CreatedAt, &account.LastActivityAt, &account.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, ledger.ErrAccountNotFound
	}
	if err != nil {
		return models.Account{}, storeErr(err)
	}
	return account, nil
}

func (p *PostgresLedgerStore) GetAccountsByOwner(ctx context.Context, ownerID string) ([]models.Account, error) {
	const query = `SELECT id, account_number, account_type, balance, owner_id, created_at, last_activity_at, is_active
	FROM accounts WHERE owner_id = $1`

	rows, err := p.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var account models.Account
		if err := rows.Scan(
			&account.ID, &account.AccountNumber, &account.AccountType, &account.Balance,
			&account.OwnerID, &account.CreatedAt, &account.LastActivityAt, &account.IsActive); err != nil {
			return nil, storeErr(err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}
	return accounts, nil
}

func (p *PostgresLedgerStore) UpdateBalance(ctx context.Context, accountID string, balance decimal.Decimal, lastActivityAt time.Time) error {
	const query = `UPDATE accounts SET balance = $2, last_activity_at = $3 WHERE id = $1`

	res, err := p.db.ExecContext(ctx, query, accountID, balance, lastActivityAt)
	if err != nil {
		return storeErr(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storeErr(err)
	}
	if affected == 0 {
		return ledger.ErrAccountNotFound
	}
	return nil
}

func (p *PostgresLedgerStore) SetAccountActive(ctx context.Context, accountID string, active bool) error {
	const query = `UPDATE accounts SET is_active = $2 WHERE id = $1`

	res, err := p.db.ExecContext(ctx, query, accountID, active)
	if err != nil {
		return storeErr(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storeErr(err)
	}
	if affected == 0 {
		return ledger.ErrAccountNotFound
	}
	return nil
}

// AppendTransaction inserts the entry and reads back the sequence the
// database assigned. Rows are never updated or deleted.
func (p *PostgresLedgerStore) AppendTransaction(ctx context.Context, txn models.Transaction) (models.Transaction, error) {
	const query = `INSERT INTO transactions (id, account_id, amount, type, description, occurred_at)
	VALUES ($1, $2, $3, $4, $5, $6) RETURNING seq`

	err := p.db.QueryRowContext(ctx, query,
		txn.ID, txn.AccountID, txn.Amount, string(txn.Type), txn.Description, txn.OccurredAt).Scan(&txn.Seq)
	if err != nil {
		return models.Transaction{}, storeErr(err)
	}
	return txn, nil
}

const selectTransactions = `SELECT seq, id, account_id, amount, type, description, occurred_at FROM transactions`

func (p *PostgresLedgerStore) GetTransactionsByAccount(ctx context.Context, accountID string) ([]models.Transaction, error) {
	query := selectTransactions + ` WHERE account_id = $1 ORDER BY occurred_at DESC, seq DESC`
	return p.queryTransactions(ctx, query, accountID)
}

func (p *PostgresLedgerStore) GetTransactionsByAccounts(ctx context.Context, accountIDs []string) ([]models.Transaction, error) {
	query := selectTransactions + ` WHERE account_id = ANY($1) ORDER BY occurred_at DESC, seq DESC`
	return p.queryTransactions(ctx, query, pq.Array(accountIDs))
}

func (p *PostgresLedgerStore) queryTransactions(ctx context.Context, query string, args ...any) ([]models.Transaction, error) {
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var txns []models.Transaction
	for rows.Next() {
		var txn models.Transaction
		var txnType string
		if err := rows.Scan(&txn.Seq, &txn.ID, &txn.AccountID, &txn.Amount, &txnType, &txn.Description, &txn.OccurredAt); err != nil {
			return nil, storeErr(err)
		}
		txn.Type = models.TransactionType(txnType)
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}
	return txns, nil
}

// AccountExists implements interfaces.AccountDirectory.
func (p *PostgresLedgerStore) AccountExists(ctx context.Context, accountID string) (bool, error) {
	const query = `SELECT 1 FROM accounts WHERE id = $1 LIMIT 1`

	var one int
	err := p.db.QueryRowContext(ctx, query, accountID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, storeErr(err)
	}
	return true, nil
}

// IsActive implements interfaces.AccountDirectory.
func (p *PostgresLedgerStore) IsActive(ctx context.Context, accountID string) (bool, error) {
	const query = `SELECT is_active FROM accounts WHERE id = $1`

	var active bool
	err := p.db.QueryRowContext(ctx, query, accountID).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ledger.ErrAccountNotFound
	}
	if err != nil {
		return false, storeErr(err)
	}
	return active, nil
}

// OwnerOf implements interfaces.AccountDirectory.
func (p *PostgresLedgerStore) OwnerOf(ctx context.Context, accountID string) (string, error) {
	const query = `SELECT owner_id FROM accounts WHERE id = $1`

	var ownerID string
	err := p.db.QueryRowContext(ctx, query, accountID).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ledger.ErrAccountNotFound
	}
	if err != nil {
		return "", storeErr(err)
	}
	return ownerID, nil
}

// AccountsOf implements interfaces.AccountDirectory.
func (p *PostgresLedgerStore) AccountsOf(ctx context.Context, ownerID string) ([]string, error) {
	const query = `SELECT id FROM accounts WHERE owner_id = $1`

	rows, err := p.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, storeErr(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}
	return ids, nil
}

var (
	_ interfaces.LedgerStore      = (*PostgresLedgerStore)(nil)
	_ interfaces.AccountDirectory = (*PostgresLedgerStore)(nil)
)

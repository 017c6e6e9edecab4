package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a user in the system
type User struct {
	Id        string    `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Account represents a named balance bucket owned by one user.
// The (user_id, name) pair is unique; name is stored in slug form.
type Account struct {
	Id        string          `db:"id"`
	UserId    string          `db:"user_id"`
	Name      string          `db:"name"`
	Balance   decimal.Decimal `db:"balance"`
	Version   int64           `db:"version"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// Transaction represents one immutable ledger entry (audit trail).
// SourceAccountId is empty for deposits, DestAccountId for withdrawals;
// DestUserId is set only on transfers.
type Transaction struct {
	Id              string          `db:"id"`
	Type            string          `db:"transaction_type"`
	SourceAccountId string          `db:"source_account_id"`
	DestAccountId   string          `db:"dest_account_id"`
	UserId          string          `db:"user_id"`
	DestUserId      string          `db:"dest_user_id"`
	Amount          decimal.Decimal `db:"amount"`
	Reference       string          `db:"reference"`
	CreatedAt       time.Time       `db:"created_at"`
}

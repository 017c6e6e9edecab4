package store

import (
	"context"
	"errors"

	"personal-ledger-go/internal/models"

	"github.com/shopspring/decimal"
)

// Sentinel errors shared across all backend implementations.
var (
	ErrInvalidAmount          = errors.New("amount must be greater than zero")
	ErrInvalidAccountName     = errors.New("account name cannot be empty")
	ErrAccountNotFound        = errors.New("account not found")
	ErrAccountExists          = errors.New("account already exists")
	ErrAccountLimitExceeded   = errors.New("account limit exceeded")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrSameAccountTransfer    = errors.New("source and destination account are the same")
	ErrConcurrentModification = errors.New("concurrent modification detected")
	ErrTransientStorage       = errors.New("transient storage failure")
	ErrUserNotFound           = errors.New("user not found")
	ErrUserExists             = errors.New("user already exists")
)

// Transaction types recorded in the ledger.
const (
	TypeDeposit  = "deposit"
	TypeWithdraw = "withdraw"
	TypeTransfer = "transfer"
)

// AppendParams contains the parameters for appending a ledger entry.
// SourceAccountId is empty for deposits, DestAccountId is empty for
// withdrawals, DestUserId is set only for transfers.
type AppendParams struct {
	Type            string
	SourceAccountId string
	DestAccountId   string
	UserId          string
	DestUserId      string
	Amount          decimal.Decimal
	Reference       string
}

// AccountStore is the persistence contract for account records. ApplyDelta
// must be atomic per account: concurrent callers never observe a lost update.
type AccountStore interface {
	GetAccount(ctx context.Context, userId, name string) (*models.Account, error)
	CreateAccount(ctx context.Context, userId, name string, initialBalance decimal.Decimal) (*models.Account, error)
	ApplyDelta(ctx context.Context, userId, name string, delta decimal.Decimal) (*models.Account, error)
	GetUserAccounts(ctx context.Context, userId string) ([]models.Account, error)
}

// TransactionLog is the append-only audit trail. No update or delete is
// exposed; a committed entry is permanent.
type TransactionLog interface {
	Append(ctx context.Context, params AppendParams) (*models.Transaction, error)
	GetHistory(ctx context.Context, userId string, limit, offset int) ([]models.Transaction, error)
	SumMovements(ctx context.Context, accountId string) (decimal.Decimal, error)
}

// UserStore manages the user records accounts hang off.
type UserStore interface {
	GetUsers(ctx context.Context) ([]models.User, error)
	GetUserById(ctx context.Context, userId string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, userId, name, email string) (*models.User, error)
}

// LedgerStore is the full contract a storage backend must satisfy.
type LedgerStore interface {
	AccountStore
	TransactionLog
	UserStore
	Close()
}

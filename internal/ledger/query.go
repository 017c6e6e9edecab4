package ledger

import (
	"context"

	"personal-ledger-go/internal/slug"
	"personal-ledger-go/internal/store"

	"github.com/shopspring/decimal"
)

// QueryService is the read-only side of the ledger: single-account balance
// and per-user totals. Every call reads the latest committed state straight
// from the account store; nothing is cached.
type QueryService struct {
	accounts store.AccountStore
}

func NewQueryService(accounts store.AccountStore) *QueryService {
	return &QueryService{accounts: accounts}
}

// GetAccountBalance returns the current balance of the named account owned
// by userId.
func (q *QueryService) GetAccountBalance(ctx context.Context, name, userId string) (decimal.Decimal, error) {
	account, err := q.accounts.GetAccount(ctx, userId, slug.Slugify(name))
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

// GetUserTotalBalance returns the sum of balances over every account the
// user owns, zero when the user owns none.
func (q *QueryService) GetUserTotalBalance(ctx context.Context, userId string) (decimal.Decimal, error) {
	accounts, err := q.accounts.GetUserAccounts(ctx, userId)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, account := range accounts {
		total = total.Add(account.Balance)
	}
	return total, nil
}

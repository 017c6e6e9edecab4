package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"personal-ledger-go/internal/models"
	"personal-ledger-go/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// GetAccount returns the account owned by userId with the given canonical
// name (O(1) lookup against the unique user/name index).
func (s *Service) GetAccount(ctx context.Context, userId, name string) (*models.Account, error) {
	zap.L().Debug("Getting account", zap.String("user_id", userId), zap.String("name", name))

	account, err := scanAccount(s.db.QueryRowContext(ctx, queryGetAccount, userId, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s/%s", store.ErrAccountNotFound, userId, name)
		}
		zap.L().Error("Failed to get account", zap.String("user_id", userId), zap.String("name", name), zap.Error(err))
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return account, nil
}

// GetUserAccounts returns every account owned by a user, ordered by name.
func (s *Service) GetUserAccounts(ctx context.Context, userId string) ([]models.Account, error) {
	rows, err := s.db.QueryContext(ctx, queryGetUserAccounts, userId)
	if err != nil {
		zap.L().Error("Failed to get user accounts", zap.String("user_id", userId), zap.Error(err))
		return nil, fmt.Errorf("failed to get user accounts: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var accounts []models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *account)
	}

	if err := rows.Err(); err != nil {
		zap.L().Error("Error during account row iteration", zap.Error(err))
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}

	return accounts, nil
}

// CreateAccount inserts a new account for the user. The owner may hold at
// most maxAccounts accounts; the count and the insert run in one transaction
// so two concurrent creates cannot both slip under the cap.
func (s *Service) CreateAccount(ctx context.Context, userId, name string, initialBalance decimal.Decimal) (*models.Account, error) {
	zap.L().Info("Creating account",
		zap.String("user_id", userId),
		zap.String("name", name),
		zap.String("initial_balance", initialBalance.String()))

	if initialBalance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance %s", store.ErrInvalidAmount, initialBalance.String())
	}

	if _, err := s.GetUserById(ctx, userId); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, queryCountUserAccounts, userId).Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to count accounts: %w", err)
	}
	if count >= s.maxAccounts {
		return nil, fmt.Errorf("%w: user %s already holds %d accounts", store.ErrAccountLimitExceeded, userId, count)
	}

	accountId := uuid.New().String()
	if _, err := tx.ExecContext(ctx, queryInsertAccount, accountId, userId, name, initialBalance.String()); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, fmt.Errorf("%w: %s/%s", store.ErrAccountExists, userId, name)
		}
		return nil, fmt.Errorf("failed to insert account: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return s.GetAccount(ctx, userId, name)
}

// ApplyDelta atomically applies a signed amount to an account balance.
// The read and the version-checked update run inside one transaction: a
// concurrent writer invalidates the version and the caller gets
// store.ErrConcurrentModification to retry on. A delta that would drive the
// balance negative is rejected with store.ErrInsufficientFunds and nothing
// is written.
func (s *Service) ApplyDelta(ctx context.Context, userId, name string, delta decimal.Decimal) (*models.Account, error) {
	zap.L().Debug("Applying balance delta",
		zap.String("user_id", userId),
		zap.String("name", name),
		zap.String("delta", delta.String()))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	account, err := scanAccount(tx.QueryRowContext(ctx, queryGetAccount, userId, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s/%s", store.ErrAccountNotFound, userId, name)
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	newBalance := account.Balance.Add(delta)
	if newBalance.IsNegative() {
		return nil, fmt.Errorf("%w: balance %s, requested %s",
			store.ErrInsufficientFunds, account.Balance.String(), delta.Neg().String())
	}

	result, err := tx.ExecContext(ctx, queryUpdateAccountBalance,
		newBalance.String(), userId, name, account.Version)
	if err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("balance update failed - %w", store.ErrConcurrentModification)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	account.Balance = newBalance
	account.Version++
	account.UpdatedAt = time.Now()

	zap.L().Debug("Balance delta applied",
		zap.String("account_id", account.Id),
		zap.String("new_balance", newBalance.String()))
	return account, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var account models.Account
	var balanceStr string
	err := row.Scan(&account.Id, &account.UserId, &account.Name, &balanceStr,
		&account.Version, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return nil, err
	}

	account.Balance, err = decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse balance '%s': %w", balanceStr, err)
	}

	return &account, nil
}

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"personal-ledger-go/internal/models"
	"personal-ledger-go/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Append writes one immutable ledger entry and returns the stored record.
// There is deliberately no corresponding update or delete.
func (s *Service) Append(ctx context.Context, params store.AppendParams) (*models.Transaction, error) {
	zap.L().Info("Appending ledger entry",
		zap.String("type", params.Type),
		zap.String("user_id", params.UserId),
		zap.String("amount", params.Amount.String()))

	transactionId := uuid.New().String()
	now := time.Now()

	transaction := &models.Transaction{}
	var source, dest, destUser, reference sql.NullString
	var amountStr string
	err := s.db.QueryRowContext(ctx, queryInsertTransaction,
		transactionId, params.Type,
		nullable(params.SourceAccountId), nullable(params.DestAccountId),
		params.UserId, nullable(params.DestUserId),
		params.Amount.String(), nullable(params.Reference), now).
		Scan(&transaction.Id, &transaction.Type, &source, &dest,
			&transaction.UserId, &destUser, &amountStr, &reference, &transaction.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	transaction.SourceAccountId = source.String
	transaction.DestAccountId = dest.String
	transaction.DestUserId = destUser.String
	transaction.Reference = reference.String

	transaction.Amount, err = decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse returned amount: %w", err)
	}

	return transaction, nil
}

// GetHistory returns paginated ledger entries where the user is either the
// acting user or the transfer recipient, newest first.
func (s *Service) GetHistory(ctx context.Context, userId string, limit, offset int) ([]models.Transaction, error) {
	zap.L().Debug("Getting transaction history",
		zap.String("user_id", userId),
		zap.Int("limit", limit),
		zap.Int("offset", offset))

	rows, err := s.db.QueryContext(ctx, queryGetTransactionHistory, userId, userId, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction history: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var transactions []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		var source, dest, destUser, reference sql.NullString
		var amountStr string
		err := rows.Scan(&tx.Id, &tx.Type, &source, &dest,
			&tx.UserId, &destUser, &amountStr, &reference, &tx.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		tx.SourceAccountId = source.String
		tx.DestAccountId = dest.String
		tx.DestUserId = destUser.String
		tx.Reference = reference.String

		tx.Amount, err = decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
		}

		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		zap.L().Error("Error during transaction row iteration", zap.Error(err))
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	return transactions, nil
}

// SumMovements computes an account's net balance from its ledger entries:
// credits where the account is the destination, debits where it is the
// source. Summation happens in Go decimals, not SQL, so no float drift
// creeps into reconciliation.
func (s *Service) SumMovements(ctx context.Context, accountId string) (decimal.Decimal, error) {
	rows, err := s.db.QueryContext(ctx, queryGetAccountMovements, accountId, accountId, accountId)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get account movements: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	total := decimal.Zero
	for rows.Next() {
		var amountStr string
		var sign int
		if err := rows.Scan(&amountStr, &sign); err != nil {
			return decimal.Zero, fmt.Errorf("failed to scan movement: %w", err)
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
		}

		if sign < 0 {
			amount = amount.Neg()
		}
		total = total.Add(amount)
	}

	if err := rows.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("error iterating movement rows: %w", err)
	}

	return total, nil
}

// ReconcileAccount verifies that an account's stored balance matches the sum
// of its ledger entries.
func (s *Service) ReconcileAccount(ctx context.Context, userId, name string) error {
	zap.L().Info("Reconciling account", zap.String("user_id", userId), zap.String("name", name))

	account, err := s.GetAccount(ctx, userId, name)
	if err != nil {
		return err
	}

	calculated, err := s.SumMovements(ctx, account.Id)
	if err != nil {
		return fmt.Errorf("failed to calculate balance from ledger: %w", err)
	}

	if !account.Balance.Equal(calculated) {
		zap.L().Error("Account reconciliation failed",
			zap.String("account_id", account.Id),
			zap.String("stored_balance", account.Balance.String()),
			zap.String("calculated_balance", calculated.String()),
			zap.String("difference", account.Balance.Sub(calculated).String()))
		return fmt.Errorf("balance mismatch for %s/%s: stored=%s, calculated=%s",
			userId, name, account.Balance.String(), calculated.String())
	}

	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

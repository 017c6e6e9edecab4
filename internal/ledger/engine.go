/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"personal-ledger-go/internal/models"
	"personal-ledger-go/internal/slug"
	"personal-ledger-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const defaultRetryAttempts = 3

// Collector receives operation outcomes for metrics reporting.
type Collector interface {
	OperationProcessed(operation string, seconds float64)
	OperationFailed(operation string)
}

// Options configures an Engine.
type Options struct {
	// RetryAttempts bounds how often a balance mutation is retried when the
	// store reports a concurrent modification. Defaults to 3.
	RetryAttempts int
	// Collector is optional; nil disables metrics.
	Collector Collector
}

// Engine is the transactional core: it owns the write path to account
// balances and the transaction log. Each operation resolves accounts fresh
// by (owner, name) key, mutates balances through the store's atomic
// ApplyDelta, and appends exactly one ledger entry on success.
type Engine struct {
	accounts  store.AccountStore
	log       store.TransactionLog
	locks     *accountLocks
	attempts  int
	collector Collector
}

// MutationOutcome is the result of a committed deposit or withdrawal.
type MutationOutcome struct {
	Account *models.Account
	Entry   *models.Transaction
}

// TransferOutcome is the result of a committed transfer.
type TransferOutcome struct {
	Source *models.Account
	Dest   *models.Account
	Entry  *models.Transaction
}

func NewEngine(accounts store.AccountStore, log store.TransactionLog, opts Options) *Engine {
	attempts := opts.RetryAttempts
	if attempts <= 0 {
		attempts = defaultRetryAttempts
	}
	return &Engine{
		accounts:  accounts,
		log:       log,
		locks:     newAccountLocks(),
		attempts:  attempts,
		collector: opts.Collector,
	}
}

// CreateAccount creates a named account for the user. A positive initial
// balance is recorded as a funding deposit in the log so the account's
// ledger entries always sum to its stored balance.
func (e *Engine) CreateAccount(ctx context.Context, name, userId string, initialBalance decimal.Decimal) (*models.Account, error) {
	name = slug.Slugify(name)
	if name == "" {
		return nil, store.ErrInvalidAccountName
	}

	unlock := e.locks.lockOne(accountKey(userId, name))
	defer unlock()

	account, err := e.accounts.CreateAccount(ctx, userId, name, initialBalance)
	if err != nil {
		return nil, err
	}

	if initialBalance.IsPositive() {
		if _, err := e.log.Append(ctx, store.AppendParams{
			Type:          store.TypeDeposit,
			DestAccountId: account.Id,
			UserId:        userId,
			Amount:        initialBalance,
			Reference:     "initial balance",
		}); err != nil {
			zap.L().Error("Failed to record initial balance; account may need reconciliation",
				zap.String("account_id", account.Id),
				zap.Error(err))
			return nil, fmt.Errorf("failed to record initial balance: %w", err)
		}
	}

	return account, nil
}

// Deposit credits amount to the account owned by userId.
func (e *Engine) Deposit(ctx context.Context, name, userId string, amount decimal.Decimal) (*MutationOutcome, error) {
	return e.mutate(ctx, store.TypeDeposit, name, userId, amount)
}

// Withdraw debits amount from the account owned by userId. A withdrawal
// that would drive the balance negative fails with
// store.ErrInsufficientFunds and changes nothing.
func (e *Engine) Withdraw(ctx context.Context, name, userId string, amount decimal.Decimal) (*MutationOutcome, error) {
	return e.mutate(ctx, store.TypeWithdraw, name, userId, amount)
}

func (e *Engine) mutate(ctx context.Context, opType, name, userId string, amount decimal.Decimal) (*MutationOutcome, error) {
	started := time.Now()

	if amount.LessThanOrEqual(decimal.Zero) {
		e.opFailed(opType)
		return nil, fmt.Errorf("%w: %s", store.ErrInvalidAmount, amount.String())
	}

	name = slug.Slugify(name)
	unlock := e.locks.lockOne(accountKey(userId, name))
	defer unlock()

	account, err := e.accounts.GetAccount(ctx, userId, name)
	if err != nil {
		e.opFailed(opType)
		return nil, err
	}

	delta := amount
	params := store.AppendParams{
		Type:          opType,
		DestAccountId: account.Id,
		UserId:        userId,
		Amount:        amount,
	}
	if opType == store.TypeWithdraw {
		delta = amount.Neg()
		params = store.AppendParams{
			Type:            opType,
			SourceAccountId: account.Id,
			UserId:          userId,
			Amount:          amount,
		}
	}

	updated, err := e.applyDelta(ctx, userId, name, delta)
	if err != nil {
		e.opFailed(opType)
		return nil, err
	}

	entry, err := e.log.Append(ctx, params)
	if err != nil {
		// Keep the store and the log agreeing: undo the delta so the failed
		// operation leaves no trace in either.
		e.compensate(ctx, userId, name, delta.Neg())
		e.opFailed(opType)
		return nil, fmt.Errorf("failed to record %s: %w", opType, err)
	}

	zap.L().Info("Operation committed",
		zap.String("type", opType),
		zap.String("user_id", userId),
		zap.String("account", name),
		zap.String("amount", amount.String()),
		zap.String("new_balance", updated.Balance.String()))

	e.opProcessed(opType, started)
	return &MutationOutcome{Account: updated, Entry: entry}, nil
}

// Transfer moves amount from the source account to the destination account.
// The debit is applied before the credit; if the credit fails, the source is
// re-credited before the error is returned so no money is created or
// destroyed. Locks are taken in global key order to rule out circular wait
// between opposing transfers.
func (e *Engine) Transfer(ctx context.Context, srcName, srcUserId, dstName, dstUserId string, amount decimal.Decimal) (*TransferOutcome, error) {
	started := time.Now()

	if amount.LessThanOrEqual(decimal.Zero) {
		e.opFailed(store.TypeTransfer)
		return nil, fmt.Errorf("%w: %s", store.ErrInvalidAmount, amount.String())
	}

	srcName = slug.Slugify(srcName)
	dstName = slug.Slugify(dstName)
	srcKey := accountKey(srcUserId, srcName)
	dstKey := accountKey(dstUserId, dstName)
	if srcKey == dstKey {
		e.opFailed(store.TypeTransfer)
		return nil, fmt.Errorf("%w: %s", store.ErrSameAccountTransfer, srcKey)
	}

	unlock := e.locks.lockPair(srcKey, dstKey)
	defer unlock()

	source, err := e.accounts.GetAccount(ctx, srcUserId, srcName)
	if err != nil {
		e.opFailed(store.TypeTransfer)
		return nil, err
	}
	dest, err := e.accounts.GetAccount(ctx, dstUserId, dstName)
	if err != nil {
		e.opFailed(store.TypeTransfer)
		return nil, err
	}

	// Debit first. An insufficient balance aborts before anything changed.
	source, err = e.applyDelta(ctx, srcUserId, srcName, amount.Neg())
	if err != nil {
		e.opFailed(store.TypeTransfer)
		return nil, err
	}

	dest, err = e.applyDelta(ctx, dstUserId, dstName, amount)
	if err != nil {
		// The debit already committed; re-credit the source to restore
		// conservation before surfacing the failure.
		e.compensate(ctx, srcUserId, srcName, amount)
		e.opFailed(store.TypeTransfer)
		return nil, fmt.Errorf("destination credit failed: %w", err)
	}

	entry, err := e.log.Append(ctx, store.AppendParams{
		Type:            store.TypeTransfer,
		SourceAccountId: source.Id,
		DestAccountId:   dest.Id,
		UserId:          srcUserId,
		DestUserId:      dstUserId,
		Amount:          amount,
	})
	if err != nil {
		e.compensate(ctx, dstUserId, dstName, amount.Neg())
		e.compensate(ctx, srcUserId, srcName, amount)
		e.opFailed(store.TypeTransfer)
		return nil, fmt.Errorf("failed to record transfer: %w", err)
	}

	zap.L().Info("Transfer committed",
		zap.String("source", srcKey),
		zap.String("dest", dstKey),
		zap.String("amount", amount.String()),
		zap.String("source_balance", source.Balance.String()),
		zap.String("dest_balance", dest.Balance.String()))

	e.opProcessed(store.TypeTransfer, started)
	return &TransferOutcome{Source: source, Dest: dest, Entry: entry}, nil
}

// applyDelta wraps the store's single-attempt CAS in a bounded retry loop.
// Only concurrent-modification conflicts are retried; exhausting the budget
// surfaces as a transient storage failure.
func (e *Engine) applyDelta(ctx context.Context, userId, name string, delta decimal.Decimal) (*models.Account, error) {
	var lastErr error
	for attempt := 0; attempt < e.attempts; attempt++ {
		account, err := e.accounts.ApplyDelta(ctx, userId, name, delta)
		if err == nil {
			return account, nil
		}
		if !errors.Is(err, store.ErrConcurrentModification) {
			return nil, err
		}
		lastErr = err
		zap.L().Warn("Retrying balance mutation after version conflict",
			zap.String("user_id", userId),
			zap.String("account", name),
			zap.Int("attempt", attempt+1))
	}
	return nil, fmt.Errorf("%w: %v", store.ErrTransientStorage, lastErr)
}

// compensate applies a corrective delta after a partial failure. A
// compensation that itself fails is logged loudly; the reconcile report
// will catch the resulting drift.
func (e *Engine) compensate(ctx context.Context, userId, name string, delta decimal.Decimal) {
	if _, err := e.applyDelta(ctx, userId, name, delta); err != nil {
		zap.L().Error("Compensation failed; account may need reconciliation",
			zap.String("user_id", userId),
			zap.String("account", name),
			zap.String("delta", delta.String()),
			zap.Error(err))
	}
}

func (e *Engine) opProcessed(opType string, started time.Time) {
	if e.collector != nil {
		e.collector.OperationProcessed(opType, time.Since(started).Seconds())
	}
}

func (e *Engine) opFailed(opType string) {
	if e.collector != nil {
		e.collector.OperationFailed(opType)
	}
}

func accountKey(userId, name string) string {
	return userId + "/" + name
}

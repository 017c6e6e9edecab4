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

package main

import (
	"context"
	"flag"
	"fmt"

	"personal-ledger-go/internal/common"
	"personal-ledger-go/internal/config"
	"personal-ledger-go/internal/database"
	"personal-ledger-go/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type balanceStats struct {
	totalUsers        int
	totalAccounts     int
	usersWithAccounts int
	reconcileFailures int
}

func printAccount(account models.Account, reconciled bool, isLast bool) {
	symbol := common.BoxPrefix(isLast)
	status := "ok"
	if !reconciled {
		status = "MISMATCH"
	}

	fmt.Printf("%s %-20s: %18s (v%d, reconcile: %s, updated: %s)\n",
		symbol,
		account.Name,
		account.Balance.String(),
		account.Version,
		status,
		account.UpdatedAt.Format("2006-01-02 15:04:05"))
}

func printUserHeader(user models.User, accountCount int, total decimal.Decimal) {
	fmt.Printf("\n┌─ User: %s (%s)\n", user.Name, user.Email)
	fmt.Printf("│  ID: %s\n", user.Id)
	fmt.Printf("│  Accounts: %d, total balance: %s\n", accountCount, total.String())
	common.PrintBoxSeparator(78)
}

func processUser(ctx context.Context, user models.User, dbService *database.Service, reconcile bool, stats *balanceStats) error {
	accounts, err := dbService.GetUserAccounts(ctx, user.Id)
	if err != nil {
		return fmt.Errorf("failed to get accounts: %w", err)
	}

	if len(accounts) == 0 {
		return nil
	}

	total := decimal.Zero
	for _, account := range accounts {
		total = total.Add(account.Balance)
	}

	printUserHeader(user, len(accounts), total)

	for i, account := range accounts {
		reconciled := true
		if reconcile {
			if err := dbService.ReconcileAccount(ctx, user.Id, account.Name); err != nil {
				reconciled = false
				stats.reconcileFailures++
				zap.L().Error("Reconciliation mismatch",
					zap.String("user_id", user.Id),
					zap.String("account", account.Name),
					zap.Error(err))
			}
		}
		printAccount(account, reconciled, i == len(accounts)-1)
	}

	stats.usersWithAccounts++
	stats.totalAccounts += len(accounts)
	return nil
}

func main() {
	reconcile := flag.Bool("reconcile", false, "verify each balance against the transaction log")
	flag.Parse()

	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	dbService, err := common.InitializeDatabaseOnly(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer dbService.Close()

	users, err := dbService.GetUsers(ctx)
	if err != nil {
		logger.Fatal("Failed to list users", zap.Error(err))
	}

	common.PrintHeader("Account Balances", common.DefaultWidth)

	stats := balanceStats{}
	for _, user := range users {
		stats.totalUsers++
		if err := processUser(ctx, user, dbService, *reconcile, &stats); err != nil {
			logger.Error("Failed to process user",
				zap.String("user_id", user.Id),
				zap.String("user_name", user.Name),
				zap.Error(err))
		}
	}

	summary := fmt.Sprintf("Report complete: %d users, %d with accounts, %d accounts",
		stats.totalUsers, stats.usersWithAccounts, stats.totalAccounts)
	if *reconcile {
		summary += fmt.Sprintf(", %d reconciliation mismatches", stats.reconcileFailures)
	}
	common.PrintFooter(summary, common.DefaultWidth)
}

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
	"errors"
	"flag"
	"fmt"

	"personal-ledger-go/internal/common"
	"personal-ledger-go/internal/config"
	"personal-ledger-go/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type seedStats struct {
	usersCreated    int
	accountsCreated int
	skipped         int
}

func seedUser(ctx context.Context, services *common.Services, seed common.SeedUser, stats *seedStats) error {
	user, err := services.DbService.GetUserByEmail(ctx, seed.Email)
	if errors.Is(err, store.ErrUserNotFound) {
		user, err = services.DbService.CreateUser(ctx, uuid.New().String(), seed.Name, seed.Email)
		if err != nil {
			return fmt.Errorf("failed to create user %s: %w", seed.Email, err)
		}
		stats.usersCreated++
		zap.L().Info("Seed user created", zap.String("id", user.Id), zap.String("email", user.Email))
	} else if err != nil {
		return err
	} else {
		zap.L().Info("Seed user already exists", zap.String("email", seed.Email))
	}

	for _, account := range seed.Accounts {
		initial := decimal.Zero
		if account.InitialBalance != "" {
			initial, err = decimal.NewFromString(account.InitialBalance)
			if err != nil {
				return fmt.Errorf("invalid initial balance %q for account %s: %w",
					account.InitialBalance, account.Name, err)
			}
		}

		_, err := services.Engine.CreateAccount(ctx, account.Name, user.Id, initial)
		if err != nil {
			if errors.Is(err, store.ErrAccountExists) {
				stats.skipped++
				zap.L().Info("Seed account already exists",
					zap.String("user_id", user.Id),
					zap.String("name", account.Name))
				continue
			}
			return fmt.Errorf("failed to create account %s for %s: %w", account.Name, seed.Email, err)
		}
		stats.accountsCreated++
	}

	return nil
}

func main() {
	seedFile := flag.String("seed", "", "path to the YAML seed file (defaults to SEED_FILE)")
	flag.Parse()

	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	if *seedFile != "" {
		cfg.Ledger.SeedFile = *seedFile
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	seed, err := common.LoadSeedConfig(cfg.Ledger.SeedFile)
	if err != nil {
		logger.Fatal("Failed to load seed file", zap.Error(err))
	}

	common.PrintHeader("Ledger Setup", common.DefaultWidth)

	stats := seedStats{}
	for _, user := range seed.Users {
		if err := seedUser(ctx, services, user, &stats); err != nil {
			logger.Fatal("Seeding failed", zap.Error(err))
		}
	}

	common.PrintFooter(fmt.Sprintf("Setup complete: %d users, %d accounts created, %d accounts skipped",
		stats.usersCreated, stats.accountsCreated, stats.skipped), common.DefaultWidth)
}

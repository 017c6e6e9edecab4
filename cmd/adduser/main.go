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
	"regexp"
	"strings"

	"personal-ledger-go/internal/common"
	"personal-ledger-go/internal/config"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format: %s", email)
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if len(name) < 2 {
		return fmt.Errorf("name must be at least 2 characters")
	}
	return nil
}

func main() {
	name := flag.String("name", "", "user's full name")
	email := flag.String("email", "", "user's email address")
	accounts := flag.String("accounts", "", "comma-separated account names to create for the user")
	initialBalance := flag.String("initial-balance", "0", "initial balance for each created account")
	flag.Parse()

	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	if err := validateName(*name); err != nil {
		logger.Fatal("Invalid name", zap.Error(err))
	}
	if err := validateEmail(*email); err != nil {
		logger.Fatal("Invalid email", zap.Error(err))
	}

	initial, err := decimal.NewFromString(*initialBalance)
	if err != nil {
		logger.Fatal("Invalid initial balance", zap.String("value", *initialBalance), zap.Error(err))
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	user, err := services.DbService.CreateUser(ctx, uuid.New().String(), *name, *email)
	if err != nil {
		logger.Fatal("Failed to create user", zap.String("email", *email), zap.Error(err))
	}

	fmt.Printf("Created user %s (%s) with id %s\n", user.Name, user.Email, user.Id)

	if *accounts == "" {
		return
	}

	for _, accountName := range strings.Split(*accounts, ",") {
		accountName = strings.TrimSpace(accountName)
		if accountName == "" {
			continue
		}

		account, err := services.Engine.CreateAccount(ctx, accountName, user.Id, initial)
		if err != nil {
			logger.Fatal("Failed to create account",
				zap.String("user_id", user.Id),
				zap.String("name", accountName),
				zap.Error(err))
		}

		fmt.Printf("Created account %s with balance %s\n", account.Name, account.Balance.String())
	}
}

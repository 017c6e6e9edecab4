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

package models

import (
	"github.com/shopspring/decimal"
)

// CreateUserRequest is the payload for creating a user
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// CreateAccountRequest is the payload for creating an account
type CreateAccountRequest struct {
	UserId         string          `json:"user_id" binding:"required"`
	Name           string          `json:"name" binding:"required"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// MutationRequest is the payload for a deposit or withdrawal
type MutationRequest struct {
	Account string          `json:"account" binding:"required"`
	UserId  string          `json:"user_id" binding:"required"`
	Amount  decimal.Decimal `json:"amount"`
}

// TransferRequest is the payload for an account-to-account transfer
type TransferRequest struct {
	SourceAccount string          `json:"source_account" binding:"required"`
	SourceUserId  string          `json:"source_user_id" binding:"required"`
	DestAccount   string          `json:"dest_account" binding:"required"`
	DestUserId    string          `json:"dest_user_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
}

// MutationResult is returned by deposit and withdrawal operations
type MutationResult struct {
	Account       string          `json:"account"`
	UserId        string          `json:"user_id"`
	NewBalance    decimal.Decimal `json:"new_balance"`
	TransactionId string          `json:"transaction_id"`
}

// TransferResult is returned by transfer operations
type TransferResult struct {
	SourceAccount string          `json:"source_account"`
	DestAccount   string          `json:"dest_account"`
	SourceBalance decimal.Decimal `json:"source_balance"`
	DestBalance   decimal.Decimal `json:"dest_balance"`
	TransactionId string          `json:"transaction_id"`
}

// AccountBalance is a single-account balance view
type AccountBalance struct {
	Account string          `json:"account"`
	UserId  string          `json:"user_id"`
	Balance decimal.Decimal `json:"balance"`
}

// TotalBalance is the sum over every account a user owns
type TotalBalance struct {
	UserId string          `json:"user_id"`
	Total  decimal.Decimal `json:"total"`
}

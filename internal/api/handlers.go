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

package api

import (
	"fmt"
	"net/http"

	"personal-ledger-go/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *LedgerService) handleCreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.users.CreateUser(c.Request.Context(), uuid.New().String(), req.Name, req.Email)
	if err != nil {
		zap.L().Error("Failed to create user", zap.String("email", req.Email), zap.Error(err))
		failFromError(c, err)
		return
	}

	successResponse(c, http.StatusCreated, "User creation was successful!", user)
}

func (s *LedgerService) handleCreateAccount(c *gin.Context) {
	var req models.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	account, err := s.engine.CreateAccount(c.Request.Context(), req.Name, req.UserId, req.InitialBalance)
	if err != nil {
		zap.L().Error("Failed to create account",
			zap.String("user_id", req.UserId),
			zap.String("name", req.Name),
			zap.Error(err))
		failFromError(c, err)
		return
	}

	successResponse(c, http.StatusCreated, "Account creation was a success!", account)
}

func (s *LedgerService) handleDeposit(c *gin.Context) {
	var req models.MutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	outcome, err := s.engine.Deposit(c.Request.Context(), req.Account, req.UserId, req.Amount)
	if err != nil {
		failFromError(c, err)
		return
	}

	message := fmt.Sprintf("%s has been deposited to %s account!", req.Amount.String(), outcome.Account.Name)
	successResponse(c, http.StatusCreated, message, models.MutationResult{
		Account:       outcome.Account.Name,
		UserId:        outcome.Account.UserId,
		NewBalance:    outcome.Account.Balance,
		TransactionId: outcome.Entry.Id,
	})
}

func (s *LedgerService) handleWithdraw(c *gin.Context) {
	var req models.MutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	outcome, err := s.engine.Withdraw(c.Request.Context(), req.Account, req.UserId, req.Amount)
	if err != nil {
		failFromError(c, err)
		return
	}

	message := fmt.Sprintf("%s has been deducted from %s account!", req.Amount.String(), outcome.Account.Name)
	successResponse(c, http.StatusCreated, message, models.MutationResult{
		Account:       outcome.Account.Name,
		UserId:        outcome.Account.UserId,
		NewBalance:    outcome.Account.Balance,
		TransactionId: outcome.Entry.Id,
	})
}

func (s *LedgerService) handleTransfer(c *gin.Context) {
	var req models.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	outcome, err := s.engine.Transfer(c.Request.Context(),
		req.SourceAccount, req.SourceUserId, req.DestAccount, req.DestUserId, req.Amount)
	if err != nil {
		failFromError(c, err)
		return
	}

	message := fmt.Sprintf("%s has been transferred from %s to %s!",
		req.Amount.String(), outcome.Source.Name, outcome.Dest.Name)
	successResponse(c, http.StatusCreated, message, models.TransferResult{
		SourceAccount: outcome.Source.Name,
		DestAccount:   outcome.Dest.Name,
		SourceBalance: outcome.Source.Balance,
		DestBalance:   outcome.Dest.Balance,
		TransactionId: outcome.Entry.Id,
	})
}

func (s *LedgerService) handleAccountBalance(c *gin.Context) {
	userId := c.Param("user")
	name := c.Param("name")

	balance, err := s.query.GetAccountBalance(c.Request.Context(), name, userId)
	if err != nil {
		failFromError(c, err)
		return
	}

	message := fmt.Sprintf("You have %s in your %s account.", balance.String(), name)
	successResponse(c, http.StatusOK, message, models.AccountBalance{
		Account: name,
		UserId:  userId,
		Balance: balance,
	})
}

func (s *LedgerService) handleUserTotalBalance(c *gin.Context) {
	userId := c.Param("user")

	total, err := s.query.GetUserTotalBalance(c.Request.Context(), userId)
	if err != nil {
		failFromError(c, err)
		return
	}

	message := fmt.Sprintf("Your total balance is %s", total.String())
	successResponse(c, http.StatusOK, message, models.TotalBalance{
		UserId: userId,
		Total:  total,
	})
}

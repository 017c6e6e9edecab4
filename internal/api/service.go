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
	"context"
	"fmt"
	"net/http"

	"personal-ledger-go/internal/ledger"
	"personal-ledger-go/internal/store"

	"github.com/gin-gonic/gin"
)

// LedgerService is the thin transport adapter over the ledger core. It
// parses requests, calls into the engine or query service, and serializes
// the result or the typed failure.
type LedgerService struct {
	users  store.UserStore
	engine *ledger.Engine
	query  *ledger.QueryService
}

func NewLedgerService(users store.UserStore, engine *ledger.Engine, query *ledger.QueryService) *LedgerService {
	return &LedgerService{
		users:  users,
		engine: engine,
		query:  query,
	}
}

// Router builds the HTTP routes. metricsHandler may be nil to disable the
// metrics endpoint.
func (s *LedgerService) Router(metricsHandler http.Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", s.handleHealth)
	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	router.POST("/users", s.handleCreateUser)
	router.POST("/accounts", s.handleCreateAccount)
	router.POST("/deposit", s.handleDeposit)
	router.POST("/withdraw", s.handleWithdraw)
	router.POST("/transfer", s.handleTransfer)
	router.GET("/balance/:user", s.handleUserTotalBalance)
	router.GET("/balance/:user/:name", s.handleAccountBalance)

	return router
}

func (s *LedgerService) HealthCheck(ctx context.Context) error {
	if _, err := s.users.GetUsers(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

func (s *LedgerService) handleHealth(c *gin.Context) {
	if err := s.HealthCheck(c.Request.Context()); err != nil {
		errorResponse(c, http.StatusServiceUnavailable, "service unhealthy")
		return
	}
	successResponse(c, http.StatusOK, "ok", nil)
}

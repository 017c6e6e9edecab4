package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"personal-ledger-go/internal/store"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

func setupTestDb(t *testing.T) (*Service, func()) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// A second connection would get its own empty in-memory database.
	db.SetMaxOpenConns(1)

	service := &Service{db: db, maxAccounts: 10}
	if err := service.initSchema(); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	for _, user := range []struct{ id, name, email string }{
		{"user1", "Alice Johnson", "alice.johnson@example.com"},
		{"user2", "Bob Smith", "bob.smith@example.com"},
	} {
		if _, err := db.Exec(queryInsertUser, user.id, user.name, user.email); err != nil {
			t.Fatalf("Failed to insert test user: %v", err)
		}
	}

	cleanup := func() {
		db.Close()
	}

	return service, cleanup
}

func TestGetAccount_NotFound(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	_, err := service.GetAccount(context.Background(), "user1", "missing")
	if !errors.Is(err, store.ErrAccountNotFound) {
		t.Fatalf("Expected ErrAccountNotFound, got: %v", err)
	}
}

func TestCreateAccount(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()

	account, err := service.CreateAccount(ctx, "user1", "savings", decimal.Zero)
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if account.Name != "savings" {
		t.Errorf("Expected name savings, got %s", account.Name)
	}
	if !account.Balance.Equal(decimal.Zero) {
		t.Errorf("Expected zero balance, got %s", account.Balance.String())
	}
	if account.Version != 1 {
		t.Errorf("Expected version 1, got %d", account.Version)
	}

	// Same name for the same user must be rejected.
	_, err = service.CreateAccount(ctx, "user1", "savings", decimal.Zero)
	if !errors.Is(err, store.ErrAccountExists) {
		t.Errorf("Expected ErrAccountExists, got: %v", err)
	}

	// Same name for a different user is fine.
	if _, err := service.CreateAccount(ctx, "user2", "savings", decimal.Zero); err != nil {
		t.Errorf("CreateAccount for second user failed: %v", err)
	}
}

func TestCreateAccount_UnknownOwner(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	_, err := service.CreateAccount(context.Background(), "nobody", "savings", decimal.Zero)
	if !errors.Is(err, store.ErrUserNotFound) {
		t.Fatalf("Expected ErrUserNotFound, got: %v", err)
	}
}

func TestCreateAccount_NegativeInitialBalance(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	_, err := service.CreateAccount(context.Background(), "user1", "savings", decimal.NewFromInt(-1))
	if !errors.Is(err, store.ErrInvalidAmount) {
		t.Fatalf("Expected ErrInvalidAmount, got: %v", err)
	}
}

func TestCreateAccount_OwnerLimit(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()

	for i := 0; i < 10; i++ {
		name := fmt.Sprintf("account-%d", i)
		if _, err := service.CreateAccount(ctx, "user1", name, decimal.Zero); err != nil {
			t.Fatalf("CreateAccount %d failed: %v", i, err)
		}
	}

	_, err := service.CreateAccount(ctx, "user1", "one-too-many", decimal.Zero)
	if !errors.Is(err, store.ErrAccountLimitExceeded) {
		t.Fatalf("Expected ErrAccountLimitExceeded, got: %v", err)
	}

	// The cap is per owner, not global.
	if _, err := service.CreateAccount(ctx, "user2", "checking", decimal.Zero); err != nil {
		t.Errorf("CreateAccount for second user failed: %v", err)
	}
}

func TestApplyDelta_Credit(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	if _, err := service.CreateAccount(ctx, "user1", "savings", decimal.Zero); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	account, err := service.ApplyDelta(ctx, "user1", "savings", decimal.RequireFromString("100.50"))
	if err != nil {
		t.Fatalf("ApplyDelta failed: %v", err)
	}
	if !account.Balance.Equal(decimal.RequireFromString("100.50")) {
		t.Errorf("Expected balance 100.50, got %s", account.Balance.String())
	}
	if account.Version != 2 {
		t.Errorf("Expected version 2 after update, got %d", account.Version)
	}
}

func TestApplyDelta_InsufficientFunds(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	if _, err := service.CreateAccount(ctx, "user1", "savings", decimal.NewFromInt(100)); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	_, err := service.ApplyDelta(ctx, "user1", "savings", decimal.NewFromInt(-150))
	if !errors.Is(err, store.ErrInsufficientFunds) {
		t.Fatalf("Expected ErrInsufficientFunds, got: %v", err)
	}

	// Nothing may have been written.
	account, err := service.GetAccount(ctx, "user1", "savings")
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}
	if !account.Balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected balance unchanged at 100, got %s", account.Balance.String())
	}
	if account.Version != 1 {
		t.Errorf("Expected version unchanged at 1, got %d", account.Version)
	}
}

func TestApplyDelta_ExactBalanceToZero(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	if _, err := service.CreateAccount(ctx, "user1", "savings", decimal.NewFromInt(100)); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	account, err := service.ApplyDelta(ctx, "user1", "savings", decimal.NewFromInt(-100))
	if err != nil {
		t.Fatalf("ApplyDelta to exactly zero failed: %v", err)
	}
	if !account.Balance.Equal(decimal.Zero) {
		t.Errorf("Expected zero balance, got %s", account.Balance.String())
	}
}

func TestApplyDelta_NotFound(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	_, err := service.ApplyDelta(context.Background(), "user1", "missing", decimal.NewFromInt(1))
	if !errors.Is(err, store.ErrAccountNotFound) {
		t.Fatalf("Expected ErrAccountNotFound, got: %v", err)
	}
}

func TestApplyDelta_NoFloatDrift(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	if _, err := service.CreateAccount(ctx, "user1", "savings", decimal.Zero); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	// 0.1 added a thousand times must be exactly 100.
	delta := decimal.RequireFromString("0.1")
	for i := 0; i < 1000; i++ {
		if _, err := service.ApplyDelta(ctx, "user1", "savings", delta); err != nil {
			t.Fatalf("ApplyDelta iteration %d failed: %v", i, err)
		}
	}

	account, err := service.GetAccount(ctx, "user1", "savings")
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}
	if !account.Balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected exactly 100, got %s", account.Balance.String())
	}
}

func TestGetUserAccounts(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	for _, name := range []string{"savings", "checking"} {
		if _, err := service.CreateAccount(ctx, "user1", name, decimal.NewFromInt(10)); err != nil {
			t.Fatalf("CreateAccount %s failed: %v", name, err)
		}
	}

	accounts, err := service.GetUserAccounts(ctx, "user1")
	if err != nil {
		t.Fatalf("GetUserAccounts failed: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("Expected 2 accounts, got %d", len(accounts))
	}
	// Ordered by name.
	if accounts[0].Name != "checking" || accounts[1].Name != "savings" {
		t.Errorf("Expected [checking savings], got [%s %s]", accounts[0].Name, accounts[1].Name)
	}

	none, err := service.GetUserAccounts(ctx, "user2")
	if err != nil {
		t.Fatalf("GetUserAccounts for empty user failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Expected no accounts for user2, got %d", len(none))
	}
}

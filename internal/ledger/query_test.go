package ledger

import (
	"context"
	"errors"
	"testing"

	"personal-ledger-go/internal/store"

	"github.com/shopspring/decimal"
)

func TestGetAccountBalance(t *testing.T) {
	engine, svc, cleanup := setupEngine(t)
	defer cleanup()

	ctx := context.Background()
	if _, err := engine.CreateAccount(ctx, "alice savings", "user1", decimal.NewFromInt(42)); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	query := NewQueryService(svc)
	balance, err := query.GetAccountBalance(ctx, "Alice Savings", "user1")
	if err != nil {
		t.Fatalf("GetAccountBalance failed: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(42)) {
		t.Errorf("Expected balance 42, got %s", balance.String())
	}
}

func TestGetAccountBalance_NotFound(t *testing.T) {
	_, svc, cleanup := setupEngine(t)
	defer cleanup()

	query := NewQueryService(svc)
	_, err := query.GetAccountBalance(context.Background(), "no-such-account", "user1")
	if !errors.Is(err, store.ErrAccountNotFound) {
		t.Fatalf("Expected ErrAccountNotFound, got: %v", err)
	}
}

func TestGetUserTotalBalance(t *testing.T) {
	engine, svc, cleanup := setupEngine(t)
	defer cleanup()

	ctx := context.Background()
	for _, account := range []struct {
		name    string
		initial int64
	}{
		{"savings", 100},
		{"checking", 25},
		{"rainy day", 0},
	} {
		if _, err := engine.CreateAccount(ctx, account.name, "user1", decimal.NewFromInt(account.initial)); err != nil {
			t.Fatalf("CreateAccount %s failed: %v", account.name, err)
		}
	}

	query := NewQueryService(svc)
	total, err := query.GetUserTotalBalance(ctx, "user1")
	if err != nil {
		t.Fatalf("GetUserTotalBalance failed: %v", err)
	}
	if !total.Equal(decimal.NewFromInt(125)) {
		t.Errorf("Expected total 125, got %s", total.String())
	}
}

func TestGetUserTotalBalance_NoAccounts(t *testing.T) {
	_, svc, cleanup := setupEngine(t)
	defer cleanup()

	query := NewQueryService(svc)
	total, err := query.GetUserTotalBalance(context.Background(), "user2")
	if err != nil {
		t.Fatalf("GetUserTotalBalance failed: %v", err)
	}
	if !total.Equal(decimal.Zero) {
		t.Errorf("Expected zero total for user with no accounts, got %s", total.String())
	}
}

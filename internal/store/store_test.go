package store

import (
	"testing"
)

// Compile-time checks that the interface is importable and usable.
func TestLedgerStoreInterfaceExists(t *testing.T) {
	// This test simply validates that the LedgerStore interface compiles
	// and the sentinel errors are accessible.
	_ = ErrInvalidAmount
	_ = ErrAccountNotFound
	_ = ErrInsufficientFunds
	_ = ErrConcurrentModification
	_ = ErrTransientStorage
	_ = AppendParams{}

	// Ensure the interface is non-nil type.
	var _ LedgerStore
}

func TestErrorKindsAreDistinct(t *testing.T) {
	kinds := []error{
		ErrInvalidAmount,
		ErrInvalidAccountName,
		ErrAccountNotFound,
		ErrAccountExists,
		ErrAccountLimitExceeded,
		ErrInsufficientFunds,
		ErrSameAccountTransfer,
		ErrConcurrentModification,
		ErrTransientStorage,
		ErrUserNotFound,
		ErrUserExists,
	}

	seen := make(map[string]bool)
	for _, kind := range kinds {
		if seen[kind.Error()] {
			t.Errorf("Duplicate error message: %s", kind.Error())
		}
		seen[kind.Error()] = true
	}
}

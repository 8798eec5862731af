// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/billed/internal/models"
)

// ErrNotFound is returned when a bill or user does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for bill and account storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
type Store interface {
	// CreateBill persists a new bill.
	// bill.ID is generated when empty; Status defaults to pending.
	CreateBill(ctx context.Context, bill *models.Bill) error

	// GetBill retrieves a bill by its ID.
	// Returns ErrNotFound if the bill does not exist.
	GetBill(ctx context.Context, billID string) (*models.Bill, error)

	// UpdateBill replaces the fields of an existing bill.
	// Returns ErrNotFound if the bill does not exist.
	UpdateBill(ctx context.Context, bill *models.Bill) error

	// ListBills returns the bills owned by email, or every bill when email
	// is empty. Order is insertion order; callers sort for display.
	ListBills(ctx context.Context, email string) ([]models.Bill, error)

	// CreateUser persists a new account. ID and timestamps are generated.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail returns ErrNotFound if no account uses email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}

// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/splitnest/splitnest/internal/models"
)

// UserShare is one share a user owes, joined with its owning expense and
// the user who paid it. It is the row shape behind per-user listings and
// balance reports.
type UserShare struct {
	Expense models.Expense
	Share   models.ExpenseShare
	PaidBy  *models.User
}

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the ledger or service layers.
type Store interface {
	// CreateUser persists a new user account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email address.
	// Returns (nil, nil) when no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns (nil, nil) when no such user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUsersByIDs retrieves multiple users keyed by ID.
	// Users that do not exist are omitted from the result.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	// CreateExpense persists an expense together with all of its shares as
	// one atomic unit: either every row is committed or none are. If the
	// context is canceled mid-write the transaction rolls back.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by ID with its shares in insertion
	// order. Returns an error if the expense is not found.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpenses returns every expense with nested shares, oldest first.
	ListExpenses(ctx context.Context) ([]models.Expense, error)

	// ListSharesForUser returns every share owed by the given user, joined
	// with the owning expense and its payer, ordered by expense creation
	// time then share position.
	ListSharesForUser(ctx context.Context, userID string) ([]UserShare, error)

	// Close releases any resources held by the store.
	Close() error
}

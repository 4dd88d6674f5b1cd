// Package ledger orchestrates expense creation and aggregation.
//
// The ledger is stateless between calls: it validates a split request,
// computes the per-participant shares, and hands the assembled expense to
// the storage collaborator for an all-or-nothing commit. Read paths pull
// persisted shares back out for per-user and global views.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/splitnest/splitnest/internal/models"
	"github.com/splitnest/splitnest/internal/split"
	"github.com/splitnest/splitnest/internal/storage"
)

var (
	// ErrValidation wraps any pre-persistence failure: malformed input,
	// split sums that do not reconcile, or references to unknown users.
	// No transaction is opened once this is returned.
	ErrValidation = errors.New("expense validation failed")

	// ErrPersistence wraps storage failures. The storage layer has already
	// rolled back; no partial expense is ever visible.
	ErrPersistence = errors.New("expense persistence failed")
)

// Ledger coordinates split validation, share computation, and storage.
type Ledger struct {
	store storage.Store
}

// New creates a Ledger backed by the given store.
func New(store storage.Store) *Ledger {
	return &Ledger{store: store}
}

// CreateExpenseInput is the transport-independent request for a new expense.
type CreateExpenseInput struct {
	Description string
	Amount      decimal.Decimal
	PaidByID    string
	Split       split.Input
}

// CreateExpense validates the request, computes shares, and persists the
// expense with all of its shares atomically. The returned expense carries
// the computed shares in participant input order.
func (l *Ledger) CreateExpense(ctx context.Context, in CreateExpenseInput) (*models.Expense, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}
	if in.PaidByID == "" {
		return nil, fmt.Errorf("%w: payer is required", ErrValidation)
	}

	if err := split.ValidateInput(in.Amount, in.Split); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	shares, err := split.ComputeShares(in.Amount, in.Split)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if err := l.resolveUsers(ctx, in); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		Description: in.Description,
		Amount:      in.Amount,
		PaidByID:    in.PaidByID,
		SplitType:   in.Split.Type,
		Shares:      make([]models.ExpenseShare, len(shares)),
	}
	for i, entry := range in.Split.Entries {
		expense.Shares[i] = models.ExpenseShare{
			UserID: entry.UserID,
			Share:  shares[i],
		}
		if in.Split.Type == models.SplitPercentage {
			expense.Shares[i].Percentage = decimal.NullDecimal{Decimal: *entry.Percentage, Valid: true}
		}
	}

	if err := l.store.CreateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return expense, nil
}

// SharesForUser returns every share owed by userID, each joined with its
// owning expense and the expense's payer, in storage order.
func (l *Ledger) SharesForUser(ctx context.Context, userID string) ([]storage.UserShare, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	shares, err := l.store.ListSharesForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return shares, nil
}

// AllExpenses returns every expense with nested shares and resolved payers,
// oldest first.
func (l *Ledger) AllExpenses(ctx context.Context) ([]models.Expense, map[string]*models.User, error) {
	expenses, err := l.store.ListExpenses(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	payerIDs := make([]string, 0, len(expenses))
	seen := make(map[string]bool, len(expenses))
	for _, e := range expenses {
		if !seen[e.PaidByID] {
			seen[e.PaidByID] = true
			payerIDs = append(payerIDs, e.PaidByID)
		}
	}

	payers, err := l.store.GetUsersByIDs(ctx, payerIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return expenses, payers, nil
}

// resolveUsers checks that the payer and every participant are known users.
func (l *Ledger) resolveUsers(ctx context.Context, in CreateExpenseInput) error {
	ids := make([]string, 0, len(in.Split.Entries)+1)
	ids = append(ids, in.PaidByID)
	for _, entry := range in.Split.Entries {
		if entry.UserID != in.PaidByID {
			ids = append(ids, entry.UserID)
		}
	}

	users, err := l.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	for _, id := range ids {
		if users[id] == nil {
			return fmt.Errorf("%w: unknown user %s", ErrValidation, id)
		}
	}
	return nil
}

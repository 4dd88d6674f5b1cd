package models

import "github.com/shopspring/decimal"

// SplitType is the strategy used to divide an expense among participants.
type SplitType string

const (
	// SplitEqual divides the amount evenly across all participants.
	SplitEqual SplitType = "EQUAL"
	// SplitExact uses the share amounts declared by each participant.
	SplitExact SplitType = "EXACT"
	// SplitPercentage derives each share from a declared percentage of the amount.
	SplitPercentage SplitType = "PERCENTAGE"
)

// Valid reports whether t is one of the supported split types.
func (t SplitType) Valid() bool {
	switch t {
	case SplitEqual, SplitExact, SplitPercentage:
		return true
	}
	return false
}

// Expense represents a shared expense paid by one user and split among
// participants. Expenses are immutable once created: there are no update
// or delete operations, and an expense is never persisted without its
// full set of shares.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Description is the human-readable reason for the expense.
	Description string

	// Amount is the total expense amount in the ledger currency,
	// fixed to 2 decimal places.
	Amount decimal.Decimal

	// PaidByID is the ID of the user who paid the expense.
	PaidByID string

	// SplitType records how the amount was divided among participants.
	SplitType SplitType

	// Shares is the ordered, non-empty set of per-participant shares.
	// The sum of share amounts always equals Amount.
	Shares []ExpenseShare

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// ExpenseShare is one participant's portion of an expense.
// A user appears at most once per expense.
type ExpenseShare struct {
	// ID is the unique identifier for the share (UUID format).
	ID string

	// ExpenseID is the owning expense.
	ExpenseID string

	// UserID is the participant who owes this share.
	UserID string

	// Share is the amount this participant owes, fixed to 2 decimal places.
	Share decimal.Decimal

	// Percentage is the declared percentage for PERCENTAGE splits.
	// Absent (invalid) for EQUAL and EXACT splits.
	Percentage decimal.NullDecimal
}

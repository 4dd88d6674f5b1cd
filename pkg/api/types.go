// Package api defines the wire types and Connect handler plumbing for the
// Splitnest RPC surface.
//
// Messages are plain structs serialized with a JSON Connect codec; decimal
// fields travel as quoted strings so no monetary value ever passes through
// a float.
package api

import "github.com/shopspring/decimal"

// User is the public view of a user account.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobile_number"`
	CreatedAt    int64  `json:"created_at"`
}

// RegisterRequest creates a new user account.
type RegisterRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobile_number"`
	Password     string `json:"password"`
}

// RegisterResponse returns the created user and a session token.
type RegisterResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// LoginRequest authenticates an existing user.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse returns the authenticated user and a session token.
type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// GetUserRequest looks up a user's public profile. An empty user_id means
// the authenticated user.
type GetUserRequest struct {
	UserID string `json:"user_id"`
}

// GetUserResponse returns the requested user's public profile.
type GetUserResponse struct {
	User User `json:"user"`
}

// ShareEntry is one participant's declaration in a split request.
// Share is set for EXACT splits, Percentage for PERCENTAGE splits, and
// neither for EQUAL splits.
type ShareEntry struct {
	UserID     string           `json:"user_id"`
	Share      *decimal.Decimal `json:"share,omitempty"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
}

// CreateExpenseRequest records a new expense paid by the authenticated user.
type CreateExpenseRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	SplitType   string          `json:"split_type"`
	Shares      []ShareEntry    `json:"shares"`
}

// ExpenseShare is one participant's computed portion of an expense.
type ExpenseShare struct {
	ID         string           `json:"id"`
	UserID     string           `json:"user_id"`
	Share      decimal.Decimal  `json:"share"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
}

// Expense is an expense with its computed shares.
type Expense struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	PaidByID    string          `json:"paid_by_id"`
	PaidByName  string          `json:"paid_by_name,omitempty"`
	SplitType   string          `json:"split_type"`
	Shares      []ExpenseShare  `json:"shares"`
	CreatedAt   int64           `json:"created_at"`
}

// CreateExpenseResponse returns the persisted expense.
type CreateExpenseResponse struct {
	Expense Expense `json:"expense"`
}

// ListExpensesForUserRequest lists the shares owed by one user.
type ListExpensesForUserRequest struct {
	UserID string `json:"user_id"`
}

// UserExpense is one share a user owes, joined with its owning expense.
type UserExpense struct {
	Share   ExpenseShare `json:"share"`
	Expense Expense      `json:"expense"`
}

// ListExpensesForUserResponse returns the user's shares in ledger order.
type ListExpensesForUserResponse struct {
	Expenses []UserExpense `json:"expenses"`
}

// ListAllExpensesRequest lists every expense in the ledger.
type ListAllExpensesRequest struct{}

// ListAllExpensesResponse returns all expenses with nested shares.
type ListAllExpensesResponse struct {
	Expenses []Expense `json:"expenses"`
}

// DownloadBalanceReportRequest renders the authenticated user's balance
// statement.
type DownloadBalanceReportRequest struct{}

// DownloadBalanceReportResponse carries the rendered artifact.
type DownloadBalanceReportResponse struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Content     string `json:"content"`
}

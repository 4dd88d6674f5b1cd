package events

import (
	"encoding/json"
	"time"

	"github.com/splitnest/splitnest/internal/models"
)

// ExpenseCreatedEvent is the message published after an expense commits.
// Amounts travel as fixed-point strings.
type ExpenseCreatedEvent struct {
	ExpenseID    string   `json:"expense_id"`
	Description  string   `json:"description"`
	Amount       string   `json:"amount"`
	PaidByID     string   `json:"paid_by_id"`
	SplitType    string   `json:"split_type"`
	Participants []string `json:"participants"`
	CreatedAt    int64    `json:"created_at"`
	EmittedAt    int64    `json:"emitted_at"`
}

// NewExpenseCreatedEvent builds the event payload for a persisted expense.
func NewExpenseCreatedEvent(expense *models.Expense) *ExpenseCreatedEvent {
	participants := make([]string, len(expense.Shares))
	for i, share := range expense.Shares {
		participants[i] = share.UserID
	}
	return &ExpenseCreatedEvent{
		ExpenseID:    expense.ID,
		Description:  expense.Description,
		Amount:       expense.Amount.StringFixed(2),
		PaidByID:     expense.PaidByID,
		SplitType:    string(expense.SplitType),
		Participants: participants,
		CreatedAt:    expense.CreatedAt,
		EmittedAt:    time.Now().Unix(),
	}
}

// ToJSON serializes the event for publishing.
func (e *ExpenseCreatedEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

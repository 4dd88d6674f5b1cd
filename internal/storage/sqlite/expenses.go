package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/splitnest/splitnest/internal/models"
	"github.com/splitnest/splitnest/internal/storage"
)

// Monetary values are stored as fixed-point TEXT and re-parsed on read;
// REAL columns would reintroduce the float rounding the engine exists to avoid.

// CreateExpense persists an expense and all of its shares in one transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO expenses (id, description, amount, paid_by_id, split_type, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		expense.ID, expense.Description, expense.Amount.StringFixed(2),
		expense.PaidByID, string(expense.SplitType), expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i := range expense.Shares {
		share := &expense.Shares[i]
		if share.ID == "" {
			share.ID = uuid.New().String()
		}
		share.ExpenseID = expense.ID

		var percentage interface{}
		if share.Percentage.Valid {
			percentage = share.Percentage.Decimal.StringFixed(2)
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_shares (id, expense_id, user_id, share, percentage, position) VALUES (?, ?, ?, ?, ?, ?)",
			share.ID, share.ExpenseID, share.UserID, share.Share.StringFixed(2), percentage, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetExpense retrieves an expense by ID, including all shares in insertion order.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	var amount string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, description, amount, paid_by_id, split_type, created_at FROM expenses WHERE id = ?",
		expenseID,
	).Scan(&expense.ID, &expense.Description, &amount, &expense.PaidByID, &expense.SplitType, &expense.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense not found: %s", expenseID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if expense.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("failed to parse expense amount %q: %w", amount, err)
	}

	if expense.Shares, err = s.sharesForExpense(ctx, expense.ID); err != nil {
		return nil, err
	}

	return expense, nil
}

// ListExpenses returns every expense with nested shares, oldest first.
func (s *SQLiteStore) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, description, amount, paid_by_id, split_type, created_at FROM expenses ORDER BY created_at, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var expense models.Expense
		var amount string
		if err := rows.Scan(&expense.ID, &expense.Description, &amount,
			&expense.PaidByID, &expense.SplitType, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		if expense.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("failed to parse expense amount %q: %w", amount, err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for i := range expenses {
		if expenses[i].Shares, err = s.sharesForExpense(ctx, expenses[i].ID); err != nil {
			return nil, err
		}
	}

	return expenses, nil
}

// ListSharesForUser returns every share owed by userID joined with its
// owning expense and payer, ordered by expense creation time then share
// position.
func (s *SQLiteStore) ListSharesForUser(ctx context.Context, userID string) ([]storage.UserShare, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.expense_id, s.user_id, s.share, s.percentage,
		       e.id, e.description, e.amount, e.paid_by_id, e.split_type, e.created_at,
		       u.id, u.name, u.email, u.mobile_number, u.created_at
		FROM expense_shares s
		JOIN expenses e ON e.id = s.expense_id
		JOIN users u ON u.id = e.paid_by_id
		WHERE s.user_id = ?
		ORDER BY e.created_at, e.id, s.position`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list shares for user: %w", err)
	}
	defer rows.Close()

	var results []storage.UserShare
	for rows.Next() {
		var (
			entry      storage.UserShare
			payer      models.User
			share      string
			percentage sql.NullString
			amount     string
		)
		if err := rows.Scan(
			&entry.Share.ID, &entry.Share.ExpenseID, &entry.Share.UserID, &share, &percentage,
			&entry.Expense.ID, &entry.Expense.Description, &amount,
			&entry.Expense.PaidByID, &entry.Expense.SplitType, &entry.Expense.CreatedAt,
			&payer.ID, &payer.Name, &payer.Email, &payer.MobileNumber, &payer.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user share: %w", err)
		}
		if entry.Share.Share, err = decimal.NewFromString(share); err != nil {
			return nil, fmt.Errorf("failed to parse share amount %q: %w", share, err)
		}
		if entry.Expense.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("failed to parse expense amount %q: %w", amount, err)
		}
		if percentage.Valid {
			pct, err := decimal.NewFromString(percentage.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse percentage %q: %w", percentage.String, err)
			}
			entry.Share.Percentage = decimal.NullDecimal{Decimal: pct, Valid: true}
		}
		entry.PaidBy = &payer
		results = append(results, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user shares: %w", err)
	}

	return results, nil
}

// sharesForExpense loads the ordered share rows for one expense.
func (s *SQLiteStore) sharesForExpense(ctx context.Context, expenseID string) ([]models.ExpenseShare, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, expense_id, user_id, share, percentage FROM expense_shares WHERE expense_id = ? ORDER BY position",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense shares: %w", err)
	}
	defer rows.Close()

	var shares []models.ExpenseShare
	for rows.Next() {
		var (
			share      models.ExpenseShare
			amount     string
			percentage sql.NullString
		)
		if err := rows.Scan(&share.ID, &share.ExpenseID, &share.UserID, &amount, &percentage); err != nil {
			return nil, fmt.Errorf("failed to scan expense share: %w", err)
		}
		if share.Share, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("failed to parse share amount %q: %w", amount, err)
		}
		if percentage.Valid {
			pct, err := decimal.NewFromString(percentage.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse percentage %q: %w", percentage.String, err)
			}
			share.Percentage = decimal.NullDecimal{Decimal: pct, Valid: true}
		}
		shares = append(shares, share)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense shares: %w", err)
	}

	return shares, nil
}

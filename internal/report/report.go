// Package report turns a user's share records into a balance statement.
//
// Building the statement is a pure transformation; actually rendering it to
// a document is delegated to a DocumentSink collaborator so the engine never
// learns the output format.
package report

import "github.com/splitnest/splitnest/internal/storage"

// Line is one statement entry: what the expense was, what the user owes
// for it, and who paid.
type Line struct {
	Description string
	Owed        string // share amount, 2-decimal formatted
	PayerName   string
}

// Build produces one statement line per share record, preserving input
// order. It performs no I/O.
func Build(entries []storage.UserShare) []Line {
	lines := make([]Line, len(entries))
	for i, entry := range entries {
		payer := entry.Expense.PaidByID
		if entry.PaidBy != nil {
			payer = entry.PaidBy.Name
		}
		lines[i] = Line{
			Description: entry.Expense.Description,
			Owed:        entry.Share.Share.StringFixed(2),
			PayerName:   payer,
		}
	}
	return lines
}

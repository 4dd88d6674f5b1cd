package split

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/splitnest/splitnest/internal/models"
)

// tolerance is the maximum deviation accepted when reconciling declared
// sums: exact shares against the amount and percentages against 100.
var tolerance = decimal.New(1, -2) // 0.01

// ValidateInput checks that a split request is internally consistent before
// any shares are computed or persisted.
//
// It rejects empty participant lists, non-positive or sub-cent amounts, and
// entries whose declared fields do not match the split type. Declared shares
// and percentages must carry at most 2 decimal places, since that is the
// precision shares are persisted and returned with. For EXACT
// splits the declared shares must sum to amount +-0.01; for PERCENTAGE
// splits the declared percentages must sum to 100 +-0.01. A participant
// listed more than once is always rejected.
func ValidateInput(amount decimal.Decimal, in Input) error {
	if !in.Type.Valid() {
		return fmt.Errorf("%w: unknown split type %q", ErrInvalidInput, in.Type)
	}
	if len(in.Entries) == 0 {
		return fmt.Errorf("%w: at least one participant is required", ErrInvalidInput)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", ErrInvalidInput)
	}
	if !amount.Equal(amount.Round(2)) {
		return fmt.Errorf("%w: amount must have at most 2 decimal places", ErrInvalidInput)
	}

	seen := make(map[string]bool, len(in.Entries))
	for i, e := range in.Entries {
		if e.UserID == "" {
			return fmt.Errorf("%w: entry %d is missing a user id", ErrInvalidInput, i)
		}
		if seen[e.UserID] {
			return fmt.Errorf("%w: user %s appears more than once", ErrMismatch, e.UserID)
		}
		seen[e.UserID] = true
	}

	switch in.Type {
	case models.SplitEqual:
		for i, e := range in.Entries {
			if e.Share != nil || e.Percentage != nil {
				return fmt.Errorf("%w: entry %d declares a value but split type is EQUAL", ErrInvalidInput, i)
			}
		}

	case models.SplitExact:
		declared := decimal.Zero
		for i, e := range in.Entries {
			if e.Share == nil {
				return fmt.Errorf("%w: entry %d is missing a share amount", ErrInvalidInput, i)
			}
			if e.Percentage != nil {
				return fmt.Errorf("%w: entry %d declares a percentage but split type is EXACT", ErrInvalidInput, i)
			}
			if e.Share.IsNegative() {
				return fmt.Errorf("%w: entry %d has a negative share", ErrInvalidInput, i)
			}
			if !e.Share.Equal(e.Share.Round(2)) {
				return fmt.Errorf("%w: entry %d share must have at most 2 decimal places", ErrInvalidInput, i)
			}
			declared = declared.Add(*e.Share)
		}
		if declared.Sub(amount).Abs().GreaterThan(tolerance) {
			return fmt.Errorf("%w: shares sum to %s, expected %s", ErrMismatch, declared.StringFixed(2), amount.StringFixed(2))
		}

	case models.SplitPercentage:
		declared := decimal.Zero
		for i, e := range in.Entries {
			if e.Percentage == nil {
				return fmt.Errorf("%w: entry %d is missing a percentage", ErrInvalidInput, i)
			}
			if e.Share != nil {
				return fmt.Errorf("%w: entry %d declares a share but split type is PERCENTAGE", ErrInvalidInput, i)
			}
			if e.Percentage.IsNegative() {
				return fmt.Errorf("%w: entry %d has a negative percentage", ErrInvalidInput, i)
			}
			if !e.Percentage.Equal(e.Percentage.Round(2)) {
				return fmt.Errorf("%w: entry %d percentage must have at most 2 decimal places", ErrInvalidInput, i)
			}
			declared = declared.Add(*e.Percentage)
		}
		if declared.Sub(oneHundred).Abs().GreaterThan(tolerance) {
			return fmt.Errorf("%w: percentages sum to %s, expected 100", ErrMismatch, declared.StringFixed(2))
		}
	}

	return nil
}

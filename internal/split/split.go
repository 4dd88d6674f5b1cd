// Package split computes per-participant shares for a shared expense.
//
// All arithmetic is fixed-point via shopspring/decimal. Derived shares are
// rounded half away from zero to 2 decimal places; the cents lost or gained
// by rounding are redistributed one cent at a time to participants in input
// order, so the share amounts always sum to the expense amount exactly.
package split

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/splitnest/splitnest/internal/models"
)

var (
	// ErrInvalidInput indicates malformed participant data: no participants,
	// a non-positive amount, or a missing/negative declared value.
	ErrInvalidInput = errors.New("invalid split input")

	// ErrMismatch indicates declared values that do not reconcile: exact
	// shares that do not sum to the amount, percentages that do not sum
	// to 100, or a participant listed twice.
	ErrMismatch = errors.New("split mismatch")
)

var (
	oneHundred = decimal.NewFromInt(100)
	cent       = decimal.New(1, -2) // 0.01
)

// Entry is one participant's declaration within a split request.
// Exactly one of Share and Percentage is set, depending on the split type;
// EQUAL entries carry only the user ID.
type Entry struct {
	UserID     string
	Share      *decimal.Decimal // EXACT splits only
	Percentage *decimal.Decimal // PERCENTAGE splits only
}

// Input is a split request: the split type plus one ordered entry per
// participant. Entry order is preserved through share computation and
// persistence.
type Input struct {
	Type    models.SplitType
	Entries []Entry
}

// ComputeShares returns one share amount per entry, in entry order.
// The returned amounts carry 2 decimal places and sum to amount exactly.
func ComputeShares(amount decimal.Decimal, in Input) ([]decimal.Decimal, error) {
	n := len(in.Entries)
	if n == 0 {
		return nil, fmt.Errorf("%w: at least one participant is required", ErrInvalidInput)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than zero", ErrInvalidInput)
	}
	// A sub-cent amount would leave a residue the cent-by-cent
	// redistribution can never clear.
	if !amount.Equal(amount.Round(2)) {
		return nil, fmt.Errorf("%w: amount must have at most 2 decimal places", ErrInvalidInput)
	}

	switch in.Type {
	case models.SplitEqual:
		per := amount.Div(decimal.NewFromInt(int64(n))).Round(2)
		shares := make([]decimal.Decimal, n)
		for i := range shares {
			shares[i] = per
		}
		distributeRemainder(amount, shares)
		return shares, nil

	case models.SplitExact:
		shares := make([]decimal.Decimal, n)
		for i, e := range in.Entries {
			if e.Share == nil {
				return nil, fmt.Errorf("%w: entry %d is missing a share amount", ErrInvalidInput, i)
			}
			if e.Share.IsNegative() {
				return nil, fmt.Errorf("%w: entry %d has a negative share", ErrInvalidInput, i)
			}
			shares[i] = *e.Share
		}
		return shares, nil

	case models.SplitPercentage:
		shares := make([]decimal.Decimal, n)
		for i, e := range in.Entries {
			if e.Percentage == nil {
				return nil, fmt.Errorf("%w: entry %d is missing a percentage", ErrInvalidInput, i)
			}
			if e.Percentage.IsNegative() {
				return nil, fmt.Errorf("%w: entry %d has a negative percentage", ErrInvalidInput, i)
			}
			shares[i] = amount.Mul(*e.Percentage).Div(oneHundred).Round(2)
		}
		distributeRemainder(amount, shares)
		return shares, nil

	default:
		return nil, fmt.Errorf("%w: unknown split type %q", ErrInvalidInput, in.Type)
	}
}

// distributeRemainder adjusts rounded shares in place until they sum to
// amount. The difference is applied one cent at a time starting from the
// first participant, skipping any share a subtraction would drive negative.
func distributeRemainder(amount decimal.Decimal, shares []decimal.Decimal) {
	remainder := amount.Sub(sum(shares))
	step := cent
	if remainder.IsNegative() {
		step = cent.Neg()
	}
	for i := 0; !remainder.IsZero(); i = (i + 1) % len(shares) {
		next := shares[i].Add(step)
		if next.IsNegative() {
			continue
		}
		shares[i] = next
		remainder = remainder.Sub(step)
	}
}

func sum(amounts []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

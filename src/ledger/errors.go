package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidInput covers malformed, missing, or non-positive fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound covers both absent resources and resources owned by
	// another user. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")
)

// BudgetExceededError reports the shortfall when a transaction would push a
// budget past its allocation, so callers can show it without a second query.
type BudgetExceededError struct {
	Remaining decimal.Decimal
	Attempted decimal.Decimal
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("transaction amount exceeds remaining budget: %s remaining, %s attempted",
		e.Remaining.StringFixed(2), e.Attempted.StringFixed(2))
}

// CheckOverspend enforces the overspend invariant: current + amount may reach
// the allocation exactly but never exceed it. Store implementations call this
// inside their atomic insert path.
func CheckOverspend(allocation, current, amount decimal.Decimal) error {
	if current.Add(amount).GreaterThan(allocation) {
		return &BudgetExceededError{
			Remaining: allocation.Sub(current),
			Attempted: amount,
		}
	}
	return nil
}

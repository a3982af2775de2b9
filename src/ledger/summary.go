package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"spendwise-server/src/models"
)

var hundred = decimal.NewFromInt(100)

// BudgetsSummary returns the derived view of every budget owned by the user,
// most recently created first.
func (l *Ledger) BudgetsSummary(ctx context.Context, userID int64) ([]models.BudgetSummary, error) {
	aggregates, err := l.store.BudgetAggregates(ctx, userID)
	if err != nil {
		return nil, err
	}
	summaries := make([]models.BudgetSummary, 0, len(aggregates))
	for _, a := range aggregates {
		summaries = append(summaries, models.BudgetSummary{
			BudgetID:         a.ID,
			BudgetName:       a.Name,
			Category:         a.Category,
			TransactionCount: a.TransactionCount,
			TotalSpent:       a.TotalSpent,
			BudgetTotal:      a.Amount,
			RemainingAmount:  a.Amount.Sub(a.TotalSpent),
			PercentageUsed:   percentageUsed(a.TotalSpent, a.Amount),
		})
	}
	return summaries, nil
}

// ReachedCount reports how many of the user's budgets have met or exceeded
// their allocation, alongside the total budget count.
func (l *Ledger) ReachedCount(ctx context.Context, userID int64) (reached, total int64, err error) {
	aggregates, err := l.store.BudgetAggregates(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	for _, a := range aggregates {
		if a.TotalSpent.GreaterThanOrEqual(a.Amount) {
			reached++
		}
	}
	return reached, int64(len(aggregates)), nil
}

// TransactionsSummary computes the user's overall balance. Budget-linked
// amounts are expense magnitudes; standalone amounts are signed, positive
// for income and negative for expense.
func (l *Ledger) TransactionsSummary(ctx context.Context, userID int64) (*models.TransactionsSummary, error) {
	transactions, err := l.store.ListTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}
	income := decimal.Zero
	expenses := decimal.Zero
	for _, t := range transactions {
		switch {
		case t.BudgetID != nil:
			expenses = expenses.Add(t.Amount)
		case t.Amount.IsNegative():
			expenses = expenses.Add(t.Amount.Neg())
		default:
			income = income.Add(t.Amount)
		}
	}
	return &models.TransactionsSummary{
		Balance:  income.Sub(expenses),
		Income:   income,
		Expenses: expenses,
	}, nil
}

// percentageUsed guards the zero-allocation case: a zero-amount budget
// reports 0% rather than dividing.
func percentageUsed(spent, allocation decimal.Decimal) decimal.Decimal {
	if !allocation.IsPositive() {
		return decimal.Zero
	}
	return spent.Div(allocation).Mul(hundred).Round(2)
}

package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"spendwise-server/src/ledger"
	"spendwise-server/src/ledger/memory"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestLedger() (*ledger.Ledger, *memory.Store) {
	store := memory.New()
	return ledger.New(store), store
}

func TestCreateBudgetValidation(t *testing.T) {
	l, _ := newTestLedger()
	ctx := context.Background()

	cases := []struct {
		name     string
		budget   string
		amount   decimal.Decimal
		category string
	}{
		{"empty name", "", dec("100"), "food"},
		{"blank name", "   ", dec("100"), "food"},
		{"empty category", "Groceries", dec("100"), ""},
		{"zero amount", "Groceries", decimal.Zero, "food"},
		{"negative amount", "Groceries", dec("-5"), "food"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := l.CreateBudget(ctx, 1, tc.budget, tc.amount, tc.category); !errors.Is(err, ledger.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}

	b, err := l.CreateBudget(ctx, 1, "  Groceries  ", dec("100.005"), "food")
	if err != nil {
		t.Fatalf("CreateBudget: %v", err)
	}
	if b.Name != "Groceries" {
		t.Errorf("name not trimmed: %q", b.Name)
	}
	// Round(2) rounds half away from zero.
	if !b.Amount.Equal(dec("100.01")) {
		t.Errorf("amount = %s, want 100.01", b.Amount)
	}
}

func TestLinkedTransactionOverspendRejected(t *testing.T) {
	l, _ := newTestLedger()
	ctx := context.Background()

	b, err := l.CreateBudget(ctx, 1, "Groceries", dec("100"), "food")
	if err != nil {
		t.Fatalf("CreateBudget: %v", err)
	}
	if _, err := l.CreateTransaction(ctx, 1, ledger.TransactionInput{
		BudgetID: &b.ID, Amount: dec("60"), Description: "weekly shop",
	}); err != nil {
		t.Fatalf("first transaction: %v", err)
	}

	_, err = l.CreateTransaction(ctx, 1, ledger.TransactionInput{
		BudgetID: &b.ID, Amount: dec("50"), Description: "second shop",
	})
	var exceeded *ledger.BudgetExceededError
	if !errors.As(err, &exceeded) {
		t.Fatalf("expected BudgetExceededError, got %v", err)
	}
	if !exceeded.Remaining.Equal(dec("40")) {
		t.Errorf("remaining = %s, want 40", exceeded.Remaining)
	}
	if !exceeded.Attempted.Equal(dec("50")) {
		t.Errorf("attempted = %s, want 50", exceeded.Attempted)
	}

	// The budget must be left untouched by the rejected write.
	summaries, err := l.BudgetsSummary(ctx, 1)
	if err != nil {
		t.Fatalf("BudgetsSummary: %v", err)
	}
	if !summaries[0].TotalSpent.Equal(dec("60")) {
		t.Errorf("total spent after rejection = %s, want 60", summaries[0].TotalSpent)
	}
}

func TestLinkedTransactionExactBoundaryAccepted(t *testing.T) {
	l, _ := newTestLedger()
	ctx := context.Background()

	b, _ := l.CreateBudget(ctx, 1, "Groceries", dec("100"), "food")
	if _, err := l.CreateTransaction(ctx, 1, ledger.TransactionInput{
		BudgetID: &b.ID, Amount: dec("60"), Description: "weekly shop",
	}); err != nil {
		t.Fatalf("first transaction: %v", err)
	}
	tx, err := l.CreateTransaction(ctx, 1, ledger.TransactionInput{
		BudgetID: &b.ID, Amount: dec("40"), Description: "topping up",
	})
	if err != nil {
		t.Fatalf("spending exactly to the limit should be allowed: %v", err)
	}
	if tx.Category != "food" {
		t.Errorf("linked transaction category = %q, want budget's %q", tx.Category, "food")
	}

	reached, total, err := l.ReachedCount(ctx, 1)
	if err != nil {
		t.Fatalf("ReachedCount: %v", err)
	}
	if reached != 1 || total != 1 {
		t.Errorf("reached/total = %d/%d, want 1/1", reached, total)
	}
}

func TestTransactionValidation(t *testing.T) {
	l, _ := newTestLedger()
	ctx := context.Background()
	b, _ := l.CreateBudget(ctx, 1, "Groceries", dec("100"), "food")

	cases := []struct {
		name string
		in   ledger.TransactionInput
	}{
		{"missing description", ledger.TransactionInput{BudgetID: &b.ID, Amount: dec("10")}},
		{"zero linked amount", ledger.TransactionInput{BudgetID: &b.ID, Amount: decimal.Zero, Description: "x"}},
		{"negative linked amount", ledger.TransactionInput{BudgetID: &b.ID, Amount: dec("-10"), Description: "x"}},
		{"zero standalone amount", ledger.TransactionInput{Amount: decimal.Zero, Description: "x", Category: "misc"}},
		{"missing standalone category", ledger.TransactionInput{Amount: dec("10"), Description: "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := l.CreateTransaction(ctx, 1, tc.in); !errors.Is(err, ledger.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestCrossUserOwnership(t *testing.T) {
	l, _ := newTestLedger()
	ctx := context.Background()

	b, _ := l.CreateBudget(ctx, 1, "Groceries", dec("100"), "food")
	tx, err := l.CreateTransaction(ctx, 1, ledger.TransactionInput{
		BudgetID: &b.ID, Amount: dec("10"), Description: "shop",
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	// Another user must see the resources as if they do not exist.
	if _, err := l.CreateTransaction(ctx, 2, ledger.TransactionInput{
		BudgetID: &b.ID, Amount: dec("10"), Description: "shop",
	}); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("linked create for foreign budget: got %v, want ErrNotFound", err)
	}
	if _, err := l.BudgetTransactions(ctx, 2, b.ID); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("listing foreign budget transactions: got %v, want ErrNotFound", err)
	}
	if err := l.DeleteTransaction(ctx, 2, tx.ID); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("deleting foreign transaction: got %v, want ErrNotFound", err)
	}
	if err := l.DeleteBudget(ctx, 2, b.ID); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("deleting foreign budget: got %v, want ErrNotFound", err)
	}

	// Still intact for the owner.
	if _, _, err := l.ReachedCount(ctx, 1); err != nil {
		t.Fatalf("ReachedCount: %v", err)
	}
}

func TestDeleteBudgetCascades(t *testing.T) {
	l, _ := newTestLedger()
	ctx := context.Background()

	b, _ := l.CreateBudget(ctx, 1, "Groceries", dec("100"), "food")
	if _, err := l.CreateTransaction(ctx, 1, ledger.TransactionInput{
		BudgetID: &b.ID, Amount: dec("25"), Description: "shop",
	}); err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	standalone, err := l.CreateTransaction(ctx, 1, ledger.TransactionInput{
		Amount: dec("500"), Description: "salary", Category: "income",
	})
	if err != nil {
		t.Fatalf("standalone transaction: %v", err)
	}

	if err := l.DeleteBudget(ctx, 1, b.ID); err != nil {
		t.Fatalf("DeleteBudget: %v", err)
	}
	transactions, err := l.Transactions(ctx, 1)
	if err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	if len(transactions) != 1 || transactions[0].ID != standalone.ID {
		t.Errorf("expected only the standalone transaction to survive, got %d", len(transactions))
	}
}

func TestDeleteTransactionFreesAllocation(t *testing.T) {
	l, _ := newTestLedger()
	ctx := context.Background()

	b, _ := l.CreateBudget(ctx, 1, "Groceries", dec("100"), "food")
	tx, _ := l.CreateTransaction(ctx, 1, ledger.TransactionInput{
		BudgetID: &b.ID, Amount: dec("100"), Description: "all of it",
	})
	if _, err := l.CreateTransaction(ctx, 1, ledger.TransactionInput{
		BudgetID: &b.ID, Amount: dec("1"), Description: "one more",
	}); err == nil {
		t.Fatal("expected overspend rejection before delete")
	}
	if err := l.DeleteTransaction(ctx, 1, tx.ID); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}
	if _, err := l.CreateTransaction(ctx, 1, ledger.TransactionInput{
		BudgetID: &b.ID, Amount: dec("1"), Description: "one more",
	}); err != nil {
		t.Fatalf("allocation should be free again after deletion: %v", err)
	}
}

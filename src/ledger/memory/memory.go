// Package memory is an in-memory ledger.Store used by tests as a stand-in
// for the Postgres-backed store.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"spendwise-server/src/ledger"
	"spendwise-server/src/models"
)

type Store struct {
	mu                sync.Mutex
	budgets           map[int64]models.Budget
	transactions      map[int64]models.Transaction
	nextBudgetID      int64
	nextTransactionID int64
}

func New() *Store {
	return &Store{
		budgets:      make(map[int64]models.Budget),
		transactions: make(map[int64]models.Transaction),
	}
}

// SeedBudget inserts a budget bypassing validation, so tests can set up
// states the API would reject (a zero allocation, for instance).
func (s *Store) SeedBudget(b models.Budget) models.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextBudgetID++
	b.ID = s.nextBudgetID
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	s.budgets[b.ID] = b
	return b
}

func (s *Store) CreateBudget(ctx context.Context, budget *models.Budget) (*models.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextBudgetID++
	b := *budget
	b.ID = s.nextBudgetID
	b.CreatedAt = time.Now()
	s.budgets[b.ID] = b
	return &b, nil
}

func (s *Store) DeleteBudget(ctx context.Context, userID, budgetID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.budgets[budgetID]
	if !ok || b.UserID != userID {
		return ledger.ErrNotFound
	}
	delete(s.budgets, budgetID)
	for id, t := range s.transactions {
		if t.BudgetID != nil && *t.BudgetID == budgetID {
			delete(s.transactions, id)
		}
	}
	return nil
}

func (s *Store) BudgetAggregates(ctx context.Context, userID int64) ([]models.BudgetAggregate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var aggregates []models.BudgetAggregate
	for _, b := range s.budgets {
		if b.UserID != userID {
			continue
		}
		a := models.BudgetAggregate{Budget: b, TotalSpent: decimal.Zero}
		for _, t := range s.transactions {
			if t.BudgetID != nil && *t.BudgetID == b.ID {
				a.TransactionCount++
				a.TotalSpent = a.TotalSpent.Add(t.Amount)
			}
		}
		aggregates = append(aggregates, a)
	}
	// Newest budget first; IDs are assigned in creation order.
	sort.Slice(aggregates, func(i, j int) bool { return aggregates[i].ID > aggregates[j].ID })
	return aggregates, nil
}

func (s *Store) CreateLinkedTransaction(ctx context.Context, t *models.Transaction) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.budgets[*t.BudgetID]
	if !ok || b.UserID != t.UserID {
		return nil, ledger.ErrNotFound
	}
	current := decimal.Zero
	for _, existing := range s.transactions {
		if existing.BudgetID != nil && *existing.BudgetID == b.ID {
			current = current.Add(existing.Amount)
		}
	}
	if err := ledger.CheckOverspend(b.Amount, current, t.Amount); err != nil {
		return nil, err
	}
	s.nextTransactionID++
	stored := *t
	stored.ID = s.nextTransactionID
	stored.Category = b.Category
	stored.CreatedAt = time.Now()
	s.transactions[stored.ID] = stored
	return &stored, nil
}

func (s *Store) CreateStandaloneTransaction(ctx context.Context, t *models.Transaction) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextTransactionID++
	stored := *t
	stored.ID = s.nextTransactionID
	stored.CreatedAt = time.Now()
	s.transactions[stored.ID] = stored
	return &stored, nil
}

func (s *Store) DeleteTransaction(ctx context.Context, userID, transactionID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions[transactionID]
	if !ok {
		return ledger.ErrNotFound
	}
	if t.BudgetID != nil {
		b, ok := s.budgets[*t.BudgetID]
		if !ok || b.UserID != userID {
			return ledger.ErrNotFound
		}
	} else if t.UserID != userID {
		return ledger.ErrNotFound
	}
	delete(s.transactions, transactionID)
	return nil
}

func (s *Store) ListTransactions(ctx context.Context, userID int64) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var transactions []models.Transaction
	for _, t := range s.transactions {
		if t.UserID != userID {
			continue
		}
		if t.BudgetID != nil {
			if b, ok := s.budgets[*t.BudgetID]; ok {
				name := b.Name
				t.BudgetName = &name
			}
		}
		transactions = append(transactions, t)
	}
	sort.Slice(transactions, func(i, j int) bool { return transactions[i].ID > transactions[j].ID })
	return transactions, nil
}

func (s *Store) BudgetTransactions(ctx context.Context, userID, budgetID int64) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.budgets[budgetID]
	if !ok || b.UserID != userID {
		return nil, ledger.ErrNotFound
	}
	var transactions []models.Transaction
	for _, t := range s.transactions {
		if t.BudgetID != nil && *t.BudgetID == budgetID {
			transactions = append(transactions, t)
		}
	}
	sort.Slice(transactions, func(i, j int) bool { return transactions[i].ID > transactions[j].ID })
	return transactions, nil
}

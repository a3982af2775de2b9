package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"spendwise-server/src/db"
	"spendwise-server/src/ledger"
	"spendwise-server/src/ledger/memory"
)

var cacheOnce sync.Once

// newTestServer mounts the budget/transaction routes the way the router
// does, with auth replaced by a middleware that injects a fixed user id.
func newTestServer(t *testing.T, userID int64) (*httptest.Server, *memory.Store) {
	t.Helper()
	cacheOnce.Do(db.InitCache)

	store := memory.New()
	l := ledger.New(store)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(context.WithValue(req.Context(), "user_id", userID)))
		})
	})
	r.Post("/api/budgets", CreateBudget(l))
	r.Delete("/api/budgets/{budgetId}", DeleteBudget(l))
	r.Get("/api/budgets/all-summaries", GetAllBudgetsSummary(l))
	r.Get("/api/budgets/reached", GetReachedBudgets(l))
	r.Get("/api/budgets/{budgetId}/transactions", GetBudgetTransactions(l))
	r.Post("/api/transactions", CreateTransaction(l))
	r.Get("/api/transactions", GetTransactions(l))
	r.Delete("/api/transactions/{transactionId}", DeleteTransaction(l))
	r.Get("/api/transactions/summary", GetTransactionsSummary(l))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, store
}

func jsonInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func doJSON(t *testing.T, method, url, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return resp, decoded
}

func TestCreateBudgetEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, 1)

	resp, body := doJSON(t, "POST", srv.URL+"/api/budgets",
		`{"name":"Groceries","amount":150,"category":"food"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	if body["name"] != "Groceries" || body["category"] != "food" {
		t.Errorf("unexpected budget body: %v", body)
	}

	resp, body = doJSON(t, "POST", srv.URL+"/api/budgets",
		`{"name":"","amount":150,"category":"food"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid budget status = %d, want 400", resp.StatusCode)
	}
	if body["error"] == nil {
		t.Error("expected an error field")
	}
}

func TestCreateTransactionEndpointOverspend(t *testing.T) {
	srv, _ := newTestServer(t, 1)

	resp, created := doJSON(t, "POST", srv.URL+"/api/budgets",
		`{"name":"Groceries","amount":100,"category":"food"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("budget status = %d, want 201", resp.StatusCode)
	}
	budgetID := int64(created["id"].(float64))

	resp, _ = doJSON(t, "POST", srv.URL+"/api/transactions",
		`{"budget_id":`+jsonInt(budgetID)+`,"amount":60,"description":"weekly shop"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("first transaction status = %d, want 201", resp.StatusCode)
	}

	resp, body := doJSON(t, "POST", srv.URL+"/api/transactions",
		`{"budget_id":`+jsonInt(budgetID)+`,"amount":50,"description":"second shop"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("overspend status = %d, want 400", resp.StatusCode)
	}
	details, ok := body["details"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected shortfall details, got %v", body)
	}
	if details["remaining"] != "40.00" || details["attempted"] != "50.00" {
		t.Errorf("details = %v, want remaining 40.00 / attempted 50.00", details)
	}
}

func TestBudgetSummaryEndpointCacheInvalidation(t *testing.T) {
	srv, _ := newTestServer(t, 7)

	resp, created := doJSON(t, "POST", srv.URL+"/api/budgets",
		`{"name":"Groceries","amount":100,"category":"food"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("budget status = %d, want 201", resp.StatusCode)
	}
	budgetID := int64(created["id"].(float64))

	// Prime the cache, then write, then re-read: the summary must reflect
	// the new transaction.
	resp, _ = doJSON(t, "GET", srv.URL+"/api/budgets/all-summaries", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("summary status = %d, want 200", resp.StatusCode)
	}

	resp, _ = doJSON(t, "POST", srv.URL+"/api/transactions",
		`{"budget_id":`+jsonInt(budgetID)+`,"amount":25,"description":"shop"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("transaction status = %d, want 201", resp.StatusCode)
	}

	_, body := doJSON(t, "GET", srv.URL+"/api/budgets/all-summaries", "")
	budgets := body["budgets"].([]interface{})
	if len(budgets) != 1 {
		t.Fatalf("got %d budgets, want 1", len(budgets))
	}
	summary := budgets[0].(map[string]interface{})
	if summary["total_spent"] != "25" && summary["total_spent"] != "25.00" {
		t.Errorf("total_spent after write = %v, want 25", summary["total_spent"])
	}
}

func TestDeleteForeignTransactionEndpoint(t *testing.T) {
	srv, store := newTestServer(t, 2)

	// A transaction owned by someone else must look nonexistent.
	l := ledger.New(store)
	tx, err := l.CreateTransaction(context.Background(), 1, ledger.TransactionInput{
		Amount: decimal.NewFromInt(10), Description: "coffee", Category: "food",
	})
	if err != nil {
		t.Fatalf("seeding transaction: %v", err)
	}

	resp, _ := doJSON(t, "DELETE", srv.URL+"/api/transactions/"+jsonInt(tx.ID), "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestTransactionsSummaryEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, 1)

	doJSON(t, "POST", srv.URL+"/api/transactions",
		`{"amount":1000,"description":"salary","category":"income"}`)
	doJSON(t, "POST", srv.URL+"/api/transactions",
		`{"amount":-250,"description":"rent","category":"housing"}`)

	resp, body := doJSON(t, "GET", srv.URL+"/api/transactions/summary", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body["income"] != "1000" || body["expenses"] != "250" || body["balance"] != "750" {
		t.Errorf("summary = %v, want income 1000 / expenses 250 / balance 750", body)
	}
}

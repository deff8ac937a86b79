package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"purse/internal/core"
	"purse/internal/engine"
	"purse/internal/services"
	"purse/internal/storage/memory"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	clock := func() time.Time { return time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC) }
	eng := engine.NewWithClock(memory.New(), clock)
	srv := NewServer(":0", services.NewPlanService(eng, nil))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv
}

func do(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	rr := do(srv, http.MethodGet, "/healthz", "")
	if rr.Code != 200 {
		t.Fatalf("/healthz status=%d", rr.Code)
	}

	// Not ready before the first refresh, ready after.
	rr = do(srv, http.MethodGet, "/readyz", "")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("/readyz before refresh status=%d, want 503", rr.Code)
	}

	do(srv, http.MethodGet, "/plan", "")
	rr = do(srv, http.MethodGet, "/readyz", "")
	if rr.Code != 200 {
		t.Fatalf("/readyz after refresh status=%d", rr.Code)
	}
}

func TestGetPlanEmpty(t *testing.T) {
	srv := newTestServer(t)

	rr := do(srv, http.MethodGet, "/plan", "")
	if rr.Code != 200 {
		t.Fatalf("status=%d", rr.Code)
	}

	var resp planResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Loading {
		t.Error("loading should clear after the handler refreshes")
	}
	if resp.Plan != nil || resp.Today != nil {
		t.Errorf("expected null plan and today, got %+v", resp)
	}
}

func TestCreatePlan(t *testing.T) {
	srv := newTestServer(t)

	rr := do(srv, http.MethodPost, "/plan", `{"amount": 700}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status=%d, body=%s", rr.Code, rr.Body.String())
	}

	var plan core.BudgetPlan
	if err := json.Unmarshal(rr.Body.Bytes(), &plan); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if plan.InitialBudget != 700 || len(plan.Days) != core.DaysPerWeek {
		t.Fatalf("plan mismatch: %+v", plan)
	}
	if !strings.Contains(rr.Body.String(), `"dailyBudget":"R$ 100.00"`) {
		t.Fatalf("day money should serialize as currency strings: %s", rr.Body.String())
	}

	// The new plan must be visible on the next read.
	rr = do(srv, http.MethodGet, "/plan", "")
	var resp planResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Plan == nil || resp.Plan.InitialBudget != 700 {
		t.Fatalf("created plan not visible: %+v", resp.Plan)
	}
	if resp.Today == nil {
		t.Fatal("today record missing for an in-week plan")
	}
}

func TestCreatePlanStringAmount(t *testing.T) {
	srv := newTestServer(t)

	rr := do(srv, http.MethodPost, "/plan", `{"amount": "350.00"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status=%d, body=%s", rr.Code, rr.Body.String())
	}

	var plan core.BudgetPlan
	if err := json.Unmarshal(rr.Body.Bytes(), &plan); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if plan.InitialBudget != 350 {
		t.Fatalf("InitialBudget = %v, want 350", plan.InitialBudget)
	}
}

func TestCreatePlanInvalidAmount(t *testing.T) {
	srv := newTestServer(t)

	for _, body := range []string{
		`{"amount": 0}`,
		`{"amount": -10}`,
		`{"amount": "abc"}`,
		`{"amount": null}`,
		`{}`,
		`not json`,
	} {
		rr := do(srv, http.MethodPost, "/plan", body)
		if rr.Code != http.StatusUnprocessableEntity {
			t.Errorf("body %s: status=%d, want 422", body, rr.Code)
		}
	}
}

func TestRecordExpense(t *testing.T) {
	srv := newTestServer(t)

	do(srv, http.MethodPost, "/plan", `{"amount": 700}`)

	rr := do(srv, http.MethodPost, "/plan/expenses", `{"amount": 100}`)
	if rr.Code != 200 {
		t.Fatalf("status=%d, body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"ok":true`) {
		t.Fatalf("body=%s", rr.Body.String())
	}

	rr = do(srv, http.MethodGet, "/plan", "")
	var resp planResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Plan.CurrentBudget != 600 {
		t.Fatalf("CurrentBudget = %v, want 600", resp.Plan.CurrentBudget)
	}
	if resp.Today.Expenses != 100 {
		t.Fatalf("today.Expenses = %v, want 100", resp.Today.Expenses)
	}
}

func TestRecordExpenseWithoutPlan(t *testing.T) {
	srv := newTestServer(t)

	rr := do(srv, http.MethodPost, "/plan/expenses", `{"amount": 50}`)
	if rr.Code != http.StatusConflict {
		t.Fatalf("status=%d, want 409", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"ok":false`) {
		t.Fatalf("body=%s", rr.Body.String())
	}
}

func TestRecordExpenseInvalidAmount(t *testing.T) {
	srv := newTestServer(t)
	do(srv, http.MethodPost, "/plan", `{"amount": 700}`)

	rr := do(srv, http.MethodPost, "/plan/expenses", `{"amount": -5}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d, want 422", rr.Code)
	}
}

func TestDeletePlan(t *testing.T) {
	srv := newTestServer(t)

	do(srv, http.MethodPost, "/plan", `{"amount": 700}`)

	rr := do(srv, http.MethodDelete, "/plan", "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status=%d, want 204", rr.Code)
	}

	rr = do(srv, http.MethodGet, "/plan", "")
	var resp planResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Plan != nil {
		t.Fatal("plan still visible after delete")
	}

	// Deleting again is still a 204.
	rr = do(srv, http.MethodDelete, "/plan", "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("repeat delete status=%d, want 204", rr.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	rr := do(srv, http.MethodPut, "/plan", `{"amount": 1}`)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("PUT /plan status=%d, want 405", rr.Code)
	}
	rr = do(srv, http.MethodGet, "/plan/expenses", "")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET /plan/expenses status=%d, want 405", rr.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv := newTestServer(t)

	rr := do(srv, http.MethodGet, "/plan", "")
	if got := rr.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rr.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
}

func TestGetPlanCacheRollsWithWeek(t *testing.T) {
	monday := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	eng := engine.NewWithClock(memory.New(), func() time.Time { return monday })
	svc := services.NewPlanService(eng, nil)
	srv := NewServer(":0", svc)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})

	serverNow := monday
	srv.now = func() time.Time { return serverNow }

	// Prime the cache with the empty-plan response, then create a plan
	// behind its back.
	do(srv, http.MethodGet, "/plan", "")
	if _, err := svc.CreatePlan(context.Background(), 700); err != nil {
		t.Fatalf("create: %v", err)
	}

	var resp struct {
		Plan *core.BudgetPlan `json:"plan"`
	}

	rr := do(srv, http.MethodGet, "/plan", "")
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Plan != nil {
		t.Fatal("same-week read bypassed the cache")
	}

	// Once the week rolls over the stale entry's key no longer matches
	// and the plan is re-read.
	serverNow = serverNow.AddDate(0, 0, 7)
	rr = do(srv, http.MethodGet, "/plan", "")
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Plan == nil {
		t.Fatal("rolled-over read served the previous week's cache entry")
	}
}

package api

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/finpulse/internal/advisor"
	"github.com/theirongolddev/finpulse/internal/finance"
	"github.com/theirongolddev/finpulse/internal/identity"
	"github.com/theirongolddev/finpulse/internal/model"
	"github.com/theirongolddev/finpulse/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// tokenVerifier maps fixed tokens to subjects.
type tokenVerifier map[string]string

func (v tokenVerifier) Verify(_ context.Context, token string) (identity.Identity, error) {
	if token == "outage" {
		return identity.Identity{}, errors.New("upstream down")
	}
	sub, ok := v[token]
	if !ok {
		return identity.Identity{}, identity.ErrInvalidToken
	}
	return identity.Identity{Subject: sub}, nil
}

type fixedGenerator struct {
	text string
	err  error
}

func (g fixedGenerator) Generate(context.Context, advisor.Request) (string, error) {
	return g.text, g.err
}

func newTestAPI(t *testing.T, gen advisor.Generator) *Service {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	opts := []finance.Option{finance.WithClock(func() time.Time {
		return time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)
	})}
	if gen != nil {
		opts = append(opts, finance.WithAdvisor(advisor.New(gen)))
	}
	backend := finance.New(st, opts...)
	return New(Config{}, backend, tokenVerifier{"tok-a": "user_a", "tok-b": "user_b"}, nil)
}

func do(t *testing.T, s *Service, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthAndStatus(t *testing.T) {
	s := newTestAPI(t, nil)

	w := do(t, s, http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok\n", w.Body.String())
	require.NotEmpty(t, w.Header().Get(requestIDHeader))

	w = do(t, s, http.MethodGet, "/v1/status", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "127.0.0.1:5000", decode[Status](t, w).Addr)
}

func TestAuthRequired(t *testing.T) {
	s := newTestAPI(t, nil)

	require.Equal(t, http.StatusUnauthorized, do(t, s, http.MethodGet, "/api/financial-data", "", "").Code)
	require.Equal(t, http.StatusUnauthorized, do(t, s, http.MethodGet, "/api/financial-data", "bogus", "").Code)
	require.Equal(t, http.StatusServiceUnavailable, do(t, s, http.MethodGet, "/api/financial-data", "outage", "").Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestAPI(t, nil)
	w := do(t, s, http.MethodOptions, "/api/transactions", "", "")
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSnapshotEndpoints(t *testing.T) {
	s := newTestAPI(t, nil)

	w := do(t, s, http.MethodGet, "/api/financial-data", "tok-a", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, s, http.MethodPost, "/api/user/profile", "tok-a", `{"email":"a@example.com","first_name":"Ada"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, s, http.MethodGet, "/api/financial-data", "tok-a", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "No financial data found")

	w = do(t, s, http.MethodPost, "/api/financial-data", "tok-a", `{"monthly_income":5000,"monthly_expenses":3500,"current_savings":10000,"emergency_fund":9000}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, s, http.MethodGet, "/api/financial-data", "tok-a", "")
	require.Equal(t, http.StatusOK, w.Code)
	snap := decode[model.FinancialSnapshot](t, w)
	require.Equal(t, 5000.0, snap.MonthlyIncome)
	require.Equal(t, 0.0, snap.DebtAmount)

	// Another subject sees nothing.
	require.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/api/financial-data", "tok-b", "").Code)

	require.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/api/financial-data", "tok-a", `{"monthly_income":`).Code)
}

func TestTransactionEndpoints(t *testing.T) {
	s := newTestAPI(t, nil)

	w := do(t, s, http.MethodPost, "/api/transactions", "tok-a", `{"type":"expense","category":"food","amount":12.5,"date":"2026-10-02"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Contains(t, w.Body.String(), `"date":"2026-10-02"`)

	w = do(t, s, http.MethodPost, "/api/transactions", "tok-a", `{"type":"income","category":"salary","amount":3000}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, s, http.MethodPost, "/api/transactions", "tok-a", `{"type":"gift","category":"x","amount":1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "type must be one of")

	w = do(t, s, http.MethodGet, "/api/transactions", "tok-a", "")
	require.Equal(t, http.StatusOK, w.Code)
	txs := decode[[]model.Transaction](t, w)
	require.Len(t, txs, 2)
	require.Equal(t, "salary", txs[0].Category) // dated today, so newest

	w = do(t, s, http.MethodGet, "/api/transactions?limit=1", "tok-a", "")
	require.Len(t, decode[[]model.Transaction](t, w), 1)

	w = do(t, s, http.MethodGet, "/api/transactions?since=2026-10-10", "tok-a", "")
	require.Len(t, decode[[]model.Transaction](t, w), 1)

	require.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/api/transactions?limit=zero", "tok-a", "").Code)
	require.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/api/transactions?since=yesterday", "tok-a", "").Code)
	require.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/api/transactions", "tok-b", "").Code)
}

func TestAnalysisEndpoint(t *testing.T) {
	s := newTestAPI(t, nil)

	do(t, s, http.MethodPost, "/api/financial-data", "tok-a", `{"monthly_income":5000,"monthly_expenses":3500,"current_savings":10000,"emergency_fund":9000}`)
	do(t, s, http.MethodPost, "/api/transactions", "tok-a", `{"type":"expense","category":"rent","amount":1200,"date":"2026-10-01"}`)

	w := do(t, s, http.MethodGet, "/api/financial-analysis", "tok-a", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	a := decode[model.Analysis](t, w)
	require.InDelta(t, 69.29, a.FinancialHealthScore, 0.01)
	require.Equal(t, []model.CategorySpend{{Category: "rent", Amount: 1200}}, a.SpendingByCategory)
	require.Len(t, a.MonthlyTrends, 1)
}

func TestAdviceEndpoint(t *testing.T) {
	s := newTestAPI(t, fixedGenerator{text: "Automate your savings."})

	w := do(t, s, http.MethodPost, "/api/ai-advice", "tok-a", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	do(t, s, http.MethodPost, "/api/financial-data", "tok-a", `{"monthly_income":3000,"monthly_expenses":2000}`)

	w = do(t, s, http.MethodPost, "/api/ai-advice", "tok-a", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode[struct {
		Success bool                `json:"success"`
		Advice  string              `json:"advice"`
		Summary model.AdviceSummary `json:"financial_summary"`
	}](t, w)
	require.True(t, body.Success)
	require.Equal(t, "Automate your savings.", body.Advice)
	require.Equal(t, 33.3, body.Summary.SavingsRate)

	events := decode[[]Event](t, do(t, s, http.MethodGet, "/api/events", "tok-a", ""))
	require.Len(t, events, 2)
	require.Equal(t, EventSnapshotSaved, events[0].Type)
	require.Equal(t, EventAdviceGenerated, events[1].Type)
}

func TestAdviceEndpointFailure(t *testing.T) {
	s := newTestAPI(t, fixedGenerator{err: advisor.ErrRateLimited})
	do(t, s, http.MethodPost, "/api/financial-data", "tok-a", `{"monthly_income":3000}`)

	w := do(t, s, http.MethodPost, "/api/ai-advice", "tok-a", "")
	require.Equal(t, http.StatusBadGateway, w.Code)
	require.Contains(t, w.Body.String(), "Failed to generate advice")

	// Snapshot reads keep working.
	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/api/financial-data", "tok-a", "").Code)
}

func TestGoalEndpoints(t *testing.T) {
	s := newTestAPI(t, nil)

	w := do(t, s, http.MethodPost, "/api/goals", "tok-a", `{"goal_type":"emergency_fund","target_amount":10000,"current_amount":2500,"target_date":"2027-06-30"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, s, http.MethodPost, "/api/goals", "tok-a", `{"goal_type":"car","target_amount":-5}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodGet, "/api/goals", "tok-a", "")
	require.Equal(t, http.StatusOK, w.Code)
	goals := decode[[]model.Goal](t, w)
	require.Len(t, goals, 1)
	require.Equal(t, model.GoalActive, goals[0].Status)
}

func TestStream(t *testing.T) {
	s := newTestAPI(t, nil)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/stream", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer tok-a")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	readEvent := func() string {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		_, err = reader.ReadString('\n') // data
		require.NoError(t, err)
		_, err = reader.ReadString('\n') // blank
		require.NoError(t, err)
		return strings.TrimSpace(strings.TrimPrefix(line, "event:"))
	}

	require.Equal(t, EventConnected, readEvent())

	// Wait for the subscription to register before publishing.
	require.Eventually(t, func() bool { return s.status().SubscriberCount == 1 }, 2*time.Second, 10*time.Millisecond)

	s.publish("user_b", EventSnapshotSaved, nil)
	s.publish("user_a", EventTransactionAdded, nil)
	require.Equal(t, EventTransactionAdded, readEvent())
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-api/internal/auth"
	"github.com/carson-networks/budget-api/internal/ledger"
	"github.com/carson-networks/budget-api/internal/logging"
	"github.com/carson-networks/budget-api/internal/service"
	"github.com/carson-networks/budget-api/internal/storage"
	"github.com/carson-networks/budget-api/internal/storage/sqlconfig"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

type testServer struct {
	handler      http.Handler
	jwt          *auth.JWTManager
	categories   *sqlconfig.MockICategoryTable
	transactions *sqlconfig.MockITransactionTable
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	categories := sqlconfig.NewMockICategoryTable(t)
	transactions := sqlconfig.NewMockITransactionTable(t)
	store := &storage.Storage{Categories: categories, Transactions: transactions}
	jwt := auth.NewJWTManager("test-secret", time.Hour)

	rest := &Rest{
		Logger:     logging.SetupLogging("error"),
		CORSOrigin: "http://localhost:5173",
		Service:    service.NewService(store, nil, service.Options{Currency: "GBP"}),
		DB:         fakePinger{},
		JWT:        jwt,
	}
	return &testServer{
		handler:      rest.Router(),
		jwt:          jwt,
		categories:   categories,
		transactions: transactions,
	}
}

func (s *testServer) get(t *testing.T, path, userID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if userID != "" {
		token, err := s.jwt.Generate(userID)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func TestRouter_StatusIsPublic(t *testing.T) {
	s := newTestServer(t)

	w := s.get(t, "/status", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"db":"connected"`)
}

func TestRouter_MetricsIsPublic(t *testing.T) {
	s := newTestServer(t)

	w := s.get(t, "/metrics", "")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/categories", "/transactions", "/summary?month=2024-02", "/ai/summary?month=2024-02", "/export/transactions.csv?month=2024-02"} {
		w := s.get(t, path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestRouter_RejectsForgedToken(t *testing.T) {
	s := newTestServer(t)
	forged, err := auth.NewJWTManager("other-secret", time.Hour).Generate("user-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_SummaryEndToEnd(t *testing.T) {
	s := newTestServer(t)
	food := uuid.Must(uuid.NewV4())
	at := time.Date(2024, 2, 3, 10, 0, 0, 0, time.UTC)

	s.transactions.EXPECT().List(mock.Anything, mock.MatchedBy(func(f *sqlconfig.TransactionFilter) bool {
		return f.UserID == "user-1" && f.Range != nil && f.Range.Token == "2024-02"
	})).Return([]*sqlconfig.Transaction{
		{ID: uuid.Must(uuid.NewV4()), UserID: "user-1", CategoryID: food, Kind: ledger.KindExpense, Amount: 1250, OccurredAt: at, CreatedAt: at},
		{ID: uuid.Must(uuid.NewV4()), UserID: "user-1", CategoryID: uuid.Must(uuid.NewV4()), Kind: ledger.KindIncome, Amount: 5000, OccurredAt: at, CreatedAt: at},
	}, nil)
	s.categories.EXPECT().FindByIDs(mock.Anything, "user-1", []uuid.UUID{food}).
		Return([]*sqlconfig.Category{{ID: food, UserID: "user-1", Kind: ledger.KindExpense, Name: "Food"}}, nil)

	w := s.get(t, "/summary?month=2024-02", "user-1")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body struct {
		TotalIncome     int64 `json:"totalIncome"`
		TotalExpense    int64 `json:"totalExpense"`
		Net             int64 `json:"net"`
		SpendByCategory []struct {
			CategoryName string `json:"categoryName"`
		} `json:"spendByCategory"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, int64(5000), body.TotalIncome)
	assert.Equal(t, int64(1250), body.TotalExpense)
	assert.Equal(t, int64(3750), body.Net)
	require.Len(t, body.SpendByCategory, 1)
	assert.Equal(t, "Food", body.SpendByCategory[0].CategoryName)
}

func TestRouter_InvalidMonthIssuesNoQuery(t *testing.T) {
	s := newTestServer(t)

	w := s.get(t, "/summary?month=2024-13", "user-1")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_AISummaryWithoutProviderIsServerError(t *testing.T) {
	s := newTestServer(t)

	w := s.get(t, "/ai/summary?month=2024-02", "user-1")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRouter_StoreFailureIsServerError(t *testing.T) {
	s := newTestServer(t)
	s.categories.EXPECT().List(mock.Anything, "user-1").Return(nil, errors.New("pq: too many connections"))

	w := s.get(t, "/categories", "user-1")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body, _ := io.ReadAll(w.Body)
	assert.NotContains(t, string(body), "too many connections")
}

func TestRouter_OpenAPIDeclaresBearerScheme(t *testing.T) {
	s := newTestServer(t)

	w := s.get(t, "/openapi.json", "")

	require.Equal(t, http.StatusOK, w.Code)
	var doc struct {
		Paths      map[string]any `json:"paths"`
		Components struct {
			SecuritySchemes map[string]any `json:"securitySchemes"`
		} `json:"components"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&doc))
	assert.Contains(t, doc.Components.SecuritySchemes, auth.SecurityScheme)
	assert.Contains(t, doc.Paths, "/summary")
	assert.Contains(t, doc.Paths, "/export/transactions.csv")
}

func TestRouter_CORSPreflight(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/summary", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()

	s.handler.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

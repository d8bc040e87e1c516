package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fxlens/fxlens/internal/app"
	"github.com/fxlens/fxlens/internal/common"
	"github.com/fxlens/fxlens/internal/models"
)

// fakeAccounts scripts the account service per test.
type fakeAccounts struct {
	accounts []*models.Account
	totals   *models.AggregatedTotals
	err      error
	png      []byte
}

func (f *fakeAccounts) GetAccounts(ctx context.Context) ([]*models.Account, error) {
	return f.accounts, f.err
}

func (f *fakeAccounts) GetAggregatedTotals(ctx context.Context, accountID string) (*models.AggregatedTotals, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.totals, nil
}

func (f *fakeAccounts) GetHistory(ctx context.Context, accountID string) ([]*models.Trade, error) {
	return []*models.Trade{}, f.err
}

func (f *fakeAccounts) GetAverageTradeDuration(ctx context.Context, accountID string) (*models.TradeDurationStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.TradeDurationStats{AccountID: accountID}, nil
}

func (f *fakeAccounts) GetBalanceProfitability(ctx context.Context, accountID, start, end string) (*models.BalanceProfitability, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.BalanceProfitability{AccountID: accountID, StartDate: start, EndDate: end}, nil
}

func (f *fakeAccounts) GetDailyData(ctx context.Context, accountID, start, end string) ([]models.DailyRecord, error) {
	return []models.DailyRecord{}, f.err
}

func (f *fakeAccounts) GetGainComparisons(ctx context.Context, accountID string) (*models.GainComparisons, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.GainComparisons{AccountID: accountID}, nil
}

func (f *fakeAccounts) GetDailyDataComparisons(ctx context.Context, accountID string) (*models.DailyDataComparisons, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.DailyDataComparisons{AccountID: accountID}, nil
}

func (f *fakeAccounts) GetPerformanceSummary(ctx context.Context, accountID, start, end string) (*models.PerformanceSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.PerformanceSummary{AccountID: accountID}, nil
}

func (f *fakeAccounts) GetAllComparisons(ctx context.Context, accountID string) (*models.AllComparisons, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.AllComparisons{AccountID: accountID}, nil
}

func (f *fakeAccounts) RenderEquityChart(ctx context.Context, accountID, start, end string) ([]byte, error) {
	return f.png, f.err
}

func (f *fakeAccounts) Login(ctx context.Context, email, password string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "tok", nil
}

func (f *fakeAccounts) Logout(ctx context.Context, token string) error {
	return f.err
}

func newTestServer(accounts *fakeAccounts) *Server {
	a := &app.App{
		Config:      common.NewDefaultConfig(),
		Logger:      common.NewSilentLogger(),
		Accounts:    accounts,
		StartupTime: time.Now(),
	}
	return NewServer(a)
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(&fakeAccounts{})

	rec := doRequest(t, srv, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestVersionEndpoint(t *testing.T) {
	srv := newTestServer(&fakeAccounts{})

	rec := doRequest(t, srv, http.MethodGet, "/api/version", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Contains(t, payload, "version")
}

func TestAccountListEndpoint(t *testing.T) {
	srv := newTestServer(&fakeAccounts{
		accounts: []*models.Account{{ID: "1001", Name: "Low Risk"}},
	})

	rec := doRequest(t, srv, http.MethodGet, "/api/accounts", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var accounts []*models.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &accounts))
	require.Len(t, accounts, 1)
	assert.Equal(t, "1001", accounts[0].ID)
}

func TestAccountTotalsEndpoint(t *testing.T) {
	srv := newTestServer(&fakeAccounts{
		totals: &models.AggregatedTotals{AccountID: "default", Accounts: 2, Balance: 3000},
	})

	rec := doRequest(t, srv, http.MethodGet, "/api/accounts/default/totals", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var totals models.AggregatedTotals
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &totals))
	assert.Equal(t, 3000.0, totals.Balance)
}

func TestValidationErrorMapsTo400(t *testing.T) {
	srv := newTestServer(&fakeAccounts{
		err: &common.ValidationError{Field: "start", Reason: "must be YYYY-MM-DD"},
	})

	rec := doRequest(t, srv, http.MethodGet, "/api/accounts/1001/daily?start=bad&end=worse", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthenticationErrorMapsTo401(t *testing.T) {
	srv := newTestServer(&fakeAccounts{
		err: &common.AuthenticationError{Message: "bad credentials"},
	})

	rec := doRequest(t, srv, http.MethodPost, "/api/login", `{"email":"x@y.z","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpstreamErrorMapsTo502(t *testing.T) {
	srv := newTestServer(&fakeAccounts{
		err: &common.UpstreamError{Endpoint: "get-my-accounts", Err: errors.New("timeout")},
	})

	rec := doRequest(t, srv, http.MethodGet, "/api/accounts", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestUnknownAccountResourceIs404(t *testing.T) {
	srv := newTestServer(&fakeAccounts{})

	rec := doRequest(t, srv, http.MethodGet, "/api/accounts/1001/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(&fakeAccounts{})

	rec := doRequest(t, srv, http.MethodDelete, "/api/accounts", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Header().Get("Allow"), http.MethodGet)
}

func TestLogoutRequiresBody(t *testing.T) {
	srv := newTestServer(&fakeAccounts{})

	rec := doRequest(t, srv, http.MethodPost, "/api/logout", `{bad json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChartEndpointReturnsPNG(t *testing.T) {
	srv := newTestServer(&fakeAccounts{
		png: []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A},
	})

	rec := doRequest(t, srv, http.MethodGet, "/api/accounts/1001/chart?start=2024-01-01&end=2024-01-31", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}

func TestCorrelationIDHeaderSet(t *testing.T) {
	srv := newTestServer(&fakeAccounts{})

	rec := doRequest(t, srv, http.MethodGet, "/api/health", "")
	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
}

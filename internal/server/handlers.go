package server

import (
	"net/http"
)

// dateRange extracts the start/end query parameters. Validation of the
// values themselves is the service's job.
func dateRange(r *http.Request) (start, end string) {
	q := r.URL.Query()
	return q.Get("start"), q.Get("end")
}

// --- Session handlers ---

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type logoutRequest struct {
	Session string `json:"session"`
}

// handleLogin handles POST /api/login. With credentials in the body an
// explicit login is performed; with an empty body the shared backend session
// is resolved.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req loginRequest
	if r.ContentLength > 0 {
		if !DecodeJSON(w, r, &req) {
			return
		}
	}

	token, err := s.app.Accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"session": token})
}

// handleLogout handles POST /api/logout.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req logoutRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if err := s.app.Accounts.Logout(r.Context(), req.Session); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// --- Account handlers ---

func (s *Server) handleAccountList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	accounts, err := s.app.Accounts.GetAccounts(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, accounts)
}

func (s *Server) handleAccountTotals(w http.ResponseWriter, r *http.Request, accountID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	totals, err := s.app.Accounts.GetAggregatedTotals(r.Context(), accountID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, totals)
}

func (s *Server) handleAccountHistory(w http.ResponseWriter, r *http.Request, accountID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	trades, err := s.app.Accounts.GetHistory(r.Context(), accountID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, trades)
}

func (s *Server) handleTradeDuration(w http.ResponseWriter, r *http.Request, accountID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	stats, err := s.app.Accounts.GetAverageTradeDuration(r.Context(), accountID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

func (s *Server) handleProfitability(w http.ResponseWriter, r *http.Request, accountID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	start, end := dateRange(r)
	result, err := s.app.Accounts.GetBalanceProfitability(r.Context(), accountID, start, end)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

func (s *Server) handleDailyData(w http.ResponseWriter, r *http.Request, accountID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	start, end := dateRange(r)
	daily, err := s.app.Accounts.GetDailyData(r.Context(), accountID, start, end)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, daily)
}

func (s *Server) handleGainComparisons(w http.ResponseWriter, r *http.Request, accountID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	comparisons, err := s.app.Accounts.GetGainComparisons(r.Context(), accountID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, comparisons)
}

func (s *Server) handleDailyComparisons(w http.ResponseWriter, r *http.Request, accountID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	comparisons, err := s.app.Accounts.GetDailyDataComparisons(r.Context(), accountID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, comparisons)
}

func (s *Server) handlePerformance(w http.ResponseWriter, r *http.Request, accountID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	start, end := dateRange(r)
	summary, err := s.app.Accounts.GetPerformanceSummary(r.Context(), accountID, start, end)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

func (s *Server) handleAllComparisons(w http.ResponseWriter, r *http.Request, accountID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	all, err := s.app.Accounts.GetAllComparisons(r.Context(), accountID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, all)
}

func (s *Server) handleEquityChart(w http.ResponseWriter, r *http.Request, accountID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	start, end := dateRange(r)
	png, err := s.app.Accounts.RenderEquityChart(r.Context(), accountID, start, end)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

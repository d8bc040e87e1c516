package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/fxlens/fxlens/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Sessions
	mux.HandleFunc("/api/login", s.handleLogin)
	mux.HandleFunc("/api/logout", s.handleLogout)

	// Accounts
	mux.HandleFunc("/api/accounts/", s.routeAccounts)
	mux.HandleFunc("/api/accounts", s.handleAccountList)
}

// routeAccounts dispatches /api/accounts/{id}[/action] requests.
func (s *Server) routeAccounts(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/accounts/"), "/")
	if rest == "" {
		s.handleAccountList(w, r)
		return
	}

	parts := strings.SplitN(rest, "/", 2)
	accountID := parts[0]
	action := ""
	if len(parts) == 2 {
		action = parts[1]
	}

	switch action {
	case "totals":
		s.handleAccountTotals(w, r, accountID)
	case "history":
		s.handleAccountHistory(w, r, accountID)
	case "trade-duration":
		s.handleTradeDuration(w, r, accountID)
	case "profitability":
		s.handleProfitability(w, r, accountID)
	case "daily":
		s.handleDailyData(w, r, accountID)
	case "gain-comparisons":
		s.handleGainComparisons(w, r, accountID)
	case "daily-comparisons":
		s.handleDailyComparisons(w, r, accountID)
	case "performance":
		s.handlePerformance(w, r, accountID)
	case "comparisons":
		s.handleAllComparisons(w, r, accountID)
	case "chart":
		s.handleEquityChart(w, r, accountID)
	default:
		WriteError(w, http.StatusNotFound, "Unknown account resource: "+action)
	}
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
		"uptime":  time.Since(s.app.StartupTime).Round(time.Second).String(),
	})
}

package myfxbook

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fxlens/fxlens/internal/common"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := NewClient(
		WithBaseURL(srv.URL),
		WithRateLimit(1000),
		WithLogger(common.NewSilentLogger()),
	)
	return client, srv
}

func TestLogin(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/login.json" {
			t.Errorf("path = %q, want /api/login.json", r.URL.Path)
		}
		if got := r.URL.Query().Get("email"); got != "user@example.com" {
			t.Errorf("email = %q", got)
		}
		w.Write([]byte(`{"error":false,"message":"","session":"abc123"}`))
	})
	defer srv.Close()

	token, err := client.Login(context.Background(), "user@example.com", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token != "abc123" {
		t.Errorf("token = %q, want abc123", token)
	}
}

func TestLoginRejected(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":true,"message":"Wrong email or password"}`))
	})
	defer srv.Close()

	_, err := client.Login(context.Background(), "user@example.com", "bad")
	if !common.IsAuthentication(err) {
		t.Fatalf("err = %v, want AuthenticationError", err)
	}
}

func TestCallSessionExpiredByMessage(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":true,"message":"Invalid session."}`))
	})
	defer srv.Close()

	_, err := client.GetMyAccounts(context.Background(), "stale")
	if !common.IsSessionExpired(err) {
		t.Fatalf("err = %v, want SessionExpiredError", err)
	}
}

func TestCallSessionExpiredByStatus(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	defer srv.Close()

	_, err := client.GetMyAccounts(context.Background(), "stale")
	if !common.IsSessionExpired(err) {
		t.Fatalf("err = %v, want SessionExpiredError", err)
	}
}

func TestCallUpstreamFailure(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer srv.Close()

	_, err := client.GetGain(context.Background(), "tok", "1", "2024-01-01", "2024-01-31")
	if err == nil {
		t.Fatal("expected error for 502 response")
	}
	if common.IsSessionExpired(err) {
		t.Errorf("502 misclassified as session expiry: %v", err)
	}
}

func TestGetGainPassesParams(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("session") != "tok" || q.Get("id") != "42" ||
			q.Get("start") != "2024-01-01" || q.Get("end") != "2024-01-31" {
			t.Errorf("unexpected query: %v", q)
		}
		w.Write([]byte(`{"error":false,"gain":3.5}`))
	})
	defer srv.Close()

	gain, err := client.GetGain(context.Background(), "tok", "42", "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("GetGain: %v", err)
	}
	if gain != 3.5 {
		t.Errorf("gain = %v, want 3.5", gain)
	}
}

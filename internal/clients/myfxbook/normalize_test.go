package myfxbook

import "testing"

func TestNormalizeAccountsStringNumbers(t *testing.T) {
	body := []byte(`{"error":false,"accounts":[
		{"id":1234,"name":"Alpha","balance":"1,500.50","profit":250,"monthly":"1.2","drawdown":5.5}
	]}`)

	accounts, err := normalizeAccounts(body)
	if err != nil {
		t.Fatalf("normalizeAccounts: %v", err)
	}
	if len(accounts) != 1 {
		t.Fatalf("got %d accounts, want 1", len(accounts))
	}

	a := accounts[0]
	if a.ID != "1234" {
		t.Errorf("ID = %q, want %q", a.ID, "1234")
	}
	if a.Balance != 1500.50 {
		t.Errorf("Balance = %v, want 1500.50", a.Balance)
	}
	if a.Monthly != 1.2 {
		t.Errorf("Monthly = %v, want 1.2", a.Monthly)
	}
}

func TestNormalizeHistoryKeyProbing(t *testing.T) {
	bodies := [][]byte{
		[]byte(`{"error":false,"history":[{"openTime":"01/01/2024 10:00","closeTime":"01/01/2024 12:00"}]}`),
		[]byte(`{"error":false,"data":[{"openTime":"01/01/2024 10:00","closeTime":"01/01/2024 12:00"}]}`),
		[]byte(`{"error":false,"trades":[{"openTime":"01/01/2024 10:00","closeTime":"01/01/2024 12:00"}]}`),
	}

	for i, body := range bodies {
		trades, err := normalizeHistory(body)
		if err != nil {
			t.Fatalf("case %d: normalizeHistory: %v", i, err)
		}
		if len(trades) != 1 {
			t.Fatalf("case %d: got %d trades, want 1", i, len(trades))
		}
		if trades[0].OpenTime != "01/01/2024 10:00" {
			t.Errorf("case %d: OpenTime = %q", i, trades[0].OpenTime)
		}
	}
}

func TestNormalizeHistoryNoKnownKey(t *testing.T) {
	trades, err := normalizeHistory([]byte(`{"error":false,"something":[]}`))
	if err != nil {
		t.Fatalf("normalizeHistory: %v", err)
	}
	if len(trades) != 0 {
		t.Errorf("got %d trades for unknown payload, want 0", len(trades))
	}
}

func TestNormalizeDailyFieldVariants(t *testing.T) {
	body := []byte(`{"error":false,"dataDaily":[
		{"date":"2024-01-01","balance":100,"profit":10,"pips":3},
		{"date":"2024-01-02","balance":105,"profite":5,"pip":1}
	]}`)

	records, err := normalizeDaily(body)
	if err != nil {
		t.Fatalf("normalizeDaily: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	if records[0].Profit != 10 || records[0].Pips != 3 {
		t.Errorf("record 0 = %+v, want profit 10 pips 3", records[0])
	}
	if records[1].Profit != 5 || records[1].Pips != 1 {
		t.Errorf("record 1 = %+v, want profite 5 pip 1", records[1])
	}
}

func TestNormalizeDailySingletonWrapped(t *testing.T) {
	body := []byte(`{"error":false,"dataDaily":[
		[{"date":"2024-01-01","balance":100,"profit":10}],
		[{"date":"2024-01-02","balance":110,"profit":10}]
	]}`)

	records, err := normalizeDaily(body)
	if err != nil {
		t.Fatalf("normalizeDaily: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[1].Date != "2024-01-02" || records[1].Balance != 110 {
		t.Errorf("record 1 = %+v", records[1])
	}
}

func TestNormalizeDailyEmpty(t *testing.T) {
	records, err := normalizeDaily([]byte(`{"error":false}`))
	if err != nil {
		t.Fatalf("normalizeDaily: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}

func TestNormalizeGainFieldVariants(t *testing.T) {
	cases := []struct {
		body []byte
		want float64
	}{
		{[]byte(`{"error":false,"gain":12.5}`), 12.5},
		{[]byte(`{"error":false,"value":"7.25"}`), 7.25},
		{[]byte(`{"error":false}`), 0},
	}

	for i, tc := range cases {
		got, err := normalizeGain(tc.body)
		if err != nil {
			t.Fatalf("case %d: normalizeGain: %v", i, err)
		}
		if got != tc.want {
			t.Errorf("case %d: gain = %v, want %v", i, got, tc.want)
		}
	}
}

func TestIsSessionExpiredMessage(t *testing.T) {
	expired := []string{
		"Invalid session.",
		"The session expired",
		"UNAUTHORIZED",
		"authentication failed for user",
	}
	for _, msg := range expired {
		if !isSessionExpiredMessage(msg) {
			t.Errorf("isSessionExpiredMessage(%q) = false, want true", msg)
		}
	}

	if isSessionExpiredMessage("rate limit exceeded") {
		t.Error("generic failure misclassified as session expiry")
	}
}

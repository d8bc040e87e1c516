package storage

import "testing"

func TestCacheKeyDeterministic(t *testing.T) {
	a := CacheKey("gain", "1234", "2024-01-01", "2024-03-15")
	b := CacheKey("gain", "1234", "2024-01-01", "2024-03-15")
	if a != b {
		t.Errorf("same inputs produced different keys: %q vs %q", a, b)
	}
}

func TestCacheKeyDiffersPerParameter(t *testing.T) {
	base := CacheKey("gain", "1234", "2024-01-01")
	cases := []string{
		CacheKey("gain", "1235", "2024-01-01"),
		CacheKey("gain", "1234", "2024-01-02"),
		CacheKey("history", "1234", "2024-01-01"),
	}
	for i, k := range cases {
		if k == base {
			t.Errorf("case %d: key %q collides with %q", i, k, base)
		}
	}
}

func TestCacheKeySanitizes(t *testing.T) {
	got := CacheKey("daily data", "acct/1", "2024-01-01")
	want := "daily_data:acct_1:2024_01_01"
	if got != want {
		t.Errorf("CacheKey = %q, want %q", got, want)
	}
}

func TestCacheKeyNoParams(t *testing.T) {
	if got := CacheKey("accounts"); got != "accounts" {
		t.Errorf("CacheKey = %q, want %q", got, "accounts")
	}
}

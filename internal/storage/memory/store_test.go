package memory

import (
	"context"
	"testing"
	"time"
)

func TestSetGet(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	if err := s.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || got != "v" {
		t.Errorf("Get = (%q, %v), want (%q, true)", got, ok, "v")
	}
}

func TestGetMissing(t *testing.T) {
	s := NewStore()

	_, ok, err := s.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("expected miss for absent key")
	}
}

func TestTTLExpiry(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	if err := s.Set(ctx, "k", "v", time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	_, ok, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("expected expired entry to read as a miss")
	}
}

func TestSetPermanentNeverExpires(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	if err := s.SetPermanent(ctx, "session", "tok"); err != nil {
		t.Fatalf("SetPermanent: %v", err)
	}

	s.mu.Lock()
	e := s.entries["session"]
	s.mu.Unlock()
	if !e.expiresAt.IsZero() {
		t.Errorf("permanent entry has expiry %v, want zero", e.expiresAt)
	}
}

func TestDelete(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	if err := s.SetPermanent(ctx, "k", "v"); err != nil {
		t.Fatalf("SetPermanent: %v", err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Error("expected miss after delete")
	}

	// Deleting an absent key is not an error.
	if err := s.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete absent key: %v", err)
	}
}

package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestWindowAllowsUpToMax(t *testing.T) {
	ctx := context.Background()
	limiter := NewWindow(time.Minute, 3)

	for i := 0; i < 3; i++ {
		dec, err := limiter.Allow(ctx, "client-a")
		if err != nil {
			t.Fatalf("allow %d: %v", i, err)
		}
		if !dec.Allowed {
			t.Fatalf("request %d should be allowed", i)
		}
		if dec.Remaining != 3-1-i {
			t.Fatalf("request %d: remaining = %d", i, dec.Remaining)
		}
	}

	dec, err := limiter.Allow(ctx, "client-a")
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if dec.Allowed || dec.Remaining != 0 {
		t.Fatalf("fourth request should be denied: %+v", dec)
	}
	if dec.ResetIn <= 0 || dec.ResetIn > time.Minute {
		t.Fatalf("reset hint out of range: %v", dec.ResetIn)
	}
}

func TestWindowKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	limiter := NewWindow(time.Minute, 1)

	if dec, _ := limiter.Allow(ctx, "client-a"); !dec.Allowed {
		t.Fatal("first client should be allowed")
	}
	if dec, _ := limiter.Allow(ctx, "client-a"); dec.Allowed {
		t.Fatal("first client should now be denied")
	}
	if dec, _ := limiter.Allow(ctx, "client-b"); !dec.Allowed {
		t.Fatal("second client must not share the first client's window")
	}
}

func TestWindowResetsAfterExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	limiter := NewWindowWithClock(time.Minute, 1, func() time.Time { return now })

	if dec, _ := limiter.Allow(ctx, "client-a"); !dec.Allowed {
		t.Fatal("first request should be allowed")
	}
	if dec, _ := limiter.Allow(ctx, "client-a"); dec.Allowed {
		t.Fatal("second request should be denied")
	}

	now = now.Add(time.Minute + time.Second)
	if dec, _ := limiter.Allow(ctx, "client-a"); !dec.Allowed {
		t.Fatal("request after window expiry should be allowed")
	}
}

func TestWindowSweepsExpiredRecords(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	limiter := NewWindowWithClock(time.Minute, 5, func() time.Time { return now })

	for _, key := range []string{"a", "b", "c"} {
		limiter.Allow(ctx, key)
	}
	if got := len(limiter.records); got != 3 {
		t.Fatalf("expected 3 records, got %d", got)
	}

	now = now.Add(2 * time.Minute)
	limiter.Allow(ctx, "d")
	if got := len(limiter.records); got != 1 {
		t.Fatalf("expired records not swept, got %d", got)
	}
}

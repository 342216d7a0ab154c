package wsproto

import (
	"testing"
	"time"
)

func TestRateBucketAllowsUpToMax(t *testing.T) {
	rb := newRateBucket(3, time.Hour)
	for i := 0; i < 3; i++ {
		if !rb.Allow() {
			t.Fatalf("call %d: expected allow", i)
		}
	}
	if rb.Allow() {
		t.Fatal("expected 4th call to be rejected")
	}
}

func TestRateBucketRefillsAfterWindow(t *testing.T) {
	rb := newRateBucket(1, time.Millisecond)
	if !rb.Allow() {
		t.Fatal("expected first call allowed")
	}
	if rb.Allow() {
		t.Fatal("expected second call rejected before refill")
	}
	time.Sleep(5 * time.Millisecond)
	if !rb.Allow() {
		t.Fatal("expected call allowed after window elapses")
	}
}

func TestRateBucketRemainingTracksTokens(t *testing.T) {
	rb := newRateBucket(2, time.Hour)
	if rb.Remaining() != 2 {
		t.Fatalf("remaining = %d, want 2", rb.Remaining())
	}
	rb.Allow()
	if rb.Remaining() != 1 {
		t.Fatalf("remaining = %d, want 1", rb.Remaining())
	}
}

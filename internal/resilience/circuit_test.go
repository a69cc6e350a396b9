package resilience

import (
	"testing"
	"time"
)

func TestBreakerOpensOnFailureRatio(t *testing.T) {
	b := NewBreaker(4, 0.5, time.Minute)
	for i := 0; i < 4; i++ {
		if !b.Allow() {
			t.Fatal("closed breaker must allow requests")
		}
		b.Report(false)
	}
	if b.Allow() {
		t.Fatal("breaker must be open after sustained failures")
	}
}

func TestBreakerHalfOpenRecovery(t *testing.T) {
	b := NewBreaker(2, 0.5, 10*time.Millisecond)
	b.Report(false)
	b.Report(false)
	if b.Allow() {
		t.Fatal("expected open breaker")
	}

	time.Sleep(15 * time.Millisecond)
	if !b.Allow() {
		t.Fatal("expected half-open probe after cool-off")
	}
	b.Report(true)
	if !b.Allow() {
		t.Fatal("successful probe must close the breaker")
	}
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	b := NewBreaker(2, 0.5, 10*time.Millisecond)
	b.Report(false)
	b.Report(false)
	time.Sleep(15 * time.Millisecond)
	if !b.Allow() {
		t.Fatal("expected probe")
	}
	b.Report(false)
	if b.Allow() {
		t.Fatal("failed probe must reopen the breaker")
	}
}

func TestBackoffGrowsExponentially(t *testing.T) {
	base := 100 * time.Millisecond
	if Backoff(base, 1, 0) != base {
		t.Fatal("first attempt uses the base backoff")
	}
	if Backoff(base, 3, 0) != 4*base {
		t.Fatal("third attempt quadruples the base backoff")
	}
}

package signal

import "testing"

func TestIPRateLimiter_BurstThenBlock(t *testing.T) {
	rl := NewIPRateLimiter(1) // 1 rps, burst 2

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first request should be allowed")
	}
	if !rl.Allow("10.0.0.1") {
		t.Fatal("second request within burst should be allowed")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("third immediate request should be blocked")
	}
}

func TestIPRateLimiter_PerIPIsolation(t *testing.T) {
	rl := NewIPRateLimiter(1)

	rl.Allow("10.0.0.1")
	rl.Allow("10.0.0.1")
	rl.Allow("10.0.0.1")

	if !rl.Allow("10.0.0.2") {
		t.Error("a different IP must not be throttled by the first one")
	}
}

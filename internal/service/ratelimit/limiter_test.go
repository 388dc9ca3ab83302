package ratelimit

import "testing"

func TestAllowConsumesTokens(t *testing.T) {
	l := New()

	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4", 3, 0) {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("1.2.3.4", 3, 0) {
		t.Fatal("bucket exhausted, request should be denied")
	}
}

func TestAllowKeysAreIndependent(t *testing.T) {
	l := New()

	if !l.Allow("a", 1, 0) {
		t.Fatal("first key should be allowed")
	}
	if l.Allow("a", 1, 0) {
		t.Fatal("first key should be exhausted")
	}
	if !l.Allow("b", 1, 0) {
		t.Fatal("second key has its own bucket")
	}
}

package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiter_FixedWindow(t *testing.T) {
	l := New(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("key") {
			t.Fatalf("call %d should be allowed", i+1)
		}
	}
	if l.Allow("key") {
		t.Error("4th call within the window should be denied")
	}
	if l.Remaining("key") != 0 {
		t.Errorf("Remaining: got %d, want 0", l.Remaining("key"))
	}
}

func TestLimiter_WindowExpiry(t *testing.T) {
	l := New(1, 20*time.Millisecond)

	if !l.Allow("key") {
		t.Fatal("first call should be allowed")
	}
	if l.Allow("key") {
		t.Fatal("second call within window should be denied")
	}

	time.Sleep(30 * time.Millisecond)

	if !l.Allow("key") {
		t.Error("call after window elapsed should reset the counter and be allowed")
	}
}

func TestLimiter_KeysIndependent(t *testing.T) {
	l := New(1, time.Minute)

	if !l.Allow("a") {
		t.Fatal("first call for a should pass")
	}
	if !l.Allow("b") {
		t.Error("b must not be affected by a's window")
	}
}

func TestLimiter_Reset(t *testing.T) {
	l := New(1, time.Minute)
	l.Allow("key")
	if l.Allow("key") {
		t.Fatal("should be limited")
	}
	l.Reset("key")
	if !l.Allow("key") {
		t.Error("Reset should clear the window")
	}
}

func TestLimiter_RetryAfter(t *testing.T) {
	l := New(1, time.Minute)
	if d := l.RetryAfter("key"); d != 0 {
		t.Errorf("unknown key RetryAfter: got %v, want 0", d)
	}
	l.Allow("key")
	if d := l.RetryAfter("key"); d <= 0 || d > time.Minute {
		t.Errorf("limited key RetryAfter: got %v", d)
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	if ip := ClientIP(r); ip != "10.0.0.1" {
		t.Errorf("RemoteAddr: got %q", ip)
	}

	r.Header.Set("X-Real-IP", "10.0.0.2")
	if ip := ClientIP(r); ip != "10.0.0.2" {
		t.Errorf("X-Real-IP: got %q", ip)
	}

	r.Header.Set("X-Forwarded-For", "10.0.0.3, 10.0.0.4")
	if ip := ClientIP(r); ip != "10.0.0.3" {
		t.Errorf("X-Forwarded-For: got %q", ip)
	}
}

package ratelimit

import (
	"testing"
	"time"
)

func TestLoginLimiter_LockoutAfterMaxFailures(t *testing.T) {
	ll := NewLoginLimiterWithConfig(100, time.Minute, 5, 15*time.Minute)

	for i := 0; i < 5; i++ {
		d := ll.Check("1.2.3.4", "student@test.edu")
		if !d.Allowed {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
		ll.RecordFailure("student@test.edu")
	}

	d := ll.Check("1.2.3.4", "student@test.edu")
	if d.Allowed {
		t.Fatal("6th attempt should be locked out")
	}
	if d.RetryAfter <= 0 || d.RetryAfter > 15*time.Minute {
		t.Errorf("RetryAfter: got %v, want (0, 15m]", d.RetryAfter)
	}
}

func TestLoginLimiter_ResetRestoresAttempts(t *testing.T) {
	ll := NewLoginLimiterWithConfig(100, time.Minute, 5, 15*time.Minute)

	ll.RecordFailure("student@test.edu")
	ll.RecordFailure("student@test.edu")

	d := ll.Check("1.2.3.4", "student@test.edu")
	if d.Remaining != 3 {
		t.Errorf("Remaining after 2 failures: got %d, want 3", d.Remaining)
	}

	ll.ResetLoginAttempts("student@test.edu")

	d = ll.Check("1.2.3.4", "student@test.edu")
	if !d.Allowed || d.Remaining != 5 {
		t.Errorf("after reset: got allowed=%v remaining=%d, want allowed=true remaining=5", d.Allowed, d.Remaining)
	}
}

func TestLoginLimiter_LockoutExpires(t *testing.T) {
	ll := NewLoginLimiterWithConfig(100, time.Minute, 2, 20*time.Millisecond)

	ll.RecordFailure("a@test.edu")
	ll.RecordFailure("a@test.edu")
	if ll.Check("", "a@test.edu").Allowed {
		t.Fatal("should be locked")
	}

	time.Sleep(30 * time.Millisecond)

	d := ll.Check("", "a@test.edu")
	if !d.Allowed || d.Remaining != 2 {
		t.Errorf("after lockout elapsed: got %+v", d)
	}
}

func TestLoginLimiter_EmailsIndependent(t *testing.T) {
	ll := NewLoginLimiterWithConfig(100, time.Minute, 2, time.Minute)

	ll.RecordFailure("a@test.edu")
	ll.RecordFailure("a@test.edu")
	if ll.Check("", "a@test.edu").Allowed {
		t.Fatal("a should be locked")
	}
	if !ll.Check("", "b@test.edu").Allowed {
		t.Error("b must not be locked by a's failures")
	}
}

func TestLoginLimiter_EmailCaseInsensitive(t *testing.T) {
	ll := NewLoginLimiterWithConfig(100, time.Minute, 2, time.Minute)

	ll.RecordFailure("Student@Test.edu")
	ll.RecordFailure("student@test.edu ")
	if ll.Check("", "STUDENT@TEST.EDU").Allowed {
		t.Error("case/whitespace variants must share one counter")
	}
}

func TestLoginLimiter_IPWindow(t *testing.T) {
	ll := NewLoginLimiterWithConfig(2, time.Minute, 5, time.Minute)

	if !ll.Check("9.9.9.9", "x@test.edu").Allowed {
		t.Fatal("first IP attempt should pass")
	}
	if !ll.Check("9.9.9.9", "y@test.edu").Allowed {
		t.Fatal("second IP attempt should pass")
	}
	if ll.Check("9.9.9.9", "z@test.edu").Allowed {
		t.Error("third attempt from same IP within window should be denied")
	}
}

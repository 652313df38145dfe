package normalize

import "testing"

func TestName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"  Ada   Lovelace ", "Ada Lovelace"},
		{"one", "one"},
		{"   ", ""},
		{"a\tb\nc", "a b c"},
	}
	for _, c := range cases {
		if got := Name(c.in); got != c.want {
			t.Errorf("Name(%q): got %q, want %q", c.in, got, c.want)
		}
	}
}

func TestEmail(t *testing.T) {
	if got := Email("  Student@Uni.EDU "); got != "student@uni.edu" {
		t.Errorf("got %q", got)
	}
}

func TestText(t *testing.T) {
	if got := Text("  keep internal  spacing  "); got != "keep internal  spacing" {
		t.Errorf("got %q", got)
	}
}

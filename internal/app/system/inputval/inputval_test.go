package inputval

import (
	"strings"
	"testing"
)

type proposeInput struct {
	Title   string   `validate:"required,max=200" label:"Title"`
	Problem string   `validate:"required" label:"Problem statement"`
	Emails  []string `validate:"required,min=1,dive,email" label:"Team emails"`
}

func TestValidate_OK(t *testing.T) {
	res := Validate(proposeInput{
		Title:   "Smart Campus Navigation",
		Problem: "Students get lost.",
		Emails:  []string{"a@uni.edu"},
	})
	if res.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.All())
	}
	if res.First() != "" {
		t.Errorf("First on clean result: got %q", res.First())
	}
}

func TestValidate_RequiredUsesLabel(t *testing.T) {
	res := Validate(proposeInput{Emails: []string{"a@uni.edu"}})
	if !res.HasErrors() {
		t.Fatal("expected errors")
	}
	if !strings.Contains(res.First(), "Title") {
		t.Errorf("message should use the label tag: %q", res.First())
	}
	if !strings.Contains(res.First(), "required") {
		t.Errorf("message should mention required: %q", res.First())
	}
}

func TestValidate_MaxLength(t *testing.T) {
	res := Validate(proposeInput{
		Title:   strings.Repeat("x", 201),
		Problem: "p",
		Emails:  []string{"a@uni.edu"},
	})
	if !res.HasErrors() {
		t.Fatal("expected max-length error")
	}
	if !strings.Contains(res.First(), "200") {
		t.Errorf("message should include the limit: %q", res.First())
	}
}

func TestValidate_Email(t *testing.T) {
	res := Validate(proposeInput{
		Title:   "t",
		Problem: "p",
		Emails:  []string{"not-an-email"},
	})
	if !res.HasErrors() {
		t.Fatal("expected email error")
	}
}

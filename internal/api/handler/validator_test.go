package handler

import (
	"strings"
	"testing"
)

func TestValidator_Messages(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&createProposalRequest{Description: "d", LimitDate: "2026-12-31"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "title is required") {
		t.Fatalf("missing title message in %q", msg)
	}
	if !strings.Contains(msg, "limit_date must be a date formatted dd/MM/yyyy") {
		t.Fatalf("missing date message in %q", msg)
	}
}

func TestValidator_Document(t *testing.T) {
	v := NewValidator()

	for doc, valid := range map[string]bool{
		"49359161": true,
		"3456787":  true,
		"49359162": false,
		"":         false,
		"abc":      false,
	} {
		err := v.Validate(&documentParam{Document: doc})
		if (err == nil) != valid {
			t.Fatalf("document %q: expected valid=%v, got %v", doc, valid, err)
		}
	}
}

package core

import (
	"errors"
	"testing"
)

func TestParseKind(t *testing.T) {
	cases := []struct {
		in   string
		kind Kind
		ok   bool
	}{
		{"income", KindIncome, true},
		{"expense", KindExpense, true},
		{"Income", "", false},
		{"transfer", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseKind(tc.in)
		if tc.ok {
			if err != nil || got != tc.kind {
				t.Fatalf("%q expected %q, got %q (err=%v)", tc.in, tc.kind, got, err)
			}
		} else {
			if !errors.Is(err, ErrInvalidKind) {
				t.Fatalf("%q expected ErrInvalidKind, got %v", tc.in, err)
			}
		}
	}
}

func TestKindLabel(t *testing.T) {
	if KindIncome.Label() != "Income" {
		t.Fatalf("income label = %q", KindIncome.Label())
	}
	if KindExpense.Label() != "Expense" {
		t.Fatalf("expense label = %q", KindExpense.Label())
	}
}

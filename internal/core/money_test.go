package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"0.01", 1, true},
		{"0", 0, true},
		{"-1", -100, true},
		{"-0.5", -50, true},
		{"+2.50", 250, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{".5", 50, true},
		{"12345678.99", 1234567899, true},
		{"123456789", 0, false}, // exceeds decimal(10,2)
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
		{"-", 0, false},
		{".", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.Cents != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got.Cents, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		out   string
	}{
		{10000, "100.00"},
		{123, "1.23"},
		{1, "0.01"},
		{0, "0.00"},
		{-50, "-0.50"},
		{-10050, "-100.50"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.out {
			t.Fatalf("%d cents expected %q, got %q", tc.cents, tc.out, got)
		}
	}
}

func TestMoneySub(t *testing.T) {
	income := Money{Cents: 10000}
	expense := Money{Cents: 4000}
	if got := income.Sub(expense); got.Cents != 6000 {
		t.Fatalf("expected 6000, got %d", got.Cents)
	}
	if got := expense.Sub(income); got.Cents != -6000 {
		t.Fatalf("expected -6000, got %d", got.Cents)
	}
}

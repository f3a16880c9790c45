package editor

import (
	"testing"
	"time"
)

func TestGenerateNumbers(t *testing.T) {
	now := time.Date(2026, time.March, 7, 15, 4, 5, 0, time.UTC)

	ids := GenerateNumbers(now, 1234)
	if ids.OrderNo != "ORD-260307-1234" {
		t.Errorf("order no = %q, want ORD-260307-1234", ids.OrderNo)
	}
	if ids.BillNo != "BILL-260307-1234" {
		t.Errorf("bill no = %q, want BILL-260307-1234", ids.BillNo)
	}

	// A small suffix is zero-padded to four digits only by the caller's
	// contract; RandomSuffix never produces one, but the format must hold.
	ids = GenerateNumbers(now, 7)
	if ids.OrderNo != "ORD-260307-0007" || ids.BillNo != "BILL-260307-0007" {
		t.Errorf("padded numbers = %q / %q", ids.OrderNo, ids.BillNo)
	}
}

func TestRandomSuffixRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		s := RandomSuffix()
		if s < 1000 || s > 9999 {
			t.Fatalf("suffix %d outside [1000, 9999]", s)
		}
	}
}

func TestBalance(t *testing.T) {
	tests := []struct {
		total, advance, want string
	}{
		{"1000", "300", "700.00"},
		{"1000.50", "0.25", "1000.25"},
		{"", "", "0.00"},
		{"abc", "300", "-300.00"},
		{"500", "junk", "500.00"},
		{"1000rs", "200", "-200.00"}, // partially numeric counts as 0
		{" 250 ", " 50 ", "200.00"},
		{"100", "250", "-150.00"},
	}
	for _, tt := range tests {
		if got := Balance(tt.total, tt.advance); got != tt.want {
			t.Errorf("Balance(%q, %q) = %q, want %q", tt.total, tt.advance, got, tt.want)
		}
	}
}

package models

import "testing"

func TestISODate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2026-03-07T15:04:05Z", "2026-03-07"},
		{"2026-03-07T15:04:05", "2026-03-07"},
		{"2026-03-07", "2026-03-07"},
		{"", ""},
		{"  ", ""},
		{"07/03/2026", ""},
	}
	for _, tt := range tests {
		if got := ISODate(tt.in); got != tt.want {
			t.Errorf("ISODate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHumanDate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2026-03-07", "07/03/2026"},
		{"", "N/A"},
		{"   ", "N/A"},
		{"not a date", "not a date"},
	}
	for _, tt := range tests {
		if got := HumanDate(tt.in); got != tt.want {
			t.Errorf("HumanDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOrderItems(t *testing.T) {
	ord := Order{
		Shirt:   "2",
		Trouser: "  ",
		Suit:    "1 three-piece",
	}

	items := ord.Items()
	if len(items) != 2 {
		t.Fatalf("items = %v, want shirt and suit only", items)
	}
	if items[0].Category != "Shirt" || items[0].Label != "2" {
		t.Errorf("first item = %+v", items[0])
	}
	if items[1].Category != "Suit" || items[1].Label != "1 three-piece" {
		t.Errorf("second item = %+v", items[1])
	}

	if got := (Order{}).Items(); len(got) != 0 {
		t.Errorf("empty order items = %v", got)
	}
}

func TestOrderCompleted(t *testing.T) {
	tests := []struct {
		balance string
		want    bool
	}{
		{"PAID", true},
		{"0", true},
		{"150.00", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := (Order{Balance: tt.balance}).Completed(); got != tt.want {
			t.Errorf("Completed with balance %q = %v, want %v", tt.balance, got, tt.want)
		}
	}
}

func TestBalanceLabel(t *testing.T) {
	tests := []struct {
		balance, want string
	}{
		{"0", "PAID"},
		{"", "N/A"},
		{"150.00", "150.00"},
		{"PAID", "PAID"},
	}
	for _, tt := range tests {
		if got := (Order{Balance: tt.balance}).BalanceLabel(); got != tt.want {
			t.Errorf("BalanceLabel with %q = %q, want %q", tt.balance, got, tt.want)
		}
	}
}

func TestOptionalText(t *testing.T) {
	if OptionalText("") != nil {
		t.Error("blank must map to nil")
	}
	if p := OptionalText("x"); p == nil || *p != "x" {
		t.Errorf("OptionalText(x) = %v", p)
	}
}

package models

import (
	"strings"
	"time"
)

// Customer is a tailoring customer as returned by the backend listing
// endpoint, with its orders embedded. Orders never outlive their customer in
// this view; both are materialized fresh on every successful list fetch.
type Customer struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Mobile  string  `json:"mobile"`
	Address string  `json:"address"`
	DOB     string  `json:"dob"` // optional, backend date text
	Orders  []Order `json:"orders"`
}

// Order is a single tailoring order. Monetary fields and dates are kept as
// backend-formatted text, not numeric or time types: the dashboard passes
// them through and only ever derives balance from total/advance.
type Order struct {
	ID           int64  `json:"id"`
	CustomerID   int64  `json:"customerId,omitempty"`
	Date         string `json:"date"`
	OrderNo      string `json:"orderNo"`
	BillNo       string `json:"billNo"`
	Tailoring    string `json:"tailoring"`
	TotalAmt     string `json:"totalAmt"`
	Advance      string `json:"advance"`
	Balance      string `json:"balance"`
	Fabric       string `json:"fabric"`
	Shirt        string `json:"shirt"`
	Kurta        string `json:"kurta"`
	Trouser      string `json:"trouser"`
	Suit         string `json:"suit"`
	Bandi        string `json:"bandi"`
	Jodhpuri     string `json:"jodhpuri"`
	Sherwani     string `json:"sherwani"`
	Other        string `json:"other"`
	TrialDate    string `json:"trialDate"`
	DeliveryDate string `json:"deliveryDate"`
	Remark       string `json:"remark"`
	Rating       string `json:"rating"`
	Reason       string `json:"reason"`
	Report       string `json:"report"`
}

// CustomerPage is the response shape of GET api/customers/with-orders.
type CustomerPage struct {
	Result        []Customer `json:"result"`
	TotalPages    int        `json:"totalPages"`
	TotalElements int        `json:"totalElements"`
}

// GarmentItem is one named garment-category entry on an order, shown as a
// badge in the orders view when its label is non-blank.
type GarmentItem struct {
	Category string
	Label    string
}

// Items returns the non-blank garment-category entries of an order, in the
// fixed category order used throughout the dashboard.
func (o Order) Items() []GarmentItem {
	pairs := []GarmentItem{
		{"Shirt", o.Shirt},
		{"Kurta", o.Kurta},
		{"Trouser", o.Trouser},
		{"Suit", o.Suit},
		{"Bandi", o.Bandi},
		{"Jodhpuri", o.Jodhpuri},
		{"Sherwani", o.Sherwani},
		{"Other", o.Other},
	}
	items := make([]GarmentItem, 0, len(pairs))
	for _, p := range pairs {
		if strings.TrimSpace(p.Label) != "" {
			items = append(items, p)
		}
	}
	return items
}

// Completed reports whether an order is settled: the backend stores balance
// as text, and both "PAID" and "0" mean nothing is outstanding.
func (o Order) Completed() bool {
	return o.Balance == "PAID" || o.Balance == "0"
}

// BalanceLabel renders the balance for display; a zero balance reads "PAID".
func (o Order) BalanceLabel() string {
	switch o.Balance {
	case "0":
		return "PAID"
	case "":
		return "N/A"
	default:
		return o.Balance
	}
}

// dateLayouts are the backend date formats we accept, most specific first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ISODate reformats a backend date to YYYY-MM-DD for calendar inputs.
// Absent or unparseable values leave the field blank.
func ISODate(s string) string {
	t, ok := parseDate(s)
	if !ok {
		return ""
	}
	return t.Format("2006-01-02")
}

// HumanDate formats a backend date for display, "N/A" when absent. An
// unparseable value is shown as-is rather than hidden.
func HumanDate(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	t, ok := parseDate(s)
	if !ok {
		return s
	}
	return t.Format("02/01/2006")
}

package editor

import (
	"testing"

	"github.com/dan/atelier/internal/models"
)

func TestOrderFormFrom(t *testing.T) {
	ord := models.Order{
		ID:           42,
		Date:         "2026-02-01T00:00:00",
		OrderNo:      "ORD-260201-4321",
		BillNo:       "BILL-260201-4321",
		Tailoring:    "Yes",
		TotalAmt:     "2000",
		Advance:      "500",
		Balance:      "1500.00",
		Shirt:        "2",
		TrialDate:    "2026-02-10",
		DeliveryDate: "not a date",
		Remark:       "silk lining",
	}

	f := OrderFormFrom(ord)

	if f.ID != 42 {
		t.Errorf("id = %d, want 42", f.ID)
	}
	if f.Date != "2026-02-01" {
		t.Errorf("date = %q, want the calendar form 2026-02-01", f.Date)
	}
	if f.TrialDate != "2026-02-10" {
		t.Errorf("trial date = %q, want 2026-02-10", f.TrialDate)
	}
	if f.DeliveryDate != "" {
		t.Errorf("delivery date = %q, want blank for an unparseable value", f.DeliveryDate)
	}
	if f.Shirt != "2" || f.Remark != "silk lining" {
		t.Errorf("fields not carried verbatim: shirt=%q remark=%q", f.Shirt, f.Remark)
	}
}

func TestOrderFormPayload(t *testing.T) {
	f := OrderForm{
		ID:       42,
		Date:     " 2026-02-01 ",
		OrderNo:  " ORD-260201-4321 ",
		BillNo:   "BILL-260201-4321",
		TotalAmt: "2000",
		Advance:  "750",
		Balance:  " 1250.00 ",
		Remark:   "  silk lining  ",
	}

	p := f.Payload()

	if p.Date != "2026-02-01" || p.OrderNo != "ORD-260201-4321" || p.Remark != "silk lining" {
		t.Errorf("fields not trimmed: %+v", p)
	}
	if p.Balance != "1250.00" {
		t.Errorf("balance = %q, want the entered value trimmed", p.Balance)
	}
}

func TestOrderFormUnchangedSaveRoundTrip(t *testing.T) {
	// Saving an untouched edit form must produce the record's own field
	// values. Balance in particular is carried verbatim: settled orders
	// store "PAID", which no total/advance derivation would reproduce.
	orders := []models.Order{
		{
			ID:           42,
			Date:         "2026-02-01",
			OrderNo:      "ORD-260201-4321",
			BillNo:       "BILL-260201-4321",
			Tailoring:    "Yes",
			TotalAmt:     "2000",
			Advance:      "500",
			Balance:      "PAID",
			Fabric:       "linen",
			Shirt:        "2",
			TrialDate:    "2026-02-10",
			DeliveryDate: "2026-02-20",
			Remark:       "silk lining",
		},
		{
			ID:       43,
			Date:     "2026-02-01",
			OrderNo:  "ORD-260201-8765",
			BillNo:   "BILL-260201-8765",
			TotalAmt: "2000",
			Advance:  "500",
			Balance:  "1500",
		},
	}

	for _, ord := range orders {
		p := OrderFormFrom(ord).Payload()

		want := models.OrderPayload{
			Date:         ord.Date,
			OrderNo:      ord.OrderNo,
			BillNo:       ord.BillNo,
			Tailoring:    ord.Tailoring,
			TotalAmt:     ord.TotalAmt,
			Advance:      ord.Advance,
			Balance:      ord.Balance,
			Fabric:       ord.Fabric,
			Shirt:        ord.Shirt,
			TrialDate:    ord.TrialDate,
			DeliveryDate: ord.DeliveryDate,
			Remark:       ord.Remark,
		}
		if p != want {
			t.Errorf("unchanged save of order %d produced %+v, want %+v", ord.ID, p, want)
		}
	}
}

func TestCustomerFormRoundTrip(t *testing.T) {
	cust := models.Customer{
		ID:      7,
		Name:    "Arjun Mehta",
		Mobile:  "9876543210",
		Address: "14 MG Road",
		DOB:     "1990-06-15T00:00:00",
	}

	f := CustomerFormFrom(cust)
	if f.DOB != "1990-06-15" {
		t.Errorf("dob = %q, want the calendar form", f.DOB)
	}

	f.Name = "  Arjun Mehta  "
	p := f.Payload()
	if p.Name != "Arjun Mehta" || p.Mobile != "9876543210" || p.Address != "14 MG Road" || p.DOB != "1990-06-15" {
		t.Errorf("payload = %+v", p)
	}
}

package editor

import (
	"strings"

	"github.com/dan/atelier/internal/models"
)

// OrderForm maps the order edit form's fields 1:1 to an order's editable
// fields.
type OrderForm struct {
	ID           int64
	Date         string
	OrderNo      string
	BillNo       string
	Tailoring    string
	TotalAmt     string
	Advance      string
	Balance      string
	Fabric       string
	Shirt        string
	Kurta        string
	Trouser      string
	Suit         string
	Bandi        string
	Jodhpuri     string
	Sherwani     string
	Other        string
	TrialDate    string
	DeliveryDate string
	Remark       string
}

// OrderFormFrom populates the form from an order record. Date fields are
// reformatted for calendar inputs and left blank when absent; everything
// else is carried verbatim.
func OrderFormFrom(o models.Order) OrderForm {
	return OrderForm{
		ID:           o.ID,
		Date:         models.ISODate(o.Date),
		OrderNo:      o.OrderNo,
		BillNo:       o.BillNo,
		Tailoring:    o.Tailoring,
		TotalAmt:     o.TotalAmt,
		Advance:      o.Advance,
		Balance:      o.Balance,
		Fabric:       o.Fabric,
		Shirt:        o.Shirt,
		Kurta:        o.Kurta,
		Trouser:      o.Trouser,
		Suit:         o.Suit,
		Bandi:        o.Bandi,
		Jodhpuri:     o.Jodhpuri,
		Sherwani:     o.Sherwani,
		Other:        o.Other,
		TrialDate:    models.ISODate(o.TrialDate),
		DeliveryDate: models.ISODate(o.DeliveryDate),
		Remark:       o.Remark,
	}
}

// Payload assembles the update body with every field trimmed. Balance is
// carried as entered, not derived: existing records hold values like "PAID"
// that no derivation would reproduce.
func (f OrderForm) Payload() models.OrderPayload {
	return models.OrderPayload{
		Date:         strings.TrimSpace(f.Date),
		OrderNo:      strings.TrimSpace(f.OrderNo),
		BillNo:       strings.TrimSpace(f.BillNo),
		Tailoring:    strings.TrimSpace(f.Tailoring),
		TotalAmt:     strings.TrimSpace(f.TotalAmt),
		Advance:      strings.TrimSpace(f.Advance),
		Balance:      strings.TrimSpace(f.Balance),
		Fabric:       strings.TrimSpace(f.Fabric),
		Shirt:        strings.TrimSpace(f.Shirt),
		Kurta:        strings.TrimSpace(f.Kurta),
		Trouser:      strings.TrimSpace(f.Trouser),
		Suit:         strings.TrimSpace(f.Suit),
		Bandi:        strings.TrimSpace(f.Bandi),
		Jodhpuri:     strings.TrimSpace(f.Jodhpuri),
		Sherwani:     strings.TrimSpace(f.Sherwani),
		Other:        strings.TrimSpace(f.Other),
		TrialDate:    strings.TrimSpace(f.TrialDate),
		DeliveryDate: strings.TrimSpace(f.DeliveryDate),
		Remark:       strings.TrimSpace(f.Remark),
	}
}

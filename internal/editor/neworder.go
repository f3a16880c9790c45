package editor

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dan/atelier/internal/models"
)

var validate = validator.New()

// ValidationError reports required fields missing from a form, caught
// client-side before any request is sent.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "required fields missing: " + strings.Join(e.Fields, ", ")
}

// NewOrderForm is the new-order form: customer identity fields plus a full
// order. Identifiers are generated when the form opens; balance is derived
// from total and advance, never entered directly.
type NewOrderForm struct {
	Name         string `validate:"required"`
	Mobile       string `validate:"required"`
	Address      string
	DOB          string
	Date         string
	OrderNo      string `validate:"required"`
	BillNo       string `validate:"required"`
	Tailoring    string
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
	Rating       string
	TotalAmt     string
	Advance      string
	Remark       string
	Reason       string
	Report       string
}

// NewOrder seeds a fresh form: today's date, newly generated order and bill
// numbers, and the standing defaults. A fresh form gets fresh identifiers
// every time it is requested.
func NewOrder(now time.Time) NewOrderForm {
	ids := GenerateNumbers(now, RandomSuffix())
	return NewOrderForm{
		Date:      now.Format("2006-01-02"),
		OrderNo:   ids.OrderNo,
		BillNo:    ids.BillNo,
		Tailoring: "Yes",
		Rating:    "5",
	}
}

// Balance returns the derived outstanding balance for the current total and
// advance values.
func (f NewOrderForm) Balance() string {
	return Balance(f.TotalAmt, f.Advance)
}

// Validate enforces the client-side required fields: customer name and
// mobile, order number and bill number.
func (f NewOrderForm) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, strings.ToLower(fe.Field()))
		}
		return &ValidationError{Fields: fields}
	}
	return err
}

// Payload assembles the create body. Optional fields map blank to null, the
// rating falls back to its default, and the balance is recomputed from total
// and advance so the derivation invariant always holds.
func (f NewOrderForm) Payload() models.NewOrderPayload {
	rating := f.Rating
	if rating == "" {
		rating = "5"
	}
	return models.NewOrderPayload{
		Name:         f.Name,
		Mobile:       f.Mobile,
		Address:      models.OptionalText(f.Address),
		DOB:          models.OptionalText(f.DOB),
		Date:         f.Date,
		OrderNo:      f.OrderNo,
		BillNo:       f.BillNo,
		Tailoring:    f.Tailoring,
		TotalAmt:     f.TotalAmt,
		Advance:      f.Advance,
		Balance:      f.Balance(),
		Fabric:       f.Fabric,
		Shirt:        f.Shirt,
		Kurta:        f.Kurta,
		Trouser:      f.Trouser,
		Suit:         f.Suit,
		Bandi:        f.Bandi,
		Jodhpuri:     f.Jodhpuri,
		Sherwani:     f.Sherwani,
		Other:        f.Other,
		TrialDate:    models.OptionalText(f.TrialDate),
		DeliveryDate: models.OptionalText(f.DeliveryDate),
		Remark:       models.OptionalText(f.Remark),
		Rating:       rating,
		Reason:       models.OptionalText(f.Reason),
		Report:       models.OptionalText(f.Report),
	}
}

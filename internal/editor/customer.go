package editor

import (
	"strings"

	"github.com/dan/atelier/internal/models"
)

// CustomerForm maps the customer edit form's fields 1:1 to a customer
// record's editable fields.
type CustomerForm struct {
	ID      int64
	Name    string
	Mobile  string
	Address string
	DOB     string
}

// CustomerFormFrom populates the form from a record; the date of birth is
// reformatted for a calendar input and left blank when absent.
func CustomerFormFrom(c models.Customer) CustomerForm {
	return CustomerForm{
		ID:      c.ID,
		Name:    c.Name,
		Mobile:  c.Mobile,
		Address: c.Address,
		DOB:     models.ISODate(c.DOB),
	}
}

// Payload assembles the update body. Every text field is trimmed; the key
// set matches the record's editable fields exactly.
func (f CustomerForm) Payload() models.CustomerPayload {
	return models.CustomerPayload{
		Name:    strings.TrimSpace(f.Name),
		Mobile:  strings.TrimSpace(f.Mobile),
		Address: strings.TrimSpace(f.Address),
		DOB:     strings.TrimSpace(f.DOB),
	}
}

package models

// CustomerPayload is the body of PUT api/customers/{id}. The key set matches
// the customer's editable fields exactly; all values are pre-trimmed by the
// editor.
type CustomerPayload struct {
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Address string `json:"address"`
	DOB     string `json:"dob"`
}

// OrderPayload is the body of PUT api/customers/orders/{id}: the 19 editable
// order fields, pre-trimmed.
type OrderPayload struct {
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
}

// NewOrderPayload is the body of POST api/customers/orders: customer identity
// fields plus the full order. Optional fields marshal as null when blank,
// which is what the backend expects for "not provided".
type NewOrderPayload struct {
	Name         string  `json:"name"`
	Mobile       string  `json:"mobile"`
	Address      *string `json:"address"`
	DOB          *string `json:"dob"`
	Date         string  `json:"date"`
	OrderNo      string  `json:"orderNo"`
	BillNo       string  `json:"billNo"`
	Tailoring    string  `json:"tailoring"`
	TotalAmt     string  `json:"totalAmt"`
	Advance      string  `json:"advance"`
	Balance      string  `json:"balance"`
	Fabric       string  `json:"fabric"`
	Shirt        string  `json:"shirt"`
	Kurta        string  `json:"kurta"`
	Trouser      string  `json:"trouser"`
	Suit         string  `json:"suit"`
	Bandi        string  `json:"bandi"`
	Jodhpuri     string  `json:"jodhpuri"`
	Sherwani     string  `json:"sherwani"`
	Other        string  `json:"other"`
	TrialDate    *string `json:"trialDate"`
	DeliveryDate *string `json:"deliveryDate"`
	Remark       *string `json:"remark"`
	Rating       string  `json:"rating"`
	Reason       *string `json:"reason"`
	Report       *string `json:"report"`
}

// OptionalText maps a blank string to nil for payload fields the backend
// wants as null rather than "".
func OptionalText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

package editor

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

// OrderNumbers are the client-generated identifiers assigned when the
// new-order form opens. Both share the same 4-digit suffix.
type OrderNumbers struct {
	OrderNo string
	BillNo  string
}

// RandomSuffix returns a 4-digit pseudo-random identifier suffix in
// [1000, 9999].
func RandomSuffix() int {
	return 1000 + rand.IntN(9000)
}

// GenerateNumbers derives ORD-YYMMDD-RRRR / BILL-YYMMDD-RRRR from the given
// date and suffix.
func GenerateNumbers(now time.Time, suffix int) OrderNumbers {
	stamp := now.Format("060102")
	return OrderNumbers{
		OrderNo: fmt.Sprintf("ORD-%s-%04d", stamp, suffix),
		BillNo:  fmt.Sprintf("BILL-%s-%04d", stamp, suffix),
	}
}

// Balance derives the outstanding balance from the total and advance amounts,
// formatted to two decimal places. Non-numeric or blank input counts as zero.
// This is the only derived-field computation in the dashboard.
func Balance(total, advance string) string {
	return strconv.FormatFloat(amount(total)-amount(advance), 'f', 2, 64)
}

func amount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

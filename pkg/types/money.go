package types

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatMoney renders d as dollars with thousands separators and two
// decimals, e.g. "$125,000.00".
func FormatMoney(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	out := "$" + fixed
	if n, err := strconv.ParseInt(whole, 10, 64); err == nil {
		out = "$" + humanize.Comma(n) + "." + frac
	}
	if d.IsNegative() {
		out = "-" + out
	}
	return out
}

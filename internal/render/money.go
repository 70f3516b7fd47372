package render

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the display currency for all amounts.
const Currency = money.USD

// FormatMoney rounds amount half away from zero to the currency's minor
// unit and formats it with its symbol, e.g. "$69.98".
func FormatMoney(amount float64) string {
	cur := money.GetCurrency(Currency)
	factor, _ := decimal.NewFromInt(10).PowInt32(int32(cur.Fraction))
	minor := decimal.NewFromFloat(amount).Round(int32(cur.Fraction)).Mul(factor)
	return money.New(minor.IntPart(), Currency).Display()
}

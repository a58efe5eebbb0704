package fiber

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MoneyFormatter renders amounts for display in a currency and locale,
// e.g. IDR in id-ID.
type MoneyFormatter struct {
	unit    currency.Unit
	printer *message.Printer
}

func NewMoneyFormatter(cur, locale string) (*MoneyFormatter, error) {
	unit, err := currency.ParseISO(cur)
	if err != nil {
		return nil, fmt.Errorf("parse currency %q: %w", cur, err)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	return &MoneyFormatter{unit: unit, printer: message.NewPrinter(tag)}, nil
}

// Format is display only; the exact value stays in the decimal fields.
func (f *MoneyFormatter) Format(d decimal.Decimal) string {
	return f.printer.Sprint(currency.Symbol(f.unit.Amount(d.InexactFloat64())))
}

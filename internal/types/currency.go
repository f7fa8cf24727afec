package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency is the symbol a budget is kept in.
//
// swagger:enum Currency
type Currency string

const (
	CurrencyKrone  Currency = "kr"
	CurrencyDollar Currency = "$"
	CurrencyEuro   Currency = "€"

	DefaultCurrency = CurrencyEuro
)

// ErrInvalidCurrency is returned for currencies outside of the supported set.
var ErrInvalidCurrency = errors.New("the currency must be one of kr, $, €")

// Currencies lists all supported currencies.
var Currencies = []Currency{CurrencyKrone, CurrencyDollar, CurrencyEuro}

// aliases maps ISO codes and the display labels of the currency picker
// to the symbol that is stored.
var aliases = map[string]Currency{
	"kr":       CurrencyKrone,
	"dkk":      CurrencyKrone,
	"dkk (kr)": CurrencyKrone,
	"$":        CurrencyDollar,
	"usd":      CurrencyDollar,
	"usd ($)":  CurrencyDollar,
	"€":        CurrencyEuro,
	"eur":      CurrencyEuro,
	"eur (€)":  CurrencyEuro,
}

// ParseCurrency normalizes s to a supported Currency.
// The empty string resolves to DefaultCurrency.
func ParseCurrency(s string) (Currency, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultCurrency, nil
	}

	c, ok := aliases[strings.ToLower(s)]
	if !ok {
		return "", fmt.Errorf("%w, got '%s'", ErrInvalidCurrency, s)
	}

	return c, nil
}

// Valid reports whether c is one of the supported currencies.
func (c Currency) Valid() bool {
	for _, s := range Currencies {
		if c == s {
			return true
		}
	}
	return false
}

var printer = message.NewPrinter(language.English)

// maxGrouped is the bound below which the integer part fits an int64.
var maxGrouped = decimal.New(1, 18)

// Format renders amount with the currency symbol as prefix, thousands
// separators and two decimals, e.g. "€1,234.50".
func (c Currency) Format(amount decimal.Decimal) string {
	amount = amount.Round(2)

	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	whole, fraction, _ := strings.Cut(amount.StringFixed(2), ".")
	if amount.LessThan(maxGrouped) {
		whole = printer.Sprintf("%d", amount.IntPart())
	}

	return sign + string(c) + whole + "." + fraction
}

package service

import (
	"log/slog"
	"strings"

	. "cediflow/common/models"

	"github.com/shopspring/decimal"
)

// Conversion arithmetic is pure over a table snapshot so that a
// refresh landing mid-computation can never mix rates from two tables.
// All rounding is half-up (half away from zero) to the target
// currency's decimal places; the decimal type keeps the math free of
// float drift.

// Convert turns an amount of the table's base currency into to's
// currency: amount * rate(to).
func Convert(amount decimal.Decimal, to Currency, table *RateTable) (decimal.Decimal, error) {
	rate, ok := table.Rate(to.Code)
	if !ok {
		return decimal.Decimal{}, &ErrUnknownCurrency{Code: to.Code}
	}
	if rate.IsZero() {
		log.Error("zero rate configured", slog.Any("currency_code", to.Code))
		return decimal.Decimal{}, &ErrZeroRate{Code: to.Code}
	}

	return amount.Mul(rate).Round(to.DecimalPlaces), nil
}

// ConvertInverse goes the other way, from's currency back into the
// base: amount / rate(from). A zero or unset rate is a configuration
// fault and blocks the conversion; the division must never produce
// Inf or NaN.
func ConvertInverse(amount decimal.Decimal, from Currency, base Currency, table *RateTable) (decimal.Decimal, error) {
	rate, ok := table.Rate(from.Code)
	if !ok || rate.IsZero() {
		log.Error("zero denominator", slog.Any("currency_code", from.Code))
		return decimal.Decimal{}, &ErrZeroRate{Code: from.Code}
	}

	return amount.Div(rate).Round(base.DecimalPlaces), nil
}

// Format renders an amount with the currency's symbol, thousands
// grouping and decimal places, e.g. GH₵1,234.50.
func Format(amount decimal.Decimal, currency Currency) string {
	fixed := amount.StringFixed(currency.DecimalPlaces)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, fracPart, hasFrac := strings.Cut(fixed, ".")

	grouped := strings.Builder{}
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteRune(',')
		}
		grouped.WriteRune(digit)
	}

	out := currency.Symbol + grouped.String()
	if hasFrac {
		out += "." + fracPart
	}
	if negative {
		return "-" + out
	}
	return out
}

// Converter produces conversion previews against the live rate store.
type Converter struct {
	store *RateStore
}

func NewConverter(store *RateStore) *Converter {
	return &Converter{
		store: store,
	}
}

// Preview computes the transient base→target preview shown while the
// user edits a transfer form. It is recomputed from scratch on every
// call and never persisted.
func (c *Converter) Preview(amount decimal.Decimal, toCode string) (preview *ConversionPreview, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("panic while converting", slog.Any("panic", r))
			err = ErrServiceInternal
		}
	}()

	to, err := c.store.Currency(toCode)
	if err != nil {
		return nil, err
	}

	table := c.store.Snapshot()
	if table == nil {
		return nil, ErrNoRates
	}

	converted, err := Convert(amount, *to, table)
	if err != nil {
		return nil, err
	}

	rate, _ := table.Rate(to.Code)

	return &ConversionPreview{
		Amount:          amount,
		FromCurrency:    table.Base,
		ToCurrency:      to.Code,
		Rate:            rate,
		ConvertedAmount: converted,
		Formatted:       Format(converted, *to),
	}, nil
}

// PreviewInverse previews a foreign-currency amount converted back to
// the base currency.
func (c *Converter) PreviewInverse(amount decimal.Decimal, fromCode string) (preview *ConversionPreview, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("panic while converting", slog.Any("panic", r))
			err = ErrServiceInternal
		}
	}()

	from, err := c.store.Currency(fromCode)
	if err != nil {
		return nil, err
	}
	base, err := c.store.Base()
	if err != nil {
		return nil, err
	}

	table := c.store.Snapshot()
	if table == nil {
		return nil, ErrNoRates
	}

	converted, err := ConvertInverse(amount, *from, *base, table)
	if err != nil {
		return nil, err
	}

	rate, _ := table.Rate(from.Code)

	return &ConversionPreview{
		Amount:          amount,
		FromCurrency:    from.Code,
		ToCurrency:      base.Code,
		Rate:            rate,
		ConvertedAmount: converted,
		Formatted:       Format(converted, *base),
	}, nil
}

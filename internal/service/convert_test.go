package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cediflow/common/models"
)

var (
	ghs = models.Currency{Code: "GHS", Name: "Ghana Cedi", Symbol: "GH₵", DecimalPlaces: 2, IsBase: true, IsEnabled: true}
	usd = models.Currency{Code: "USD", Name: "US Dollar", Symbol: "$", DecimalPlaces: 2, IsEnabled: true}
)

func testTable() *models.RateTable {
	return models.NewRateTable("GHS", map[models.CurrencyCode]decimal.Decimal{
		"GHS": decimal.NewFromInt(1),
		"USD": decimal.RequireFromString("0.083"),
		"ZRO": decimal.Zero,
	})
}

func TestConvert_Scenario(t *testing.T) {
	// 1200 GHS at 0.083 → 99.60 USD
	got, err := Convert(decimal.NewFromInt(1200), usd, testTable())

	require.NoError(t, err)
	assert.Equal(t, "99.60", got.StringFixed(2))
}

func TestConvert_UnknownCurrency(t *testing.T) {
	xof := models.Currency{Code: "XOF", Symbol: "CFA", DecimalPlaces: 2}

	_, err := Convert(decimal.NewFromInt(10), xof, testTable())

	var unknown *models.ErrUnknownCurrency
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, models.CurrencyCode("XOF"), unknown.Code)
}

func TestConvert_ZeroRateBlocked(t *testing.T) {
	zro := models.Currency{Code: "ZRO", Symbol: "Z", DecimalPlaces: 2}

	_, err := Convert(decimal.NewFromInt(10), zro, testTable())

	var zero *models.ErrZeroRate
	assert.ErrorAs(t, err, &zero)
}

func TestConvert_RoundsHalfUp(t *testing.T) {
	table := models.NewRateTable("GHS", map[models.CurrencyCode]decimal.Decimal{
		"USD": decimal.RequireFromString("0.015"),
	})

	got, err := Convert(decimal.NewFromInt(1), usd, table)

	require.NoError(t, err)
	assert.Equal(t, "0.02", got.StringFixed(2))
}

func TestConvertInverse_Scenario(t *testing.T) {
	got, err := ConvertInverse(decimal.RequireFromString("99.60"), usd, ghs, testTable())

	require.NoError(t, err)
	assert.Equal(t, "1200.00", got.StringFixed(2))
}

func TestConvertInverse_ZeroOrUnsetRateBlocked(t *testing.T) {
	for _, code := range []models.CurrencyCode{"ZRO", "XOF"} {
		from := models.Currency{Code: code, Symbol: "?", DecimalPlaces: 2}

		_, err := ConvertInverse(decimal.NewFromInt(10), from, ghs, testTable())

		var zero *models.ErrZeroRate
		assert.ErrorAs(t, err, &zero, "code %s", code)
	}
}

func TestConvert_RoundTripWithinOneMinorUnit(t *testing.T) {
	table := testTable()

	// rounding the converted amount to one USD minor unit comes back
	// through the inverse as at most minorUnit/rate in GHS
	rate := decimal.RequireFromString("0.083")
	tolerance := decimal.New(1, -2).Div(rate)

	for _, raw := range []string{"1", "12.34", "1200", "99999.99", "0.07"} {
		amount := decimal.RequireFromString(raw)

		converted, err := Convert(amount, usd, table)
		require.NoError(t, err)

		back, err := ConvertInverse(converted, usd, ghs, table)
		require.NoError(t, err)

		diff := back.Sub(amount).Abs()
		assert.True(t, diff.LessThanOrEqual(tolerance), "amount %s came back as %s", amount, back)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency models.Currency
		want     string
	}{
		{"usd scenario", "99.60", usd, "$99.60"},
		{"thousands grouping", "1234.5", ghs, "GH₵1,234.50"},
		{"millions grouping", "1234567.891", ghs, "GH₵1,234,567.89"},
		{"no grouping below a thousand", "999.99", ghs, "GH₵999.99"},
		{"negative", "-1234.5", ghs, "-GH₵1,234.50"},
		{"zero decimal places", "1500", models.Currency{Code: "XAF", Symbol: "FCFA", DecimalPlaces: 0}, "FCFA1,500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(decimal.RequireFromString(tt.amount), tt.currency)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConverter_Preview(t *testing.T) {
	store := newTestStore(new(MockRateFetcher), new(MockRateTableRepository))
	store.swap(testTable())
	converter := NewConverter(store)

	preview, err := converter.Preview(decimal.NewFromInt(1200), "usd")

	require.NoError(t, err)
	assert.Equal(t, models.CurrencyCode("GHS"), preview.FromCurrency)
	assert.Equal(t, models.CurrencyCode("USD"), preview.ToCurrency)
	assert.Equal(t, "99.60", preview.ConvertedAmount.StringFixed(2))
	assert.Equal(t, "$99.60", preview.Formatted)
	assert.True(t, preview.Rate.Equal(decimal.RequireFromString("0.083")))
}

func TestConverter_Preview_NoRatesYet(t *testing.T) {
	store := newTestStore(new(MockRateFetcher), new(MockRateTableRepository))
	converter := NewConverter(store)

	_, err := converter.Preview(decimal.NewFromInt(10), "USD")

	assert.ErrorIs(t, err, ErrNoRates)
}

func TestConverter_PreviewInverse(t *testing.T) {
	store := newTestStore(new(MockRateFetcher), new(MockRateTableRepository))
	store.swap(testTable())
	converter := NewConverter(store)

	preview, err := converter.PreviewInverse(decimal.RequireFromString("99.60"), "USD")

	require.NoError(t, err)
	assert.Equal(t, models.CurrencyCode("USD"), preview.FromCurrency)
	assert.Equal(t, models.CurrencyCode("GHS"), preview.ToCurrency)
	assert.Equal(t, "GH₵1,200.00", preview.Formatted)
}

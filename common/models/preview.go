package models

import "github.com/shopspring/decimal"

// ConversionPreview is a transient display value: it is recomputed on
// every request and never persisted.
type ConversionPreview struct {
	Amount          decimal.Decimal `json:"amount"`
	FromCurrency    CurrencyCode    `json:"from_currency"`
	ToCurrency      CurrencyCode    `json:"to_currency"`
	Rate            decimal.Decimal `json:"rate"`
	ConvertedAmount decimal.Decimal `json:"converted_amount"`
	Formatted       string          `json:"formatted"`
}

// FeeQuote is the fee breakdown shown to the user before a withdrawal
// is submitted. TotalDeduction is the amount actually debited.
type FeeQuote struct {
	Channel        Channel         `json:"channel"`
	Amount         decimal.Decimal `json:"amount"`
	Fee            decimal.Decimal `json:"fee"`
	TotalDeduction decimal.Decimal `json:"total_deduction"`
	Formatted      string          `json:"formatted"`
}

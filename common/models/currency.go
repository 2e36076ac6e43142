package models

import (
	"fmt"
	"time"
)

type CurrencyCode string

const defaultDecimalPlaces = 2

type Currency struct {
	Code          CurrencyCode
	Name          string
	Symbol        string
	DecimalPlaces int32
	IsBase        bool
	// FlagEmoji is display-only and may be empty.
	FlagEmoji string
	IsEnabled bool
	UpdatedAt time.Time
}

func (c Currency) Validate() error {
	if c.Code == "" {
		return fmt.Errorf("currency code is required")
	}
	if c.Symbol == "" {
		return fmt.Errorf("currency %q: symbol is required", c.Code)
	}
	if c.DecimalPlaces < 0 {
		return fmt.Errorf("currency %q: decimal places must be non-negative", c.Code)
	}
	return nil
}

// WithDefaults fills optional fields the catalog source may omit.
func (c Currency) WithDefaults() Currency {
	if c.DecimalPlaces == 0 {
		c.DecimalPlaces = defaultDecimalPlaces
	}
	return c
}

// ValidateCatalog checks the full active currency set: codes must be
// unique and exactly one enabled currency must be the base.
func ValidateCatalog(currencies []Currency) error {
	seen := map[CurrencyCode]struct{}{}
	baseCount := 0

	for _, currency := range currencies {
		if err := currency.Validate(); err != nil {
			return err
		}
		if _, ok := seen[currency.Code]; ok {
			return fmt.Errorf("duplicate currency code %q in catalog", currency.Code)
		}
		seen[currency.Code] = struct{}{}

		if currency.IsBase && currency.IsEnabled {
			baseCount++
		}
	}

	if baseCount != 1 {
		return fmt.Errorf("catalog must contain exactly one base currency, got %d", baseCount)
	}

	return nil
}

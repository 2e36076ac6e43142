package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RateTable is the full set of known exchange rates for one base
// currency, each expressed as "1 unit of base = rate units of code".
// A table is only ever replaced wholesale; nothing mutates it in place
// after construction, so a snapshot can be shared between goroutines.
type RateTable struct {
	Base      CurrencyCode                     `json:"base"`
	Rates     map[CurrencyCode]decimal.Decimal `json:"rates"`
	FetchedAt time.Time                        `json:"fetched_at"`
}

func NewRateTable(base CurrencyCode, rates map[CurrencyCode]decimal.Decimal) *RateTable {
	return &RateTable{
		Base:      base,
		Rates:     rates,
		FetchedAt: time.Now().UTC(),
	}
}

// Rate returns the stored rate for code. The second return value is
// false when the code was never populated; callers must not treat a
// missing rate as zero.
func (t *RateTable) Rate(code CurrencyCode) (decimal.Decimal, bool) {
	if t == nil || t.Rates == nil {
		return decimal.Decimal{}, false
	}
	rate, ok := t.Rates[code]
	return rate, ok
}

func (t *RateTable) Validate() error {
	if t.Base == "" {
		return fmt.Errorf("rate table: base currency is required")
	}
	for code, rate := range t.Rates {
		if rate.IsNegative() {
			return fmt.Errorf("rate table: negative rate %s for %q", rate, code)
		}
	}
	// The base's own entry, if present, must be exactly 1.
	if baseRate, ok := t.Rates[t.Base]; ok && !baseRate.Equal(decimal.NewFromInt(1)) {
		return fmt.Errorf("rate table: base currency %q rate must be 1, got %s", t.Base, baseRate)
	}
	return nil
}

package repository

import (
	"context"
	"time"

	"cediflow/common/models"
)

type ICurrencyRepository interface {
	ListEnabledCurrencies(ctx context.Context) ([]models.Currency, error)
	ListCurrenciesByUpdatedAtGt(ctx context.Context, updatedAt time.Time) ([]models.Currency, error)

	GetLastUpdatedCurrency(ctx context.Context) (*models.Currency, error)
}

// IRateTableRepository persists admin rate-table overrides so they
// survive process restarts. Writes are full-table, never per-key.
type IRateTableRepository interface {
	SaveRateTable(ctx context.Context, table *models.RateTable) error
	GetLatestRateTable(ctx context.Context, base models.CurrencyCode) (*models.RateTable, error)
}

type IFeeScheduleRepository interface {
	GetFeeSchedule(ctx context.Context, channel models.Channel) (*models.FeeSchedule, error)
}

package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"cediflow/common/models"
	"cediflow/internal/clients/ratesource"
)

type MockRateFetcher struct {
	mock.Mock
}

func (m *MockRateFetcher) FetchRates(ctx context.Context, base models.CurrencyCode, quotes []models.CurrencyCode) (*ratesource.RatesResponse, error) {
	args := m.Called(ctx, base, quotes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ratesource.RatesResponse), args.Error(1)
}

type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) ListEnabledCurrencies(ctx context.Context) ([]models.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrenciesByUpdatedAtGt(ctx context.Context, updatedAt time.Time) ([]models.Currency, error) {
	args := m.Called(ctx, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) GetLastUpdatedCurrency(ctx context.Context) (*models.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Currency), args.Error(1)
}

type MockRateTableRepository struct {
	mock.Mock
}

func (m *MockRateTableRepository) SaveRateTable(ctx context.Context, table *models.RateTable) error {
	args := m.Called(ctx, table)
	return args.Error(0)
}

func (m *MockRateTableRepository) GetLatestRateTable(ctx context.Context, base models.CurrencyCode) (*models.RateTable, error) {
	args := m.Called(ctx, base)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RateTable), args.Error(1)
}

type MockFeeScheduleRepository struct {
	mock.Mock
}

func (m *MockFeeScheduleRepository) GetFeeSchedule(ctx context.Context, channel models.Channel) (*models.FeeSchedule, error) {
	args := m.Called(ctx, channel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FeeSchedule), args.Error(1)
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cediflow/common/config"
	"cediflow/common/models"
	"cediflow/internal/clients/ratesource"
)

func newTestStore(fetcher *MockRateFetcher, tableRepo *MockRateTableRepository) *RateStore {
	cfg := &config.Service{
		BaseCurrency:           "GHS",
		RatePollingInterval:    time.Minute,
		CatalogPollingInterval: time.Second,
		RefreshTimeout:         5 * time.Second,
	}
	store := NewRateStore(cfg, new(MockCurrencyRepository), tableRepo, fetcher)
	store.updateCurrencies(testCatalog())
	return store
}

func testCatalog() []models.Currency {
	return []models.Currency{
		{Code: "GHS", Name: "Ghana Cedi", Symbol: "GH₵", DecimalPlaces: 2, IsBase: true, IsEnabled: true},
		{Code: "USD", Name: "US Dollar", Symbol: "$", DecimalPlaces: 2, IsEnabled: true},
		{Code: "NGN", Name: "Nigerian Naira", Symbol: "₦", DecimalPlaces: 2, IsEnabled: true},
	}
}

func ratesResponse(base models.CurrencyCode, rates map[models.CurrencyCode]string) *ratesource.RatesResponse {
	resp := &ratesource.RatesResponse{
		Base:  base,
		Rates: map[models.CurrencyCode]json.Number{},
	}
	for code, rate := range rates {
		resp.Rates[code] = json.Number(rate)
	}
	return resp
}

func TestRateStore_Refresh_Success(t *testing.T) {
	fetcher := new(MockRateFetcher)
	store := newTestStore(fetcher, new(MockRateTableRepository))

	fetcher.On("FetchRates", mock.Anything, models.CurrencyCode("GHS"), mock.Anything).
		Return(ratesResponse("GHS", map[models.CurrencyCode]string{"USD": "0.083", "NGN": "125.4"}), nil).Once()

	table, err := store.Refresh(context.Background())

	assert.NoError(t, err)
	assert.NotNil(t, table)

	usd, ok := store.GetRate("USD")
	assert.True(t, ok)
	assert.True(t, usd.Equal(decimal.RequireFromString("0.083")))

	// the base currency's own entry is always exactly 1
	base, ok := store.GetRate("GHS")
	assert.True(t, ok)
	assert.True(t, base.Equal(decimal.NewFromInt(1)))

	fetcher.AssertExpectations(t)
}

func TestRateStore_Refresh_FetchError_KeepsPreviousTable(t *testing.T) {
	fetcher := new(MockRateFetcher)
	store := newTestStore(fetcher, new(MockRateTableRepository))

	fetcher.On("FetchRates", mock.Anything, models.CurrencyCode("GHS"), mock.Anything).
		Return(ratesResponse("GHS", map[models.CurrencyCode]string{"USD": "0.083"}), nil).Once()

	_, err := store.Refresh(context.Background())
	assert.NoError(t, err)
	before := store.Snapshot()

	fetcher.On("FetchRates", mock.Anything, models.CurrencyCode("GHS"), mock.Anything).
		Return(nil, errors.New("connection refused")).Once()

	_, err = store.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrRateFetch)
	assert.Same(t, before, store.Snapshot())
}

func TestRateStore_Refresh_MalformedRate_KeepsPreviousTable(t *testing.T) {
	fetcher := new(MockRateFetcher)
	store := newTestStore(fetcher, new(MockRateTableRepository))

	fetcher.On("FetchRates", mock.Anything, models.CurrencyCode("GHS"), mock.Anything).
		Return(ratesResponse("GHS", map[models.CurrencyCode]string{"USD": "not-a-number"}), nil).Once()

	_, err := store.Refresh(context.Background())

	assert.ErrorIs(t, err, ErrRateFetch)
	assert.Nil(t, store.Snapshot())
}

func TestRateStore_Refresh_ReplacesTableWholesale(t *testing.T) {
	fetcher := new(MockRateFetcher)
	store := newTestStore(fetcher, new(MockRateTableRepository))

	fetcher.On("FetchRates", mock.Anything, models.CurrencyCode("GHS"), mock.Anything).
		Return(ratesResponse("GHS", map[models.CurrencyCode]string{"USD": "0.083", "NGN": "125.4"}), nil).Once()
	_, err := store.Refresh(context.Background())
	assert.NoError(t, err)

	fetcher.On("FetchRates", mock.Anything, models.CurrencyCode("GHS"), mock.Anything).
		Return(ratesResponse("GHS", map[models.CurrencyCode]string{"USD": "0.085"}), nil).Once()
	_, err = store.Refresh(context.Background())
	assert.NoError(t, err)

	// no keys from the first table may leak into the second
	_, ok := store.GetRate("NGN")
	assert.False(t, ok)

	usd, ok := store.GetRate("USD")
	assert.True(t, ok)
	assert.True(t, usd.Equal(decimal.RequireFromString("0.085")))
}

func TestRateStore_GetRate_UnknownIsNotZero(t *testing.T) {
	store := newTestStore(new(MockRateFetcher), new(MockRateTableRepository))

	rate, ok := store.GetRate("XOF")

	assert.False(t, ok)
	assert.True(t, rate.IsZero())
}

func TestRateStore_SetRates_WritesThroughBeforeSwap(t *testing.T) {
	tableRepo := new(MockRateTableRepository)
	store := newTestStore(new(MockRateFetcher), tableRepo)

	table := models.NewRateTable("GHS", map[models.CurrencyCode]decimal.Decimal{
		"GHS": decimal.NewFromInt(1),
		"USD": decimal.RequireFromString("0.084"),
	})

	tableRepo.On("SaveRateTable", mock.Anything, table).Return(nil).Once()

	err := store.SetRates(context.Background(), table)

	assert.NoError(t, err)
	assert.Same(t, table, store.Snapshot())
	tableRepo.AssertExpectations(t)
}

func TestRateStore_SetRates_PersistFailureLeavesCacheUntouched(t *testing.T) {
	tableRepo := new(MockRateTableRepository)
	store := newTestStore(new(MockRateFetcher), tableRepo)

	table := models.NewRateTable("GHS", map[models.CurrencyCode]decimal.Decimal{
		"USD": decimal.RequireFromString("0.084"),
	})

	tableRepo.On("SaveRateTable", mock.Anything, table).Return(errors.New("db down")).Once()

	err := store.SetRates(context.Background(), table)

	assert.Error(t, err)
	assert.Nil(t, store.Snapshot())
	tableRepo.AssertExpectations(t)
}

func TestRateStore_Refresh_WaitsForInFlightSetRates(t *testing.T) {
	fetcher := new(MockRateFetcher)
	tableRepo := new(MockRateTableRepository)
	store := newTestStore(fetcher, tableRepo)

	adminTable := models.NewRateTable("GHS", map[models.CurrencyCode]decimal.Decimal{
		"GHS": decimal.NewFromInt(1),
		"USD": decimal.RequireFromString("0.084"),
	})

	persisting := make(chan struct{})
	release := make(chan struct{})
	tableRepo.On("SaveRateTable", mock.Anything, adminTable).
		Run(func(mock.Arguments) {
			close(persisting)
			<-release
		}).
		Return(nil).Once()

	fetcher.On("FetchRates", mock.Anything, models.CurrencyCode("GHS"), mock.Anything).
		Return(ratesResponse("GHS", map[models.CurrencyCode]string{"USD": "0.085"}), nil).Once()

	setDone := make(chan error, 1)
	go func() {
		setDone <- store.SetRates(context.Background(), adminTable)
	}()
	<-persisting

	refreshDone := make(chan *models.RateTable, 1)
	go func() {
		table, err := store.Refresh(context.Background())
		assert.NoError(t, err)
		refreshDone <- table
	}()

	// the override is mid persist-then-swap, so the refresh must not
	// install its table yet
	select {
	case <-refreshDone:
		t.Fatal("refresh installed its table while an override was in flight")
	case <-time.After(50 * time.Millisecond):
	}
	assert.Nil(t, store.Snapshot())

	close(release)
	assert.NoError(t, <-setDone)
	refreshed := <-refreshDone

	// the refresh was sequenced after the override, never interleaved
	assert.Same(t, refreshed, store.Snapshot())
	tableRepo.AssertExpectations(t)
	fetcher.AssertExpectations(t)
}

func TestRateStore_SetRates_RejectsBaseMismatch(t *testing.T) {
	store := newTestStore(new(MockRateFetcher), new(MockRateTableRepository))

	table := models.NewRateTable("USD", map[models.CurrencyCode]decimal.Decimal{
		"GHS": decimal.RequireFromString("12.05"),
	})

	err := store.SetRates(context.Background(), table)

	assert.ErrorIs(t, err, ErrBaseMismatch)
	assert.Nil(t, store.Snapshot())
}

func TestRateStore_SetRates_RejectsInvalidBaseEntry(t *testing.T) {
	store := newTestStore(new(MockRateFetcher), new(MockRateTableRepository))

	table := models.NewRateTable("GHS", map[models.CurrencyCode]decimal.Decimal{
		"GHS": decimal.NewFromInt(2),
	})

	err := store.SetRates(context.Background(), table)

	assert.Error(t, err)
	assert.Nil(t, store.Snapshot())
}

func TestRateStore_Currency_CaseInsensitive(t *testing.T) {
	store := newTestStore(new(MockRateFetcher), new(MockRateTableRepository))

	currency, err := store.Currency("usd")

	assert.NoError(t, err)
	assert.Equal(t, models.CurrencyCode("USD"), currency.Code)
}

func TestRateStore_Currency_Unknown(t *testing.T) {
	store := newTestStore(new(MockRateFetcher), new(MockRateTableRepository))

	_, err := store.Currency("XOF")

	var unknown *models.ErrUnknownCurrency
	assert.ErrorAs(t, err, &unknown)
	assert.Equal(t, models.CurrencyCode("XOF"), unknown.Code)
}

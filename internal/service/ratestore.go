package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"cediflow/common/config"
	"cediflow/common/logger"
	. "cediflow/common/models"
	"cediflow/common/utils"
	"cediflow/internal/clients/ratesource"
	"cediflow/internal/repository"

	"github.com/shopspring/decimal"

	"golang.org/x/sync/errgroup"
)

// RateFetcher is the outbound boundary to the external rate provider.
type RateFetcher interface {
	FetchRates(ctx context.Context, base CurrencyCode, quotes []CurrencyCode) (*ratesource.RatesResponse, error)
}

// RateStore is the single process-wide cache of the exchange-rate
// table for the configured base currency. The table is replaced
// wholesale on every successful refresh or admin override; readers
// never observe a partially written table. A refresh that races a
// GetRate/convert pair may still leave one computation on the prior
// table, which is accepted: rates change slowly.
type RateStore struct {
	ctx    context.Context
	cancel context.CancelFunc

	config.Service
	isRunning int32

	// currencies follows the catalog table in postgres; per-key updates
	// are the intended semantics there, unlike the rate table.
	currencies utils.SyncMap[CurrencyCode, Currency]

	// mu serializes the compute-then-swap write path; readers take the
	// read lock only long enough to copy the table pointer.
	mu    sync.RWMutex
	table *RateTable

	// writeMu serializes the writers: SetRates holds it across
	// persist-then-swap, Refresh across its install, so their sequences
	// never interleave.
	writeMu sync.Mutex

	repo      repository.ICurrencyRepository
	tableRepo repository.IRateTableRepository
	client    RateFetcher
}

var log = logger.JSONLogger.With(slog.String("service", "rate_store"))

func NewRateStore(
	cfg *config.Service,
	repo repository.ICurrencyRepository,
	tableRepo repository.IRateTableRepository,
	client RateFetcher,
) *RateStore {
	return &RateStore{
		Service: *cfg,

		repo:      repo,
		tableRepo: tableRepo,
		client:    client,
	}
}

func (s *RateStore) getIsRunning() bool {
	return atomic.LoadInt32(&s.isRunning) == 1
}

func (s *RateStore) setIsRunning(to bool) {
	if to {
		atomic.StoreInt32(&s.isRunning, 1)
		return
	}
	atomic.StoreInt32(&s.isRunning, 0)
}

func (s *RateStore) Start() error {
	if s.getIsRunning() {
		return ErrServiceStarted
	}
	s.setIsRunning(true)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.ctx = ctx
	s.cancel = cancel

	defer s.setIsRunning(false)

	log.Info("starting rate store...")

	if err := s.fetchEnabledCurrencies(ctx); err != nil {
		return err
	}

	log.Debug("loading persisted rate table...")
	persisted, err := s.tableRepo.GetLatestRateTable(ctx, s.base())
	if err != nil {
		return fmt.Errorf("error while loading persisted rate table: %w", err)
	}
	if persisted != nil {
		s.swap(persisted)
	}

	log.Debug("getting initial rates...")
	if _, err := s.Refresh(ctx); err != nil {
		// A stale persisted table is still usable; without any table
		// at all the service cannot convert and must not come up.
		if persisted == nil {
			return err
		}
		log.Warn("initial refresh failed, continuing with persisted table", slog.Any("error", err))
	}

	workerGroup, ctxEG := errgroup.WithContext(ctx)

	log.Debug("starting polling catalog...")
	workerGroup.Go(func() error {
		return s.pollCatalog(ctxEG)
	})

	log.Debug("starting polling rates...")
	workerGroup.Go(func() error {
		return s.pollRates(ctxEG)
	})

	if err := workerGroup.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("error while executing group: %w", err)
	}

	return nil
}

func (s *RateStore) Stop() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *RateStore) base() CurrencyCode {
	return CurrencyCode(strings.ToUpper(s.BaseCurrency))
}

// Refresh fetches a full table from the rate source and installs it
// atomically. On any failure the previously cached table is left
// untouched, never zeroed out.
func (s *RateStore) Refresh(ctx context.Context) (*RateTable, error) {
	ctx, cancel := context.WithTimeout(ctx, s.RefreshTimeout)
	defer cancel()

	base := s.base()

	quotes := []CurrencyCode{}
	s.currencies.Range(func(code CurrencyCode, _ Currency) bool {
		if code != base {
			quotes = append(quotes, code)
		}
		return true
	})

	resp, err := s.client.FetchRates(ctx, base, quotes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRateFetch, err)
	}

	rates := make(map[CurrencyCode]decimal.Decimal, len(resp.Rates)+1)
	for code, raw := range resp.Rates {
		rate, err := decimal.NewFromString(raw.String())
		if err != nil {
			log.Error("invalid rate", slog.String("actual_value", raw.String()), slog.Any("error", err))
			return nil, fmt.Errorf("%w: invalid rate for %q: %w", ErrRateFetch, code, err)
		}
		rates[code] = rate
	}
	rates[base] = decimal.NewFromInt(1)

	table := NewRateTable(base, rates)
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRateFetch, err)
	}

	// Taken after the network call so a slow provider never holds up an
	// admin override; a SetRates in flight finishes its persist-then-swap
	// before this table is installed.
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.swap(table)
	return table, nil
}

// GetRate returns the cached rate for code. A never-populated code
// reports ok=false; callers must treat that distinctly from zero, or
// conversions would silently collapse to nothing.
func (s *RateStore) GetRate(code CurrencyCode) (decimal.Decimal, bool) {
	return s.Snapshot().Rate(code)
}

// Snapshot returns the current table. Tables are immutable once
// installed, so sharing the pointer is safe.
func (s *RateStore) Snapshot() *RateTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// SetRates is the administrative override path: the table is written
// through to postgres first and the in-memory cache is only swapped
// after the durable write succeeded, keeping cache and durable state
// consistent.
func (s *RateStore) SetRates(ctx context.Context, table *RateTable) error {
	if err := table.Validate(); err != nil {
		return err
	}
	if table.Base != s.base() {
		return fmt.Errorf("%w: got %q, configured %q", ErrBaseMismatch, table.Base, s.base())
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.tableRepo.SaveRateTable(ctx, table); err != nil {
		return fmt.Errorf("error while persisting rate table: %w", err)
	}

	s.swap(table)
	return nil
}

func (s *RateStore) swap(table *RateTable) {
	s.mu.Lock()
	s.table = table
	s.mu.Unlock()
}

// Currency resolves a catalog entry by code, case-insensitively.
func (s *RateStore) Currency(code string) (*Currency, error) {
	upper := CurrencyCode(strings.ToUpper(code))

	currency, ok := s.currencies.Load(upper)
	if !ok {
		return nil, &ErrUnknownCurrency{
			Code: upper,
		}
	}

	return &currency, nil
}

// Base returns the catalog record of the configured base currency.
func (s *RateStore) Base() (*Currency, error) {
	return s.Currency(string(s.base()))
}

func (s *RateStore) updateCurrencies(currencies []Currency) {
	for _, currency := range currencies {
		if currency.IsEnabled {
			s.currencies.Store(currency.Code, currency.WithDefaults())
		} else {
			s.currencies.Delete(currency.Code)
		}
	}
}

func (s *RateStore) fetchEnabledCurrencies(ctx context.Context) error {
	currencies, err := s.repo.ListEnabledCurrencies(ctx)
	if err != nil {
		return fmt.Errorf("ListEnabledCurrencies(): %w", err)
	}

	if err := ValidateCatalog(currencies); err != nil {
		return fmt.Errorf("invalid currency catalog: %w", err)
	}

	s.updateCurrencies(currencies)
	return nil
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

func (s *RateStore) pollCatalog(ctx context.Context) error {
	var lastUpdatedAt time.Time
	lastUpdatedCurrency, err := s.repo.GetLastUpdatedCurrency(ctx)
	if err != nil {
		return fmt.Errorf("error while fetching last updated at currency: %w", err)
	}
	if lastUpdatedCurrency != nil {
		lastUpdatedAt = lastUpdatedCurrency.UpdatedAt
	}

	ticker := time.NewTicker(s.CatalogPollingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("finishing polling catalog updates")
			return nil
		case <-ticker.C:
			currencies, err := s.repo.ListCurrenciesByUpdatedAtGt(ctx, lastUpdatedAt)
			if err != nil {
				retErr := fmt.Errorf("error while fetching from db: %w", err)
				log.Error("pollCatalog", slog.Any("error", retErr))
				return retErr
			}

			for _, currency := range currencies {
				if currency.UpdatedAt.After(lastUpdatedAt) {
					lastUpdatedAt = currency.UpdatedAt
				}
			}

			s.updateCurrencies(currencies)
		}
	}
}

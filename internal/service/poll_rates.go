package service

import (
	"context"
	"log/slog"
	"time"
)

// pollRates refreshes the cached table periodically. A failed refresh
// is transient: the previous table stays in place and the next tick
// tries again.
func (s *RateStore) pollRates(ctx context.Context) error {
	ticker := time.NewTicker(s.RatePollingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("finishing rate polling")
			return nil
		case <-ticker.C:
			if _, err := s.Refresh(ctx); err != nil {
				log.Error("error polling rates, keeping stale table", slog.Any("error", err))
			}
		}
	}
}

package jobs

import (
	"context"

	"equipment-rental-backend/internal/logger"
)

// ExpireStaleQuotes expires pending quotes whose rental start date has passed
// without the quote being accepted or rejected.
func (jr *JobRunner) ExpireStaleQuotes() error {
	return jr.runWithRecovery("ExpireStaleQuotes", func(ctx context.Context) error {
		today := jr.now().UTC()
		ids, err := jr.services.Quotes.ExpireStaleQuotes(ctx, today)
		if err != nil {
			return err
		}
		for _, id := range ids {
			logger.Debug("Quote expired", "quoteID", id)
		}
		logger.Info("Expired stale quotes", "count", len(ids), "today", today.Format("2006-01-02"))
		return nil
	})
}

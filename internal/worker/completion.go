package worker

import (
	"context"
	"time"

	"github.com/campusops/events-core/internal/models"
	"github.com/campusops/events-core/internal/service"
	"go.uber.org/zap"
)

// CompletionWorker moves PUBLISHED events past their end date to COMPLETED.
// Reminder and certificate eligibility both depend on this transition
// happening without an admin remembering to click.
type CompletionWorker struct {
	events   service.EventService
	interval time.Duration
	log      *zap.Logger
}

func NewCompletionWorker(events service.EventService, interval time.Duration, log *zap.Logger) *CompletionWorker {
	return &CompletionWorker{events: events, interval: interval, log: log}
}

func (w *CompletionWorker) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				w.log.Info("completion worker stopping")
				return
			case <-ticker.C:
				w.RunOnce(ctx)
			}
		}
	}()
}

func (w *CompletionWorker) RunOnce(ctx context.Context) {
	events, err := w.events.DueForCompletion(ctx)
	if err != nil {
		w.log.Warn("completion query failed", zap.Error(err))
		return
	}

	for _, event := range events {
		_, err := w.events.Transition(ctx, event.ID, models.StatusCompleted, models.SystemActor, "")
		if err != nil {
			// A concurrent admin transition is fine, the next tick re-checks
			w.log.Warn("auto-complete failed",
				zap.String("event_id", event.ID), zap.Error(err))
			continue
		}
		w.log.Info("event auto-completed", zap.String("event_id", event.ID))
	}
}

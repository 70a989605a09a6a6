package worker

import (
	"context"
	"time"

	"github.com/campusops/events-core/internal/service"
	"go.uber.org/zap"
)

// ReminderWorker polls for registrations of events starting soon and emits a
// reminder fact per registration. Delivery is at-least-once keyed by
// registration id; the notification consumer dedups on its side.
type ReminderWorker struct {
	fulfillment service.FulfillmentService
	publisher   service.FactPublisher
	interval    time.Duration
	window      time.Duration
	log         *zap.Logger
}

func NewReminderWorker(
	fulfillment service.FulfillmentService,
	publisher service.FactPublisher,
	interval, window time.Duration,
	log *zap.Logger,
) *ReminderWorker {
	return &ReminderWorker{
		fulfillment: fulfillment,
		publisher:   publisher,
		interval:    interval,
		window:      window,
		log:         log,
	}
}

func (w *ReminderWorker) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				w.log.Info("reminder worker stopping")
				return
			case <-ticker.C:
				w.RunOnce(ctx)
			}
		}
	}()
}

// RunOnce performs a single poll. Failures are logged and retried on the
// next tick, never fatal.
func (w *ReminderWorker) RunOnce(ctx context.Context) {
	regs, err := w.fulfillment.DueReminders(ctx, w.window)
	if err != nil {
		w.log.Warn("reminder query failed", zap.Error(err))
		return
	}

	for _, reg := range regs {
		if err := w.publisher.Publish("reminder.due", &reg); err != nil {
			w.log.Warn("reminder publish failed",
				zap.String("registration_id", reg.ID), zap.Error(err))
			continue
		}
		if err := w.fulfillment.MarkReminderSent(ctx, reg.ID); err != nil {
			w.log.Warn("mark reminder sent failed",
				zap.String("registration_id", reg.ID), zap.Error(err))
		}
	}

	if len(regs) > 0 {
		w.log.Info("reminders dispatched", zap.Int("count", len(regs)))
	}
}

package worker

import (
	"context"
	"time"

	"github.com/campusops/events-core/internal/models"
	"github.com/campusops/events-core/internal/service"
	"go.uber.org/zap"
)

// CertificateWorker walks COMPLETED events and emits a certificate fact for
// every attended registration that has not been issued one. The PDF renderer
// consumes the fact; the core only tracks eligibility and the issued flag.
type CertificateWorker struct {
	events      service.EventService
	fulfillment service.FulfillmentService
	publisher   service.FactPublisher
	interval    time.Duration
	log         *zap.Logger
}

func NewCertificateWorker(
	events service.EventService,
	fulfillment service.FulfillmentService,
	publisher service.FactPublisher,
	interval time.Duration,
	log *zap.Logger,
) *CertificateWorker {
	return &CertificateWorker{
		events:      events,
		fulfillment: fulfillment,
		publisher:   publisher,
		interval:    interval,
		log:         log,
	}
}

func (w *CertificateWorker) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				w.log.Info("certificate worker stopping")
				return
			case <-ticker.C:
				w.RunOnce(ctx)
			}
		}
	}()
}

func (w *CertificateWorker) RunOnce(ctx context.Context) {
	completed := models.StatusCompleted
	events, err := w.events.ListEvents(ctx, &completed)
	if err != nil {
		w.log.Warn("completed events query failed", zap.Error(err))
		return
	}

	issued := 0
	for _, event := range events {
		regs, err := w.fulfillment.CertificateEligible(ctx, event.ID)
		if err != nil {
			w.log.Warn("certificate eligibility query failed",
				zap.String("event_id", event.ID), zap.Error(err))
			continue
		}
		for _, reg := range regs {
			if err := w.publisher.Publish("certificate.issue", &reg); err != nil {
				w.log.Warn("certificate publish failed",
					zap.String("registration_id", reg.ID), zap.Error(err))
				continue
			}
			if err := w.fulfillment.MarkCertificateSent(ctx, reg.ID); err != nil {
				w.log.Warn("mark certificate sent failed",
					zap.String("registration_id", reg.ID), zap.Error(err))
				continue
			}
			issued++
		}
	}

	if issued > 0 {
		w.log.Info("certificates dispatched", zap.Int("count", issued))
	}
}

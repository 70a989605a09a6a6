package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campusops/events-core/internal/models"
	"github.com/campusops/events-core/internal/repository"
	"gorm.io/gorm"
)

// FulfillmentService is the worker-facing surface: read-only eligibility
// queries plus idempotent mark-sent calls. Workers poll on their own timers
// and must treat every result as at-least-once delivered.
type FulfillmentService interface {
	DueReminders(ctx context.Context, window time.Duration) ([]models.Registration, error)
	MarkReminderSent(ctx context.Context, registrationID string) error
	CertificateEligible(ctx context.Context, eventID string) ([]models.Registration, error)
	MarkCertificateSent(ctx context.Context, registrationID string) error
}

type fulfillmentService struct {
	regRepo repository.RegistrationRepository
}

func NewFulfillmentService(regRepo repository.RegistrationRepository) FulfillmentService {
	return &fulfillmentService{regRepo: regRepo}
}

func (s *fulfillmentService) DueReminders(ctx context.Context, window time.Duration) ([]models.Registration, error) {
	now := time.Now()
	return s.regRepo.DueReminders(ctx, now, now.Add(window))
}

func (s *fulfillmentService) MarkReminderSent(ctx context.Context, registrationID string) error {
	return s.markFlag(ctx, registrationID, "reminder_sent")
}

func (s *fulfillmentService) CertificateEligible(ctx context.Context, eventID string) ([]models.Registration, error) {
	return s.regRepo.CertificateEligible(ctx, eventID)
}

func (s *fulfillmentService) MarkCertificateSent(ctx context.Context, registrationID string) error {
	return s.markFlag(ctx, registrationID, "certificate_issued")
}

// markFlag sets a delivery flag to true. Setting it twice is a no-op, so a
// worker retrying after a crash never double-reports.
func (s *fulfillmentService) markFlag(ctx context.Context, registrationID, column string) error {
	if _, err := s.regRepo.FindByID(ctx, registrationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRegistrationNotFound
		}
		return err
	}
	err := s.regRepo.UpdateFields(ctx, s.regRepo.GetDB(), registrationID, map[string]interface{}{
		column: true,
	})
	if err != nil {
		return fmt.Errorf("mark %s: %w", column, err)
	}
	return nil
}

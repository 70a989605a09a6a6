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

var (
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrEventNotPublished    = errors.New("event is not open for registration")
	ErrDeadlinePassed       = errors.New("registration deadline has passed")
	ErrNotWhitelisted       = errors.New("user may not access this event")
	ErrAlreadyRegistered    = errors.New("user already has an active registration for this event")
	ErrEventFull            = errors.New("event has reached its capacity")
	ErrAlreadyCancelled     = errors.New("registration is already cancelled")
)

type RegistrationService interface {
	Register(ctx context.Context, eventID, userID, paymentMethod string) (*models.Registration, error)
	Cancel(ctx context.Context, registrationID string, actor models.Actor) (*models.Registration, error)
	GetRegistration(ctx context.Context, id string) (*models.Registration, error)
	ListByEvent(ctx context.Context, eventID string, status *models.RegistrationStatus) ([]models.Registration, error)
	OnPaymentCompleted(ctx context.Context, registrationID string) error
	OnPaymentFailed(ctx context.Context, registrationID string) error
	MarkAttended(ctx context.Context, registrationID string, actor models.Actor) error
}

type registrationService struct {
	regRepo   repository.RegistrationRepository
	eventRepo repository.EventRepository
	access    AccessResolver
	publisher FactPublisher
}

func NewRegistrationService(
	regRepo repository.RegistrationRepository,
	eventRepo repository.EventRepository,
	access AccessResolver,
	publisher FactPublisher,
) RegistrationService {
	return &registrationService{
		regRepo:   regRepo,
		eventRepo: eventRepo,
		access:    access,
		publisher: publisher,
	}
}

// Register takes a seat on a published event. The event row lock plus the
// guarded counter increment make the capacity check safe under concurrent
// attempts for the last seat: the seat count can never exceed capacity.
func (s *registrationService) Register(ctx context.Context, eventID, userID, paymentMethod string) (*models.Registration, error) {
	var result *models.Registration

	err := s.regRepo.Transaction(ctx, func(tx *gorm.DB) error {
		// 1. Lock the event row — serializes concurrent registrations
		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		// 2. Only published, non-archived events take registrations
		if event.Status != models.StatusPublished || event.Archived {
			return ErrEventNotPublished
		}

		// 3. Deadline
		if event.RegistrationDeadline != nil && time.Now().After(*event.RegistrationDeadline) {
			return ErrDeadlinePassed
		}

		// 4. Access gate: role restriction + whitelist
		ok, err := s.access.CanAccess(ctx, event, userID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotWhitelisted
		}

		// 5. One active registration per user and event
		_, err = s.regRepo.FindActiveByUserAndEvent(ctx, tx, userID, eventID)
		if err == nil {
			return ErrAlreadyRegistered
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// 6. Guarded seat increment; zero rows means full
		affected, err := s.eventRepo.IncrementRegistered(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrEventFull
		}

		// 7. Free events confirm immediately; priced ones wait for payment
		reg := &models.Registration{
			EventID:       eventID,
			UserID:        userID,
			PaymentMethod: paymentMethod,
			PaymentAmount: event.Price,
		}
		if event.Price > 0 {
			reg.Status = models.RegistrationPending
			reg.PaymentStatus = models.PaymentPending
		} else {
			reg.Status = models.RegistrationConfirmed
			reg.PaymentStatus = models.PaymentCompleted
		}
		if err := s.regRepo.Create(ctx, tx, reg); err != nil {
			return err
		}

		result = reg
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("registration.created", result)
	}
	return result, nil
}

// Cancel releases the seat and, when the registrant already paid, requests a
// refund exactly once. A repeated cancel is an ErrAlreadyCancelled no-op,
// never a duplicate refund.
func (s *registrationService) Cancel(ctx context.Context, registrationID string, actor models.Actor) (*models.Registration, error) {
	var (
		result     *models.Registration
		emitRefund bool
	)

	err := s.regRepo.Transaction(ctx, func(tx *gorm.DB) error {
		reg, err := s.regRepo.FindByIDForUpdate(ctx, tx, registrationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRegistrationNotFound
			}
			return err
		}

		if reg.Status == models.RegistrationCancelled {
			return ErrAlreadyCancelled
		}
		if actor.UserID != reg.UserID && !actor.IsEventOffice() {
			return ErrForbidden
		}

		// Lock the event before touching the seat counter
		if _, err := s.eventRepo.FindByIDForUpdate(ctx, tx, reg.EventID); err != nil {
			return err
		}
		if err := s.eventRepo.DecrementRegistered(ctx, tx, reg.EventID); err != nil {
			return err
		}

		updates := map[string]interface{}{"status": models.RegistrationCancelled}
		reg.Status = models.RegistrationCancelled

		if reg.PaymentStatus == models.PaymentCompleted && !reg.RefundEmitted {
			updates["payment_status"] = models.PaymentRefunded
			updates["refund_emitted"] = true
			reg.PaymentStatus = models.PaymentRefunded
			reg.RefundEmitted = true
			emitRefund = true
		}

		if err := s.regRepo.UpdateFields(ctx, tx, registrationID, updates); err != nil {
			return err
		}

		result = reg
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("registration.cancelled", result)
		if emitRefund {
			_ = s.publisher.Publish("registration.refund_requested", result)
		}
	}
	return result, nil
}

func (s *registrationService) GetRegistration(ctx context.Context, id string) (*models.Registration, error) {
	reg, err := s.regRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (s *registrationService) ListByEvent(ctx context.Context, eventID string, status *models.RegistrationStatus) ([]models.Registration, error) {
	return s.regRepo.FindByEventID(ctx, eventID, status)
}

// OnPaymentCompleted is the payment collaborator's webhook. It advances
// PENDING payments only, so redelivered webhooks are no-ops; a payment
// landing after cancellation stays untouched and the refund path owns it.
func (s *registrationService) OnPaymentCompleted(ctx context.Context, registrationID string) error {
	err := s.regRepo.Transaction(ctx, func(tx *gorm.DB) error {
		reg, err := s.regRepo.FindByIDForUpdate(ctx, tx, registrationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRegistrationNotFound
			}
			return err
		}

		if reg.PaymentStatus != models.PaymentPending || reg.Status == models.RegistrationCancelled {
			return nil
		}

		return s.regRepo.UpdateFields(ctx, tx, registrationID, map[string]interface{}{
			"payment_status": models.PaymentCompleted,
			"status":         models.RegistrationConfirmed,
		})
	})
	if err != nil {
		return fmt.Errorf("payment completed callback: %w", err)
	}
	return nil
}

func (s *registrationService) OnPaymentFailed(ctx context.Context, registrationID string) error {
	err := s.regRepo.Transaction(ctx, func(tx *gorm.DB) error {
		reg, err := s.regRepo.FindByIDForUpdate(ctx, tx, registrationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRegistrationNotFound
			}
			return err
		}

		if reg.PaymentStatus != models.PaymentPending {
			return nil
		}

		return s.regRepo.UpdateFields(ctx, tx, registrationID, map[string]interface{}{
			"payment_status": models.PaymentFailed,
		})
	})
	if err != nil {
		return fmt.Errorf("payment failed callback: %w", err)
	}
	return nil
}

// MarkAttended is the QR check-in hook. Idempotent: checking in twice keeps
// the first timestamp.
func (s *registrationService) MarkAttended(ctx context.Context, registrationID string, actor models.Actor) error {
	if !actor.IsEventOffice() {
		return ErrForbidden
	}

	reg, err := s.GetRegistration(ctx, registrationID)
	if err != nil {
		return err
	}
	if reg.Status == models.RegistrationCancelled {
		return ErrAlreadyCancelled
	}
	if reg.Attended {
		return nil
	}

	now := time.Now()
	return s.regRepo.UpdateFields(ctx, s.regRepo.GetDB(), registrationID, map[string]interface{}{
		"attended":    true,
		"attended_at": now,
	})
}

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
	ErrEventNotFound      = errors.New("event not found")
	ErrForbidden          = errors.New("actor may not perform this action")
	ErrTransitionConflict = errors.New("event status changed concurrently, reload and retry")
)

type EventService interface {
	CreateEvent(ctx context.Context, event *models.Event, actor models.Actor) error
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	ListEvents(ctx context.Context, status *models.EventStatus) ([]models.Event, error)
	UpdateEvent(ctx context.Context, event *models.Event, actor models.Actor) error
	Submit(ctx context.Context, eventID string, actor models.Actor) (*models.Event, error)
	Transition(ctx context.Context, eventID string, target models.EventStatus, actor models.Actor, reason string) (*models.Event, error)
	SetArchived(ctx context.Context, eventID string, archived bool, actor models.Actor) error
	DueForCompletion(ctx context.Context) ([]models.Event, error)
}

type eventService struct {
	repo      repository.EventRepository
	publisher FactPublisher
}

func NewEventService(repo repository.EventRepository, publisher FactPublisher) EventService {
	return &eventService{repo: repo, publisher: publisher}
}

// CreateEvent stores a new DRAFT owned by the actor. Students do not create
// events; every other campus role does.
func (s *eventService) CreateEvent(ctx context.Context, event *models.Event, actor models.Actor) error {
	if actor.Role == models.RoleStudent {
		return ErrForbidden
	}

	event.Status = models.StatusDraft
	event.CreatedBy = actor.UserID
	event.RegisteredCount = 0
	event.Archived = false
	event.RejectionReason = ""

	if err := s.repo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("event.created", event)
	}
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, status *models.EventStatus) ([]models.Event, error) {
	return s.repo.FindAll(ctx, status)
}

// UpdateEvent replaces the editable content of an event. Status, counter and
// ownership fields never move through this path.
func (s *eventService) UpdateEvent(ctx context.Context, event *models.Event, actor models.Actor) error {
	current, err := s.GetEvent(ctx, event.ID)
	if err != nil {
		return err
	}
	if !IsEditable(current, actor) {
		return ErrForbidden
	}

	current.Title = event.Title
	current.Description = event.Description
	current.Location = event.Location
	current.StartAt = event.StartAt
	current.EndAt = event.EndAt
	current.Capacity = event.Capacity
	current.RegistrationDeadline = event.RegistrationDeadline
	current.Price = event.Price
	current.RestrictedTo = event.RestrictedTo
	current.Details = event.Details

	if err := s.repo.Save(ctx, current); err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	*event = *current
	return nil
}

// Submit moves a draft (or a NEEDS_EDITS event) back into review.
func (s *eventService) Submit(ctx context.Context, eventID string, actor models.Actor) (*models.Event, error) {
	return s.Transition(ctx, eventID, models.StatusPendingApproval, actor, "")
}

func (s *eventService) Transition(ctx context.Context, eventID string, target models.EventStatus, actor models.Actor, reason string) (*models.Event, error) {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if err := CheckTransition(event, target, actor, reason); err != nil {
		return nil, err
	}

	// Guarded single-row write: if another actor moved the status since the
	// check, zero rows update and the caller reloads.
	affected, err := s.repo.UpdateStatusFrom(ctx, eventID, event.Status, target, reason)
	if err != nil {
		return nil, fmt.Errorf("transition event: %w", err)
	}
	if affected == 0 {
		return nil, ErrTransitionConflict
	}

	event.Status = target
	switch {
	case reason != "":
		event.RejectionReason = reason
	case target == models.StatusPendingApproval || target == models.StatusApproved:
		event.RejectionReason = ""
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("event."+routingSuffix(target), event)
	}
	return event, nil
}

func (s *eventService) SetArchived(ctx context.Context, eventID string, archived bool, actor models.Actor) error {
	if err := CheckArchive(actor); err != nil {
		return err
	}
	if _, err := s.GetEvent(ctx, eventID); err != nil {
		return err
	}
	if err := s.repo.SetArchived(ctx, eventID, archived); err != nil {
		return fmt.Errorf("archive event: %w", err)
	}
	return nil
}

// DueForCompletion lists PUBLISHED events whose end date has passed. The
// completion worker moves each one to COMPLETED as the system actor.
func (s *eventService) DueForCompletion(ctx context.Context) ([]models.Event, error) {
	return s.repo.FindPublishedEndedBefore(ctx, time.Now())
}

func routingSuffix(status models.EventStatus) string {
	switch status {
	case models.StatusPendingApproval:
		return "submitted"
	case models.StatusApproved:
		return "approved"
	case models.StatusNeedsEdits:
		return "needs_edits"
	case models.StatusRejected:
		return "rejected"
	case models.StatusPublished:
		return "published"
	case models.StatusCancelled:
		return "cancelled"
	case models.StatusCompleted:
		return "completed"
	default:
		return "updated"
	}
}

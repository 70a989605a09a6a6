package service

import (
	"context"
	"fmt"

	"github.com/campusops/events-core/internal/models"
	"github.com/campusops/events-core/internal/repository"
)

// WhitelistService administers access grants. Grants are additive only, and
// removing one never touches registrations already made through it.
type WhitelistService interface {
	AddUser(ctx context.Context, eventID, userID string, actor models.Actor) error
	RemoveUser(ctx context.Context, eventID, userID string, actor models.Actor) error
	AddRole(ctx context.Context, eventID string, role models.Role, actor models.Actor) error
	RemoveRole(ctx context.Context, eventID string, role models.Role, actor models.Actor) error
	List(ctx context.Context, eventID string) ([]models.WhitelistEntry, error)
}

type whitelistService struct {
	whitelistRepo repository.WhitelistRepository
	eventRepo     repository.EventRepository
}

func NewWhitelistService(whitelistRepo repository.WhitelistRepository, eventRepo repository.EventRepository) WhitelistService {
	return &whitelistService{whitelistRepo: whitelistRepo, eventRepo: eventRepo}
}

func (s *whitelistService) guard(ctx context.Context, eventID string, actor models.Actor) error {
	if !actor.IsEventOffice() {
		return ErrForbidden
	}
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return ErrEventNotFound
	}
	return nil
}

func (s *whitelistService) AddUser(ctx context.Context, eventID, userID string, actor models.Actor) error {
	if err := s.guard(ctx, eventID, actor); err != nil {
		return err
	}
	if err := s.whitelistRepo.AddUser(ctx, eventID, userID); err != nil {
		return fmt.Errorf("whitelist user: %w", err)
	}
	return nil
}

func (s *whitelistService) RemoveUser(ctx context.Context, eventID, userID string, actor models.Actor) error {
	if err := s.guard(ctx, eventID, actor); err != nil {
		return err
	}
	if err := s.whitelistRepo.RemoveUser(ctx, eventID, userID); err != nil {
		return fmt.Errorf("remove whitelist user: %w", err)
	}
	return nil
}

func (s *whitelistService) AddRole(ctx context.Context, eventID string, role models.Role, actor models.Actor) error {
	if err := s.guard(ctx, eventID, actor); err != nil {
		return err
	}
	if err := s.whitelistRepo.AddRole(ctx, eventID, role); err != nil {
		return fmt.Errorf("whitelist role: %w", err)
	}
	return nil
}

func (s *whitelistService) RemoveRole(ctx context.Context, eventID string, role models.Role, actor models.Actor) error {
	if err := s.guard(ctx, eventID, actor); err != nil {
		return err
	}
	if err := s.whitelistRepo.RemoveRole(ctx, eventID, role); err != nil {
		return fmt.Errorf("remove whitelist role: %w", err)
	}
	return nil
}

func (s *whitelistService) List(ctx context.Context, eventID string) ([]models.WhitelistEntry, error) {
	return s.whitelistRepo.FindByEvent(ctx, eventID)
}

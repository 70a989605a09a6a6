package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/campusops/events-core/internal/models"
	"github.com/campusops/events-core/internal/repository"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

// Accessible decides whether a user may see and register for an event. Pure
// function of its inputs: blocked or unverified users are always denied, an
// unrestricted event admits every active user, and a restricted event admits
// role members plus explicit whitelist grants.
func Accessible(event *models.Event, user *models.User, entries []models.WhitelistEntry) bool {
	if user.Status != models.UserActive {
		return false
	}
	if !event.IsRestricted() {
		return true
	}
	for _, role := range event.RestrictedTo {
		if models.Role(role) == user.Role {
			return true
		}
	}
	for _, entry := range entries {
		if entry.UserID != nil && *entry.UserID == user.ID {
			return true
		}
		if entry.Role != nil && *entry.Role == user.Role {
			return true
		}
	}
	return false
}

// AccessResolver loads the whitelist state behind Accessible.
type AccessResolver interface {
	CanAccess(ctx context.Context, event *models.Event, userID string) (bool, error)
}

type accessResolver struct {
	userRepo      repository.UserRepository
	whitelistRepo repository.WhitelistRepository
}

func NewAccessResolver(userRepo repository.UserRepository, whitelistRepo repository.WhitelistRepository) AccessResolver {
	return &accessResolver{userRepo: userRepo, whitelistRepo: whitelistRepo}
}

func (r *accessResolver) CanAccess(ctx context.Context, event *models.Event, userID string) (bool, error) {
	user, err := r.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrUserNotFound
		}
		return false, fmt.Errorf("load user: %w", err)
	}

	// Skip the whitelist query when the role restriction alone decides.
	if !event.IsRestricted() {
		return Accessible(event, user, nil), nil
	}

	entries, err := r.whitelistRepo.FindByEvent(ctx, event.ID)
	if err != nil {
		return false, fmt.Errorf("load whitelist: %w", err)
	}
	return Accessible(event, user, entries), nil
}

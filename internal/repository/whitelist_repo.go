package repository

import (
	"context"
	"errors"

	"github.com/campusops/events-core/internal/models"
	"gorm.io/gorm"
)

type WhitelistRepository interface {
	AddUser(ctx context.Context, eventID, userID string) error
	RemoveUser(ctx context.Context, eventID, userID string) error
	AddRole(ctx context.Context, eventID string, role models.Role) error
	RemoveRole(ctx context.Context, eventID string, role models.Role) error
	FindByEvent(ctx context.Context, eventID string) ([]models.WhitelistEntry, error)
}

type whitelistRepository struct {
	db *gorm.DB
}

func NewWhitelistRepository(db *gorm.DB) WhitelistRepository {
	return &whitelistRepository{db: db}
}

// AddUser grants access to a single user. Adding the same grant twice is a
// no-op thanks to the unique index on (event_id, user_id).
func (r *whitelistRepository) AddUser(ctx context.Context, eventID, userID string) error {
	var existing models.WhitelistEntry
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	entry := &models.WhitelistEntry{EventID: eventID, UserID: &userID}
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *whitelistRepository) RemoveUser(ctx context.Context, eventID, userID string) error {
	return r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&models.WhitelistEntry{}).Error
}

func (r *whitelistRepository) AddRole(ctx context.Context, eventID string, role models.Role) error {
	var existing models.WhitelistEntry
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND role = ?", eventID, role).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	entry := &models.WhitelistEntry{EventID: eventID, Role: &role}
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *whitelistRepository) RemoveRole(ctx context.Context, eventID string, role models.Role) error {
	return r.db.WithContext(ctx).
		Where("event_id = ? AND role = ?", eventID, role).
		Delete(&models.WhitelistEntry{}).Error
}

func (r *whitelistRepository) FindByEvent(ctx context.Context, eventID string) ([]models.WhitelistEntry, error) {
	var entries []models.WhitelistEntry
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

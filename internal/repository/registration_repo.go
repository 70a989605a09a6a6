package repository

import (
	"context"
	"time"

	"github.com/campusops/events-core/internal/models"
	"gorm.io/gorm"
)

type RegistrationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, reg *models.Registration) error
	FindByID(ctx context.Context, id string) (*models.Registration, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Registration, error)
	FindByEventID(ctx context.Context, eventID string, status *models.RegistrationStatus) ([]models.Registration, error)
	FindActiveByUserAndEvent(ctx context.Context, tx *gorm.DB, userID, eventID string) (*models.Registration, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id string, fields map[string]interface{}) error
	DueReminders(ctx context.Context, from, until time.Time) ([]models.Registration, error)
	CertificateEligible(ctx context.Context, eventID string) ([]models.Registration, error)
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	GetDB() *gorm.DB
}

type registrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) GetDB() *gorm.DB {
	return r.db
}

// Transaction wraps fn in a database transaction. Register and Cancel run
// entirely inside one.
func (r *registrationRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *registrationRepository) Create(ctx context.Context, tx *gorm.DB, reg *models.Registration) error {
	return tx.WithContext(ctx).Create(reg).Error
}

func (r *registrationRepository) FindByID(ctx context.Context, id string) (*models.Registration, error) {
	var reg models.Registration
	if err := r.db.WithContext(ctx).First(&reg, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

// FindByIDForUpdate locks the registration row inside the given transaction
// so concurrent cancels and payment callbacks serialize.
func (r *registrationRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Registration, error) {
	var reg models.Registration
	if err := tx.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		First(&reg, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) FindByEventID(ctx context.Context, eventID string, status *models.RegistrationStatus) ([]models.Registration, error) {
	var regs []models.Registration
	q := r.db.WithContext(ctx).Where("event_id = ?", eventID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Order("created_at ASC, id ASC").Find(&regs).Error; err != nil {
		return nil, err
	}
	return regs, nil
}

func (r *registrationRepository) FindActiveByUserAndEvent(ctx context.Context, tx *gorm.DB, userID, eventID string) (*models.Registration, error) {
	var reg models.Registration
	err := tx.WithContext(ctx).
		Where("user_id = ? AND event_id = ? AND status <> ?", userID, eventID, models.RegistrationCancelled).
		First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) UpdateFields(ctx context.Context, tx *gorm.DB, id string, fields map[string]interface{}) error {
	return tx.WithContext(ctx).
		Model(&models.Registration{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// DueReminders returns active registrations of PUBLISHED events starting in
// [from, until) whose reminder has not been sent yet. Workers treat the
// result as at-least-once delivered.
func (r *registrationRepository) DueReminders(ctx context.Context, from, until time.Time) ([]models.Registration, error) {
	var regs []models.Registration
	err := r.db.WithContext(ctx).
		Joins("JOIN events ON events.id = registrations.event_id").
		Where("registrations.status <> ?", models.RegistrationCancelled).
		Where("registrations.reminder_sent = false").
		Where("events.status = ?", models.StatusPublished).
		Where("events.start_at >= ? AND events.start_at < ?", from, until).
		Preload("Event").
		Find(&regs).Error
	if err != nil {
		return nil, err
	}
	return regs, nil
}

// CertificateEligible returns attended registrations of a COMPLETED event
// whose certificate has not been issued.
func (r *registrationRepository) CertificateEligible(ctx context.Context, eventID string) ([]models.Registration, error) {
	var regs []models.Registration
	err := r.db.WithContext(ctx).
		Joins("JOIN events ON events.id = registrations.event_id").
		Where("registrations.event_id = ?", eventID).
		Where("registrations.attended = true AND registrations.certificate_issued = false").
		Where("registrations.status <> ?", models.RegistrationCancelled).
		Where("events.status = ?", models.StatusCompleted).
		Find(&regs).Error
	if err != nil {
		return nil, err
	}
	return regs, nil
}

package repository

import (
	"context"
	"time"

	"github.com/campusops/events-core/internal/models"
	"gorm.io/gorm"
)

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id string) (*models.Event, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Event, error)
	FindAll(ctx context.Context, status *models.EventStatus) ([]models.Event, error)
	FindPublishedEndedBefore(ctx context.Context, cutoff time.Time) ([]models.Event, error)
	Save(ctx context.Context, event *models.Event) error
	UpdateStatusFrom(ctx context.Context, id string, from, to models.EventStatus, reason string) (int64, error)
	SetArchived(ctx context.Context, id string, archived bool) error
	IncrementRegistered(ctx context.Context, tx *gorm.DB, id string) (int64, error)
	DecrementRegistered(ctx context.Context, tx *gorm.DB, id string) error
	GetDB() *gorm.DB
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) FindByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// FindByIDForUpdate acquires a row-level lock on the event within the given
// transaction. Every registration write path goes through this lock.
func (r *eventRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Event, error) {
	var event models.Event
	if err := tx.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindAll(ctx context.Context, status *models.EventStatus) ([]models.Event, error) {
	var events []models.Event
	q := r.db.WithContext(ctx)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Order("start_at ASC, id ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) FindPublishedEndedBefore(ctx context.Context, cutoff time.Time) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Where("status = ? AND end_at < ?", models.StatusPublished, cutoff).
		Order("end_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) Save(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

// UpdateStatusFrom is the guarded single-row write for workflow transitions:
// the status moves only if it still equals the value the caller validated
// against, so a lost race surfaces as zero affected rows.
func (r *eventRepository) UpdateStatusFrom(ctx context.Context, id string, from, to models.EventStatus, reason string) (int64, error) {
	updates := map[string]interface{}{"status": to}
	switch {
	case reason != "":
		updates["rejection_reason"] = reason
	case to == models.StatusPendingApproval || to == models.StatusApproved:
		// A reason from an earlier NEEDS_EDITS round must not outlive the
		// resubmission it prompted.
		updates["rejection_reason"] = ""
	}
	res := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *eventRepository) SetArchived(ctx context.Context, id string, archived bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ?", id).
		Update("archived", archived).Error
}

// IncrementRegistered performs the guarded seat increment. The WHERE clause
// carries the capacity check, so check and increment are one atomic
// statement; zero affected rows means the event is full.
func (r *eventRepository) IncrementRegistered(ctx context.Context, tx *gorm.DB, id string) (int64, error) {
	res := tx.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ? AND (capacity IS NULL OR registered_count < capacity)", id).
		UpdateColumn("registered_count", gorm.Expr("registered_count + 1"))
	return res.RowsAffected, res.Error
}

// DecrementRegistered releases a seat, never dropping below zero.
func (r *eventRepository) DecrementRegistered(ctx context.Context, tx *gorm.DB, id string) error {
	return tx.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ? AND registered_count > 0", id).
		UpdateColumn("registered_count", gorm.Expr("registered_count - 1")).Error
}

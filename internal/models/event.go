package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type EventType string

const (
	TypeWorkshop   EventType = "WORKSHOP"
	TypeTrip       EventType = "TRIP"
	TypeBazaar     EventType = "BAZAAR"
	TypeConference EventType = "CONFERENCE"
	TypeGymSession EventType = "GYM_SESSION"
	TypeBooth      EventType = "BOOTH"
)

type EventStatus string

const (
	StatusDraft           EventStatus = "DRAFT"
	StatusPendingApproval EventStatus = "PENDING_APPROVAL"
	StatusApproved        EventStatus = "APPROVED"
	StatusNeedsEdits      EventStatus = "NEEDS_EDITS"
	StatusRejected        EventStatus = "REJECTED"
	StatusPublished       EventStatus = "PUBLISHED"
	StatusCancelled       EventStatus = "CANCELLED"
	StatusCompleted       EventStatus = "COMPLETED"
)

type Event struct {
	ID                   string          `gorm:"type:uuid;primaryKey" json:"id"`
	Type                 EventType       `gorm:"type:varchar(20);not null" json:"type"`
	Status               EventStatus     `gorm:"type:varchar(20);not null;default:'DRAFT'" json:"status"`
	Title                string          `gorm:"not null" json:"title"`
	Description          string          `json:"description,omitempty"`
	Location             string          `json:"location,omitempty"`
	StartAt              time.Time       `gorm:"not null" json:"start_at"`
	EndAt                time.Time       `gorm:"not null" json:"end_at"`
	Capacity             *int            `json:"capacity,omitempty"`
	RegisteredCount      int             `gorm:"not null;default:0" json:"registered_count"`
	RegistrationDeadline *time.Time      `json:"registration_deadline,omitempty"`
	Price                int64           `gorm:"not null;default:0" json:"price"`
	RestrictedTo         pq.StringArray  `gorm:"type:text[]" json:"restricted_to,omitempty"`
	Details              json.RawMessage `gorm:"type:jsonb" json:"details,omitempty"`
	CreatedBy            string          `gorm:"type:uuid;not null" json:"created_by"`
	RejectionReason      string          `json:"rejection_reason,omitempty"`
	Archived             bool            `gorm:"not null;default:false" json:"archived"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

func (e *Event) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// IsRestricted reports whether the event carries a role restriction at all.
// An unrestricted event is visible to every ACTIVE user.
func (e *Event) IsRestricted() bool {
	return len(e.RestrictedTo) > 0
}

// HasCapacityFor reports whether one more registration fits. Capacity nil
// means unlimited.
func (e *Event) HasCapacityFor() bool {
	return e.Capacity == nil || e.RegisteredCount < *e.Capacity
}

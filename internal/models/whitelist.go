package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WhitelistEntry grants access to a restricted event, either to a single
// user or to every holder of a role. Grants are additive only; removing one
// never cancels registrations already made through it.
type WhitelistEntry struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	EventID   string    `gorm:"type:uuid;not null;index" json:"event_id"`
	UserID    *string   `gorm:"type:uuid" json:"user_id,omitempty"`
	Role      *Role     `gorm:"type:varchar(20)" json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (w *WhitelistEntry) BeforeCreate(_ *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "PENDING"
	RegistrationConfirmed RegistrationStatus = "CONFIRMED"
	RegistrationCancelled RegistrationStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
	PaymentFailed    PaymentStatus = "FAILED"
)

type Registration struct {
	ID            string             `gorm:"type:uuid;primaryKey" json:"id"`
	EventID       string             `gorm:"type:uuid;not null;index" json:"event_id"`
	UserID        string             `gorm:"type:uuid;not null" json:"user_id"`
	Status        RegistrationStatus `gorm:"type:varchar(20);not null" json:"status"`
	PaymentStatus PaymentStatus      `gorm:"type:varchar(20);not null" json:"payment_status"`
	PaymentMethod string             `gorm:"type:varchar(30)" json:"payment_method,omitempty"`
	// PaymentAmount is in minor currency units.
	PaymentAmount     int64      `gorm:"not null;default:0" json:"payment_amount"`
	CertificateIssued bool       `gorm:"not null;default:false" json:"certificate_issued"`
	ReminderSent      bool       `gorm:"not null;default:false" json:"reminder_sent"`
	RefundEmitted     bool       `gorm:"not null;default:false" json:"-"`
	Attended          bool       `gorm:"not null;default:false" json:"attended"`
	AttendedAt        *time.Time `json:"attended_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

func (r *Registration) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Active reports whether the registration still occupies a seat.
func (r *Registration) Active() bool {
	return r.Status != RegistrationCancelled
}

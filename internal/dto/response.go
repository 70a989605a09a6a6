package dto

import (
	"encoding/json"
	"time"

	"github.com/campusops/events-core/internal/models"
)

type EventResponse struct {
	ID                   string             `json:"id"`
	Type                 models.EventType   `json:"type"`
	Status               models.EventStatus `json:"status"`
	Title                string             `json:"title"`
	Description          string             `json:"description,omitempty"`
	Location             string             `json:"location,omitempty"`
	StartAt              time.Time          `json:"start_at"`
	EndAt                time.Time          `json:"end_at"`
	Capacity             *int               `json:"capacity,omitempty"`
	RegisteredCount      int                `json:"registered_count"`
	SeatsAvailable       *int               `json:"seats_available,omitempty"`
	RegistrationDeadline *time.Time         `json:"registration_deadline,omitempty"`
	Price                int64              `json:"price"`
	RestrictedTo         []string           `json:"restricted_to,omitempty"`
	Details              json.RawMessage    `json:"details,omitempty"`
	CreatedBy            string             `json:"created_by"`
	RejectionReason      string             `json:"rejection_reason,omitempty"`
	Archived             bool               `json:"archived"`
	CreatedAt            time.Time          `json:"created_at"`
}

type RegistrationResponse struct {
	ID                string                    `json:"id"`
	EventID           string                    `json:"event_id"`
	UserID            string                    `json:"user_id"`
	Status            models.RegistrationStatus `json:"status"`
	PaymentStatus     models.PaymentStatus      `json:"payment_status"`
	PaymentMethod     string                    `json:"payment_method,omitempty"`
	PaymentAmount     int64                     `json:"payment_amount"`
	CertificateIssued bool                      `json:"certificate_issued"`
	Attended          bool                      `json:"attended"`
	AttendedAt        *time.Time                `json:"attended_at,omitempty"`
	CreatedAt         time.Time                 `json:"created_at"`
}

type WhitelistEntryResponse struct {
	ID        string       `json:"id"`
	EventID   string       `json:"event_id"`
	UserID    *string      `json:"user_id,omitempty"`
	Role      *models.Role `json:"role,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToEventResponse(e *models.Event) EventResponse {
	resp := EventResponse{
		ID:                   e.ID,
		Type:                 e.Type,
		Status:               e.Status,
		Title:                e.Title,
		Description:          e.Description,
		Location:             e.Location,
		StartAt:              e.StartAt,
		EndAt:                e.EndAt,
		Capacity:             e.Capacity,
		RegisteredCount:      e.RegisteredCount,
		RegistrationDeadline: e.RegistrationDeadline,
		Price:                e.Price,
		RestrictedTo:         []string(e.RestrictedTo),
		Details:              e.Details,
		CreatedBy:            e.CreatedBy,
		RejectionReason:      e.RejectionReason,
		Archived:             e.Archived,
		CreatedAt:            e.CreatedAt,
	}
	if e.Capacity != nil {
		left := *e.Capacity - e.RegisteredCount
		if left < 0 {
			left = 0
		}
		resp.SeatsAvailable = &left
	}
	return resp
}

func ToRegistrationResponse(r *models.Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:                r.ID,
		EventID:           r.EventID,
		UserID:            r.UserID,
		Status:            r.Status,
		PaymentStatus:     r.PaymentStatus,
		PaymentMethod:     r.PaymentMethod,
		PaymentAmount:     r.PaymentAmount,
		CertificateIssued: r.CertificateIssued,
		Attended:          r.Attended,
		AttendedAt:        r.AttendedAt,
		CreatedAt:         r.CreatedAt,
	}
}

func ToWhitelistEntryResponse(w *models.WhitelistEntry) WhitelistEntryResponse {
	return WhitelistEntryResponse{
		ID:        w.ID,
		EventID:   w.EventID,
		UserID:    w.UserID,
		Role:      w.Role,
		CreatedAt: w.CreatedAt,
	}
}

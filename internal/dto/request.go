package dto

import (
	"encoding/json"
	"time"

	"github.com/campusops/events-core/internal/models"
	"github.com/lib/pq"
)

type CreateEventRequest struct {
	Type                 string          `json:"type" validate:"required,oneof=WORKSHOP TRIP BAZAAR CONFERENCE GYM_SESSION BOOTH"`
	Title                string          `json:"title" validate:"required"`
	Description          string          `json:"description"`
	Location             string          `json:"location"`
	StartAt              time.Time       `json:"start_at" validate:"required"`
	EndAt                time.Time       `json:"end_at" validate:"required,gtfield=StartAt"`
	Capacity             *int            `json:"capacity" validate:"omitempty,gt=0"`
	RegistrationDeadline *time.Time      `json:"registration_deadline"`
	Price                int64           `json:"price" validate:"gte=0"`
	RestrictedTo         []string        `json:"restricted_to" validate:"dive,oneof=STUDENT PROFESSOR TA STAFF EVENT_OFFICE ADMIN"`
	Details              json.RawMessage `json:"details"`
}

type UpdateEventRequest = CreateEventRequest

type TransitionRequest struct {
	TargetStatus string `json:"target_status" validate:"required"`
	Reason       string `json:"reason"`
}

type RegisterRequest struct {
	PaymentMethod string `json:"payment_method" validate:"omitempty,oneof=CARD WALLET CASH"`
}

func (r *CreateEventRequest) ToModel() *models.Event {
	return &models.Event{
		Type:                 models.EventType(r.Type),
		Title:                r.Title,
		Description:          r.Description,
		Location:             r.Location,
		StartAt:              r.StartAt,
		EndAt:                r.EndAt,
		Capacity:             r.Capacity,
		RegistrationDeadline: r.RegistrationDeadline,
		Price:                r.Price,
		RestrictedTo:         pq.StringArray(r.RestrictedTo),
		Details:              r.Details,
	}
}

package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Per-type event payloads. The Event row carries a single jsonb Details
// column; the struct it decodes into is keyed by Event.Type.

type WorkshopDetails struct {
	Speaker             string `json:"speaker"`
	Agenda              string `json:"agenda,omitempty"`
	CertificateTemplate string `json:"certificate_template,omitempty"`
}

type TripDetails struct {
	Destination string    `json:"destination"`
	DepartureAt time.Time `json:"departure_at"`
	ReturnAt    time.Time `json:"return_at"`
}

type BazaarDetails struct {
	BoothCount int `json:"booth_count"`
}

type ConferenceDetails struct {
	Tracks []string `json:"tracks,omitempty"`
}

type GymSessionDetails struct {
	Facility string `json:"facility"`
	Coach    string `json:"coach,omitempty"`
}

type BoothDetails struct {
	BazaarEventID string `json:"bazaar_event_id"`
	BoothNumber   string `json:"booth_number,omitempty"`
}

// DecodeDetails returns the typed payload for the event's type, or nil when
// the event carries none.
func DecodeDetails(e *Event) (any, error) {
	if len(e.Details) == 0 {
		return nil, nil
	}

	var dst any
	switch e.Type {
	case TypeWorkshop:
		dst = &WorkshopDetails{}
	case TypeTrip:
		dst = &TripDetails{}
	case TypeBazaar:
		dst = &BazaarDetails{}
	case TypeConference:
		dst = &ConferenceDetails{}
	case TypeGymSession:
		dst = &GymSessionDetails{}
	case TypeBooth:
		dst = &BoothDetails{}
	default:
		return nil, fmt.Errorf("unknown event type %q", e.Type)
	}

	if err := json.Unmarshal(e.Details, dst); err != nil {
		return nil, fmt.Errorf("decode %s details: %w", e.Type, err)
	}
	return dst, nil
}

package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"venuebook/internal/domain"
)

type Type string

const (
	TypeBookingSubmitted      Type = "booking.submitted"
	TypeBookingStatusChanged  Type = "booking.status_changed"
	TypeBookingDeleted        Type = "booking.deleted"
	TypeBookingCreatedByStaff Type = "booking.created_by_admin"
)

type Event struct {
	ID             uuid.UUID            `json:"id"`
	Type           Type                 `json:"type"`
	BookingID      uuid.UUID            `json:"booking_id"`
	Status         domain.BookingStatus `json:"status,omitempty"`
	PreviousStatus domain.BookingStatus `json:"previous_status,omitempty"`
	EventType      string               `json:"event_type,omitempty"`
	Dates          []string             `json:"dates,omitempty"`
	OccurredAt     time.Time            `json:"occurred_at"`
}

func BookingEvent(t Type, b domain.Booking) Event {
	return Event{
		ID:         uuid.New(),
		Type:       t,
		BookingID:  b.ID,
		Status:     b.Status,
		EventType:  b.EventType,
		Dates:      b.PreferredDates,
		OccurredAt: time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
